package scoring

import (
	"errors"
	"testing"
	"time"
)

// MockScoreStorage is a mock implementation of the ScoreStorage interface
// that stores score entries in memory. This is used for testing.
type MockScoreStorage struct {
	Entries []ScoreHistoryEntry
	Saves   int
	err     error // To simulate errors from the storage layer.
}

// LoadAll returns the in-memory entries or a simulated error.
func (m *MockScoreStorage) LoadAll() ([]ScoreHistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]ScoreHistoryEntry(nil), m.Entries...), nil
}

// SaveAll replaces the in-memory entries with the provided slice or returns a simulated error.
func (m *MockScoreStorage) SaveAll(entries []ScoreHistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.Entries = append([]ScoreHistoryEntry(nil), entries...)
	m.Saves++
	return nil
}

func TestPoints(t *testing.T) {
	tests := []struct {
		rows int
		want int
	}{
		{0, 0},
		{1, 40},
		{2, 100},
		{3, 300},
		{4, 1200},
		{5, 1200},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := Points(tt.rows); got != tt.want {
			t.Errorf("Points(%d) = %d, expected %d", tt.rows, got, tt.want)
		}
	}
}

// TestInitScoring_Empty verifies that scoring starts at zero without history.
func TestInitScoring_Empty(t *testing.T) {
	sc, err := InitScoring(&MockScoreStorage{})
	if err != nil {
		t.Fatalf("InitScoring returned an unexpected error: %v", err)
	}

	if sc.HighScore != 0 {
		t.Errorf("expected high score 0, got %d", sc.HighScore)
	}
	if sc.GetHighScore() != nil {
		t.Errorf("expected nil high score entry, got %v", sc.GetHighScore())
	}
	if sc.GetAttempts() != 0 {
		t.Errorf("expected 0 attempts, got %d", sc.GetAttempts())
	}
}

// TestInitScoring_WithHistory verifies the high score is seeded from storage.
func TestInitScoring_WithHistory(t *testing.T) {
	store := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{Score: 120, Lines: 3},
			{Score: 1340, Lines: 12},
			{Score: 500, Lines: 6},
		},
	}

	sc, err := InitScoring(store)
	if err != nil {
		t.Fatalf("InitScoring returned an unexpected error: %v", err)
	}

	if sc.HighScore != 1340 {
		t.Errorf("expected high score 1340, got %d", sc.HighScore)
	}
	if sc.GetAttempts() != 3 {
		t.Errorf("expected 3 attempts, got %d", sc.GetAttempts())
	}
	if entry := sc.GetHighScore(); entry == nil || entry.Lines != 12 {
		t.Errorf("expected high score entry with 12 lines, got %+v", entry)
	}
}

func TestInitScoring_StorageError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := InitScoring(&MockScoreStorage{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}

func TestRecord(t *testing.T) {
	store := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{{Score: 300, Timestamp: "2026-01-01T00:00:00Z"}},
	}
	sc, _ := InitScoring(store)
	sc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	entry := sc.Record(100, 1)
	if entry.Timestamp != "2026-10-19T12:00:00Z" {
		t.Errorf("unexpected timestamp %q", entry.Timestamp)
	}
	if sc.HighScore != 300 {
		t.Errorf("lower score must not change high score, got %d", sc.HighScore)
	}
	if sc.GotHighScore() {
		t.Error("100 is not a high score")
	}

	sc.Record(1500, 10)
	if sc.HighScore != 1500 {
		t.Errorf("expected high score 1500, got %d", sc.HighScore)
	}
	if !sc.GotHighScore() {
		t.Error("1500 should be a high score")
	}

	if store.Saves != 0 {
		t.Error("Record must not persist on its own")
	}
	if err := sc.SaveEntries(); err != nil {
		t.Fatalf("SaveEntries returned error: %v", err)
	}
	if len(store.Entries) != 3 {
		t.Fatalf("expected 3 stored entries, got %d", len(store.Entries))
	}
	if store.Entries[0].Score != 1500 {
		t.Errorf("expected best entry first, got %+v", store.Entries[0])
	}
}

// TestGetNScoreEntries verifies the top N entries come back best first.
func TestGetNScoreEntries(t *testing.T) {
	store := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{Score: 100},
			{Score: 300},
			{Score: 200},
		},
	}
	sc, _ := InitScoring(store)

	top := sc.GetNScoreEntries(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Score != 300 || top[1].Score != 200 {
		t.Errorf("unexpected order: %+v", top)
	}

	all := sc.GetNScoreEntries(10)
	if len(all) != 3 {
		t.Errorf("expected all 3 entries, got %d", len(all))
	}

	// Mutating the returned slice must not affect the history.
	all[0].Score = -1
	if sc.GetNScoreEntries(1)[0].Score != 300 {
		t.Error("GetNScoreEntries must return a copy")
	}
}
