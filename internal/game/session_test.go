package game

import (
	"errors"
	"testing"

	"go-tetris/internal/piece"
	"go-tetris/internal/scoring"
	"go-tetris/internal/state"
)

// MockStorage keeps score entries in memory.
type MockStorage struct {
	Entries []scoring.ScoreHistoryEntry
	Saves   int
	LoadErr error
	SaveErr error
}

func (m *MockStorage) LoadAll() ([]scoring.ScoreHistoryEntry, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]scoring.ScoreHistoryEntry(nil), m.Entries...), nil
}

func (m *MockStorage) SaveAll(entries []scoring.ScoreHistoryEntry) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Entries = append([]scoring.ScoreHistoryEntry(nil), entries...)
	return nil
}

func testConfig() Config {
	return Config{Width: 10, Height: 6, PoolSize: 3, Bag: piece.NewSeededBag(42)}
}

// forceTopOut arranges for the next Tick to end the game.
func forceTopOut(g *Game, score int) {
	g.grid.Set(4, 1, piece.Block(piece.Red))
	g.grid.Set(5, 1, piece.Block(piece.Red))
	g.current = NewTetromino(piece.O, 0, 4)
	g.score = score
}

func TestSession_Init(t *testing.T) {
	store := &MockStorage{Entries: []scoring.ScoreHistoryEntry{
		{Score: 100, Timestamp: "2024-01-01T00:00:00Z"},
		{Score: 500, Timestamp: "2024-01-02T00:00:00Z"},
	}}

	sess, err := NewSession(testConfig(), store, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if sess.Game.HighScore() != 500 {
		t.Errorf("Expected high score 500 from storage, got %d", sess.Game.HighScore())
	}
	if sess.Game.Current() == nil {
		t.Error("Game should be started")
	}
	if sess.Scoring.GetAttempts() != 2 {
		t.Errorf("Expected 2 attempts, got %d", sess.Scoring.GetAttempts())
	}
	if store.Saves != 0 {
		t.Errorf("Init should not save, got %d saves", store.Saves)
	}
}

func TestSession_ConfigHighScoreWins(t *testing.T) {
	cfg := testConfig()
	cfg.HighScore = 900
	store := &MockStorage{Entries: []scoring.ScoreHistoryEntry{{Score: 500}}}

	sess, err := NewSession(cfg, store, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if sess.Game.HighScore() != 900 {
		t.Errorf("Expected high score 900, got %d", sess.Game.HighScore())
	}
}

func TestSession_LoadError(t *testing.T) {
	store := &MockStorage{LoadErr: errors.New("disk on fire")}
	if _, err := NewSession(testConfig(), store, nil); err == nil {
		t.Error("Expected error when storage cannot load")
	}
}

func TestSession_WithLayout(t *testing.T) {
	layout := &Layout{Rows: []string{"rr.......r"}, Source: "test", Index: 1}

	sess, err := NewSession(testConfig(), &MockStorage{}, layout)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if sess.Game.grid.Occupied() != 3 {
		t.Errorf("Expected 3 layout blocks, got %d", sess.Game.grid.Occupied())
	}

	bad := &Layout{Rows: []string{"rr"}, Source: "test", Index: 2}
	if _, err := NewSession(testConfig(), &MockStorage{}, bad); err == nil {
		t.Error("Expected error for a layout of the wrong width")
	}
}

func TestSession_GameOverRecordsScore(t *testing.T) {
	store := &MockStorage{}
	sess, _ := NewSession(testConfig(), store, nil)

	forceTopOut(sess.Game, 340)
	ev, err := sess.Tick()
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if ev.Kind != EventGameOver {
		t.Fatalf("Expected game over, got %s", ev.Kind)
	}
	if store.Saves != 1 {
		t.Errorf("Expected 1 save, got %d", store.Saves)
	}
	if len(store.Entries) != 1 || store.Entries[0].Score != 340 {
		t.Errorf("Expected stored score 340, got %+v", store.Entries)
	}
	if sess.GamesPlayed != 1 || sess.BestScore != 340 {
		t.Errorf("Unexpected aggregates: games=%d best=%d", sess.GamesPlayed, sess.BestScore)
	}
	if !sess.Scoring.GotHighScore() {
		t.Error("340 should be a new high score")
	}
	if sess.LastEvent.Kind != EventGameOver {
		t.Errorf("LastEvent not tracked, got %s", sess.LastEvent.Kind)
	}

	// The next game starts fresh; quitting it with nothing scored saves nothing.
	if err := sess.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if store.Saves != 1 {
		t.Errorf("Finish with zero score should not save, got %d saves", store.Saves)
	}
}

func TestSession_EmptyLayout(t *testing.T) {
	if _, err := NewSession(testConfig(), &MockStorage{}, &Layout{Source: "test", Index: 1}); err == nil {
		t.Error("Expected error for a layout without rows")
	}
}

func TestSession_ZeroScoreGameOverNotRecorded(t *testing.T) {
	store := &MockStorage{}
	sess, _ := NewSession(testConfig(), store, nil)

	forceTopOut(sess.Game, 0)
	ev, err := sess.Tick()
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if ev.Kind != EventGameOver {
		t.Fatalf("Expected game over, got %s", ev.Kind)
	}
	if store.Saves != 0 || len(store.Entries) != 0 {
		t.Errorf("Zero-score game should not be saved, got %d saves %+v", store.Saves, store.Entries)
	}
	if sess.GamesPlayed != 0 {
		t.Errorf("Zero-score game should not count, got %d games", sess.GamesPlayed)
	}
	if sess.Scoring.GetAttempts() != 0 {
		t.Errorf("Expected no attempts, got %d", sess.Scoring.GetAttempts())
	}
}

func TestSession_LinesCounted(t *testing.T) {
	store := &MockStorage{}
	sess, _ := NewSession(Config{Width: 4, Height: 12, PoolSize: 3, Bag: piece.NewSeededBag(1)}, store, nil)

	for x := 1; x < 4; x++ {
		sess.Game.grid.Set(x, 11, piece.Block(piece.Green))
	}
	sess.Game.current = NewTetromino(piece.I, -2, 8)
	ev, _ := sess.Tick()
	if ev.Kind != EventLock || len(ev.Cleared) != 1 {
		t.Fatalf("Expected a single clear, got %s %v", ev.Kind, ev.Cleared)
	}

	if err := sess.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if len(store.Entries) != 1 {
		t.Fatalf("Expected 1 stored entry, got %d", len(store.Entries))
	}
	if store.Entries[0].Score != 40 || store.Entries[0].Lines != 1 {
		t.Errorf("Expected 40 points over 1 line, got %+v", store.Entries[0])
	}
}

func TestSession_FinishIsIdempotent(t *testing.T) {
	store := &MockStorage{}
	sess, _ := NewSession(testConfig(), store, nil)
	sess.Game.score = 120

	if err := sess.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if err := sess.Finish(); err != nil {
		t.Fatalf("second Finish failed: %v", err)
	}

	if store.Saves != 1 {
		t.Errorf("Expected exactly 1 save, got %d", store.Saves)
	}
	if store.Entries[0].Score != 120 {
		t.Errorf("Expected 120 stored, got %d", store.Entries[0].Score)
	}
}

func TestSession_SaveError(t *testing.T) {
	store := &MockStorage{SaveErr: errors.New("read-only")}
	sess, _ := NewSession(testConfig(), store, nil)

	forceTopOut(sess.Game, 40)
	ev, err := sess.Tick()

	if err == nil {
		t.Error("Expected save error to surface")
	}
	if ev.Kind != EventGameOver {
		t.Errorf("Game should still be over, got %s", ev.Kind)
	}
	if sess.Game.Phase() != state.Active {
		t.Errorf("Play should continue, phase %s", sess.Game.Phase())
	}
}
