package scoring

import (
	"fmt"
	"sort"
	"time"
)

// lineClearPoints is indexed by rows cleared in a single lock, minus one.
// Clears larger than the table use its last entry.
var lineClearPoints = []int{40, 100, 300, 1200}

// Points returns the award for clearing rows lines with one lock.
func Points(rows int) int {
	if rows <= 0 {
		return 0
	}
	if rows > len(lineClearPoints) {
		rows = len(lineClearPoints)
	}
	return lineClearPoints[rows-1]
}

// Scoring keeps the persisted score history of finished games and the
// high score derived from it.
type Scoring struct {
	// public
	HighScore int
	// private
	storage ScoreStorage // The interface for loading/saving scores.
	history ScoreHistory
	now     func() time.Time
}

// InitScoring loads the score history through storage and seeds the high
// score from it.
func InitScoring(storage ScoreStorage) (*Scoring, error) {
	s := &Scoring{
		storage: storage,
		now:     time.Now,
	}

	entries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load score history: %w", err)
	}

	sortEntries(entries)
	s.history.Entries = entries
	if len(entries) > 0 {
		s.history.HighScoreEntry = &s.history.Entries[0]
		s.HighScore = entries[0].Score
	}

	return s, nil
}

// Record adds a finished game to the history and raises the high score
// when it was beaten. It does not persist; call SaveEntries for that.
func (s *Scoring) Record(score, lines int) ScoreHistoryEntry {
	entry := ScoreHistoryEntry{
		Score:     score,
		Lines:     lines,
		Timestamp: s.now().Format(time.RFC3339),
	}
	s.history.Entries = append(s.history.Entries, entry)
	sortEntries(s.history.Entries)
	s.history.HighScoreEntry = &s.history.Entries[0]
	s.history.Latest = &entry

	if score > s.HighScore {
		s.HighScore = score
	}
	return entry
}

// SaveEntries writes the whole history back through the storage.
func (s *Scoring) SaveEntries() error {
	if err := s.storage.SaveAll(s.history.Entries); err != nil {
		return fmt.Errorf("could not save score history: %w", err)
	}
	return nil
}

// Accessor methods for score history, delegating to the history object.
func (s *Scoring) GetHighScore() *ScoreHistoryEntry {
	return s.history.GetHighScoreEntry()
}

func (s *Scoring) GetAttempts() int {
	return len(s.history.Entries)
}

func (s *Scoring) GotHighScore() bool {
	return s.history.GotHighScore()
}

func (s *Scoring) GetNScoreEntries(n int) []ScoreHistoryEntry {
	return s.history.GetNScoreEntries(n)
}

func sortEntries(entries []ScoreHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		return entries[i].Score > entries[j].Score
	})
}
