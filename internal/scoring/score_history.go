package scoring

// ScoreHistory holds every recorded game, best first, plus the most
// recently recorded one.
type ScoreHistory struct {
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
	Latest         *ScoreHistoryEntry
}

// ScoreHistoryEntry represents a single finished game.
type ScoreHistoryEntry struct {
	Score     int    `json:"score"`
	Lines     int    `json:"lines"`
	Timestamp string `json:"timestamp"`
}

// GetHighScoreEntry returns the highest score entry from the history.
func (sh ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	return sh.HighScoreEntry
}

// GetNScoreEntries returns the top N score entries from the history.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	// Entries are kept sorted; copy so callers cannot reorder them.
	if len(sh.Entries) < n {
		n = len(sh.Entries)
	}
	top := make([]ScoreHistoryEntry, n)
	copy(top, sh.Entries[:n])
	return top
}

// GotHighScore reports whether the latest recorded game matches the best
// score in the history.
func (sh ScoreHistory) GotHighScore() bool {
	if sh.Latest == nil {
		return false
	}
	if sh.HighScoreEntry == nil {
		return true
	}
	return sh.Latest.Score >= sh.HighScoreEntry.Score
}
