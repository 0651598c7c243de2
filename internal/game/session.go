package game

import (
	"fmt"
	"log/slog"

	"go-tetris/internal/scoring"
)

// Session connects a Game to persisted scores: it seeds the high score
// from storage and records every finished game.
type Session struct {
	Game    *Game
	Scoring *scoring.Scoring
	Layout  *Layout

	// Aggregate state
	GamesPlayed int
	BestScore   int
	LastEvent   Event

	lines    int // lines cleared in the running game
	finished bool
	log      *slog.Logger
}

// NewSession loads score history from storage, builds the game, applies
// layout when given and starts play.
func NewSession(cfg Config, storage scoring.ScoreStorage, layout *Layout) (*Session, error) {
	sc, err := scoring.InitScoring(storage)
	if err != nil {
		return nil, err
	}
	if sc.HighScore > cfg.HighScore {
		cfg.HighScore = sc.HighScore
	}

	s := &Session{
		Scoring: sc,
		Game:    New(cfg),
		Layout:  layout,
	}
	s.log = s.Game.log

	if layout != nil {
		if err := s.Game.ApplyLayout(*layout); err != nil {
			return nil, err
		}
	}
	s.observe(s.Game.Start())

	return s, nil
}

// Tick advances the game and persists the score when the game ends. A
// storage failure is returned but play continues.
func (s *Session) Tick() (Event, error) {
	ev := s.Game.Tick()
	return ev, s.observe(ev)
}

func (s *Session) observe(ev Event) error {
	s.LastEvent = ev
	if ev.Kind == EventLock || ev.Kind == EventGameOver {
		s.lines += len(ev.Cleared)
	}
	if ev.Kind != EventGameOver {
		return nil
	}
	// Games that ended without scoring are not recorded, same as Finish.
	if ev.Score == 0 {
		s.lines = 0
		return nil
	}
	err := s.record(ev.Score)
	s.lines = 0
	return err
}

// Finish records the game in progress, if it scored anything, so quitting
// mid-game still keeps the result. Later calls do nothing.
func (s *Session) Finish() error {
	if s.finished {
		return nil
	}
	s.finished = true
	if s.Game.Score() == 0 {
		return nil
	}
	err := s.record(s.Game.Score())
	s.lines = 0
	return err
}

func (s *Session) record(score int) error {
	s.GamesPlayed++
	if score > s.BestScore {
		s.BestScore = score
	}
	s.Scoring.Record(score, s.lines)
	if err := s.Scoring.SaveEntries(); err != nil {
		s.log.Error("saving scores failed", "err", err)
		return fmt.Errorf("record score %d: %w", score, err)
	}
	s.log.Debug("score recorded", "score", score, "lines", s.lines, "highscore", s.Scoring.HighScore)
	return nil
}
