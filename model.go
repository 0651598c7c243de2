package main

import (
	"fmt"
	"log/slog"
	"time"

	"go-tetris/internal/game"
	"go-tetris/internal/render"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// LocalState is the bubbletea model. Ticks and key presses both arrive
// through Update, so the game is only ever touched from one goroutine.
type LocalState struct {
	Session  *game.Session
	keys     keyMap
	help     help.Model
	interval time.Duration
	preview  int
	err      error // last failure to save scores
	log      *slog.Logger
}

type TickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func newLocalState(sess *game.Session, keys keyMap, interval time.Duration, preview int, log *slog.Logger) *LocalState {
	return &LocalState{
		Session:  sess,
		keys:     keys,
		help:     help.New(),
		interval: interval,
		preview:  preview,
		log:      log,
	}
}

func (s *LocalState) Init() tea.Cmd {
	return tickCmd(s.interval)
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	g := s.Session.Game

	switch msg := msg.(type) {
	case TickMsg:
		ev, err := s.Session.Tick()
		if err != nil {
			s.err = err
		}
		if ev.Kind == game.EventGameOver {
			s.log.Info("game over", "score", ev.Score, "games", s.Session.GamesPlayed)
		}
		return s, tickCmd(s.interval)
	case tea.WindowSizeMsg:
		s.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keys.Left):
			g.MoveLeft()
		case key.Matches(msg, s.keys.Right):
			g.MoveRight()
		case key.Matches(msg, s.keys.Down):
			g.SoftDrop()
		case key.Matches(msg, s.keys.Rotate):
			g.RotateNext()
		case key.Matches(msg, s.keys.RotateBack):
			g.RotatePrevious()
		case key.Matches(msg, s.keys.HardDrop):
			g.HardDrop()
		}
	}

	return s, nil
}

func (s *LocalState) View() string {
	status := statusStyle.Render(fmt.Sprintf("GAMES: %d | BEST: %d", s.Session.GamesPlayed, s.Session.BestScore))
	if ev := s.Session.LastEvent; ev.Kind == game.EventGameOver {
		status += "\n" + redStyle.Render(fmt.Sprintf("Game over! Final score: %d", ev.Score))
	}
	if s.err != nil {
		status += "\n" + redStyle.Render("Could not save scores: "+s.err.Error())
	}

	board := render.Board(s.Session.Game, render.Options{
		Preview: s.preview,
		Ghost:   true,
		Status:  status,
	})
	return board + "\n\n" + s.help.View(s.keys)
}
