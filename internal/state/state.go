package state

import (
	"context"

	"github.com/looplab/fsm"
)

// Phase is the lifecycle position of a game.
type Phase string

const (
	// Spawning: no current piece has been promoted yet.
	Spawning Phase = "spawning"
	// Active: the current piece is falling and takes input.
	Active Phase = "active"
	// Locking: the current piece settled and is being written to the grid.
	Locking Phase = "locking"
	// GameOver: the next piece did not fit. The game resets and leaves
	// this phase within the same tick.
	GameOver Phase = "gameOver"
)

// Events accepted by a Machine.
const (
	EventStart   = "start"
	EventSettle  = "settle"
	EventSpawn   = "spawn"
	EventTopOut  = "topOut"
	EventRestart = "restart"
)

// Machine wraps the fsm driving a game's phases.
type Machine struct {
	FSM *fsm.FSM
}

// NewMachine builds a machine in the Spawning phase. callbacks uses the
// fsm naming scheme, e.g. "enter_gameOver" or "enter_state".
func NewMachine(callbacks fsm.Callbacks) *Machine {
	if callbacks == nil {
		callbacks = fsm.Callbacks{}
	}
	return &Machine{
		FSM: fsm.NewFSM(
			string(Spawning),
			getStateTransitions(),
			callbacks,
		),
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return Phase(m.FSM.Current())
}

// Is reports whether the machine is in p.
func (m *Machine) Is(p Phase) bool {
	return m.FSM.Is(string(p))
}

// Fire triggers event. We use background context as the game loop has no
// cancellation.
func (m *Machine) Fire(event string) error {
	return m.FSM.Event(context.Background(), event)
}

func getStateTransitions() fsm.Events {
	return fsm.Events{
		{Name: EventStart, Src: []string{string(Spawning)}, Dst: string(Active)},
		{Name: EventSettle, Src: []string{string(Active)}, Dst: string(Locking)},
		{Name: EventSpawn, Src: []string{string(Locking)}, Dst: string(Active)},

		// Top out can happen on the very first spawn as well as after a lock.
		{Name: EventTopOut, Src: []string{string(Active), string(Locking)}, Dst: string(GameOver)},
		{Name: EventRestart, Src: []string{string(GameOver)}, Dst: string(Active)},
	}
}
