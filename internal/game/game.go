package game

import (
	"context"
	"log/slog"

	"go-tetris/internal/piece"
	"go-tetris/internal/scoring"
	"go-tetris/internal/state"

	"github.com/looplab/fsm"
)

// Config sizes a game. Zero fields fall back to DefaultConfig values.
type Config struct {
	Width     int
	Height    int
	PoolSize  int        // pieces kept ready in the pool
	HighScore int        // previously stored high score
	Bag       *piece.Bag // nil draws a randomly seeded bag
	Logger    *slog.Logger
}

// DefaultConfig matches the classic 10x20 well with ten pooled pieces.
func DefaultConfig() Config {
	return Config{Width: 10, Height: 20, PoolSize: 10}
}

// EventKind says what a tick did.
type EventKind int

const (
	// EventNone: the current piece fell one row, or there is none.
	EventNone EventKind = iota
	// EventLock: the piece locked and the next one spawned.
	EventLock
	// EventGameOver: the next piece did not fit. Grid and score were reset.
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventLock:
		return "lock"
	case EventGameOver:
		return "gameOver"
	}
	return "none"
}

// Event reports the outcome of Tick.
type Event struct {
	Kind      EventKind
	Cleared   []int // rows removed by the lock, top to bottom, pre-shift indices
	Points    int   // awarded for Cleared
	Score     int   // score after the lock; the final score on game over
	HighScore int
}

// Game owns the playfield, the piece pool and the current piece. Callers
// must serialize every method call; the engine has no locking of its own.
type Game struct {
	grid      *Grid
	pool      *Pool
	current   *Tetromino
	bag       *piece.Bag
	poolSize  int
	score     int
	highScore int
	stats     *Stats
	machine   *state.Machine
	log       *slog.Logger
}

// New builds a game in the Spawning phase. Call Start to deal the first
// piece.
func New(cfg Config) *Game {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = def.PoolSize
	}
	if cfg.Bag == nil {
		cfg.Bag = piece.NewBag(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.HighScore < 0 {
		cfg.HighScore = 0
	}

	g := &Game{
		grid:      NewGrid(cfg.Width, cfg.Height),
		pool:      NewPool(cfg.PoolSize + 1),
		bag:       cfg.Bag,
		poolSize:  cfg.PoolSize,
		highScore: cfg.HighScore,
		stats:     newStats(),
		log:       cfg.Logger,
	}
	g.machine = state.NewMachine(getStateCallbacks(g))
	return g
}

func getStateCallbacks(g *Game) fsm.Callbacks {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			g.log.Debug("phase", "from", e.Src, "to", e.Dst, "event", e.Event)
		},
		"enter_" + string(state.GameOver): func(_ context.Context, e *fsm.Event) {
			if g.score > g.highScore {
				g.highScore = g.score
			}
			g.stats.Games++
			g.log.Info("game over", "score", g.score, "highscore", g.highScore, "lines", g.stats.Lines)
			g.grid.Clear()
			g.score = 0
		},
	}
}

func (g *Game) fire(event string) {
	if err := g.machine.Fire(event); err != nil {
		g.log.Error("phase transition failed", "event", event, "phase", g.machine.Phase(), "err", err)
	}
}

func (g *Game) Width() int { return g.grid.Width() }
func (g *Game) Height() int { return g.grid.Height() }
func (g *Game) Score() int { return g.score }
func (g *Game) HighScore() int { return g.highScore }
func (g *Game) Phase() state.Phase { return g.machine.Phase() }
func (g *Game) Stats() *Stats { return g.stats }
func (g *Game) Current() *Tetromino { return g.current }
func (g *Game) Rows() [][]piece.Cell { return g.grid.Rows() }
func (g *Game) Pool(n int) []*Tetromino { return g.pool.Peek(n) }

// CellAt returns the grid cell at (x, y); off-grid coordinates read as
// piece.Wall so boundaries collide like locked blocks.
func (g *Game) CellAt(x, y int) piece.Cell {
	return g.grid.At(x, y)
}

// Fits reports whether t fits at its own position.
func (g *Game) Fits(t *Tetromino) bool {
	return g.FitsAt(t, t.x, t.y)
}

// FitsAt reports whether every occupied cell of t's active rotation,
// placed with its top-left corner at (x, y), lands on an empty cell.
func (g *Game) FitsAt(t *Tetromino, x, y int) bool {
	for relY, row := range t.Current() {
		for relX, c := range row {
			if c.IsEmpty() {
				continue
			}
			if !g.grid.At(x+relX, y+relY).IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Solidify writes t's occupied cells into the grid with t's color. t is
// expected to fit where it stands.
func (g *Game) Solidify(t *Tetromino) {
	block := piece.Block(t.Color())
	for _, p := range t.Cells() {
		g.grid.Set(p.X, p.Y, block)
	}
}

// AddToPool appends a tetromino of kind k at the spawn position:
// horizontally centered on its first rotation, top row 0.
func (g *Game) AddToPool(k piece.Kind) *Tetromino {
	width := piece.ShapesFor(k)[0].Width()
	t := NewTetromino(k, floorDiv(g.grid.Width()-width, 2), 0)
	g.pool.Push(t)
	return t
}

// Start fills the pool and promotes its head to the current piece. It
// does nothing once the game has started.
func (g *Game) Start() Event {
	if !g.machine.Is(state.Spawning) {
		return Event{Kind: EventNone, Score: g.score, HighScore: g.highScore}
	}
	for g.pool.Len() < g.poolSize {
		g.AddToPool(g.bag.Next())
	}
	g.current = g.pool.Pop()
	g.stats.recordSpawn(g.current.Kind())
	g.fire(state.EventStart)
	g.log.Debug("start", "width", g.Width(), "height", g.Height(), "piece", g.current.Kind())

	if !g.Fits(g.current) {
		return g.topOut(nil, 0)
	}
	return Event{Kind: EventNone, Score: g.score, HighScore: g.highScore}
}

// Tick advances the game by one gravity step.
func (g *Game) Tick() Event {
	if g.current == nil {
		return Event{Kind: EventNone, Score: g.score, HighScore: g.highScore}
	}
	if !g.current.Update(g) {
		return Event{Kind: EventNone, Score: g.score, HighScore: g.highScore}
	}

	g.fire(state.EventSettle)
	locked := g.current
	g.Solidify(locked)

	cleared := g.clearRows(locked)
	points := scoring.Points(len(cleared))
	g.score += points
	g.stats.recordLock(len(cleared))
	if len(cleared) > 0 {
		g.log.Debug("rows cleared", "rows", cleared, "points", points, "score", g.score)
	}

	g.AddToPool(g.bag.Next())
	g.current = g.pool.Pop()
	g.stats.recordSpawn(g.current.Kind())

	if !g.Fits(g.current) {
		return g.topOut(cleared, points)
	}

	g.fire(state.EventSpawn)
	return Event{
		Kind:      EventLock,
		Cleared:   cleared,
		Points:    points,
		Score:     g.score,
		HighScore: g.highScore,
	}
}

// clearRows removes the full rows among those spanned by t, scanning top
// to bottom. Only the piece that just locked can have completed a row, so
// the rest of the grid is not checked.
func (g *Game) clearRows(t *Tetromino) []int {
	var cleared []int
	for relY := 0; relY < t.Height(); relY++ {
		y := t.y + relY
		if !g.grid.RowFull(y) {
			continue
		}
		// Rows below y keep their index after the removal, so the scan
		// can continue downward without adjusting.
		g.grid.RemoveRow(y)
		cleared = append(cleared, y)
	}
	return cleared
}

func (g *Game) topOut(cleared []int, points int) Event {
	final := g.score
	g.fire(state.EventTopOut)
	g.fire(state.EventRestart)
	return Event{
		Kind:      EventGameOver,
		Cleared:   cleared,
		Points:    points,
		Score:     final,
		HighScore: g.highScore,
	}
}

// MoveLeft, MoveRight and SoftDrop shift the current piece by one cell.
// They report false when there is no current piece or it is blocked.
func (g *Game) MoveLeft() bool { return g.move(-1, 0) }
func (g *Game) MoveRight() bool { return g.move(1, 0) }
func (g *Game) SoftDrop() bool { return g.move(0, 1) }

func (g *Game) move(dx, dy int) bool {
	if g.current == nil {
		return false
	}
	return g.current.TryMove(g, dx, dy)
}

func (g *Game) RotateNext() bool {
	if g.current == nil {
		return false
	}
	return g.current.TryRotateNext(g)
}

func (g *Game) RotatePrevious() bool {
	if g.current == nil {
		return false
	}
	return g.current.TryRotatePrevious(g)
}

// HardDrop moves the current piece straight down by its drop distance in
// one step and returns the rows moved. The piece locks on the next tick.
func (g *Game) HardDrop() int {
	if g.current == nil {
		return 0
	}
	d := g.current.DropDistance(g)
	g.current.y += d
	return d
}

// GhostY is the row the current piece would land on if hard dropped. ok
// is false when there is no current piece.
func (g *Game) GhostY() (y int, ok bool) {
	if g.current == nil {
		return 0, false
	}
	return g.current.y + g.current.DropDistance(g), true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
