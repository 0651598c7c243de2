package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go-tetris/internal/config"
	"go-tetris/internal/game"
	"go-tetris/internal/piece"
	"go-tetris/internal/render"
	"go-tetris/internal/scoring"

	tea "github.com/charmbracelet/bubbletea"
)

// durationFlag takes a Go duration ("750ms") or plain seconds ("1.5").
type durationFlag time.Duration

func (d *durationFlag) String() string {
	return time.Duration(*d).String()
}

func (d *durationFlag) Set(s string) error {
	v, err := config.ParseDuration(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("interval must be positive: %s", s)
	}
	*d = durationFlag(v)
	return nil
}

type strictIntFlag int

func (i *strictIntFlag) String() string {
	return fmt.Sprint(int(*i))
}

func (i *strictIntFlag) Set(s string) error {
	if s == "true" {
		return fmt.Errorf("value required (format: -flag=value)")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*i = strictIntFlag(v)
	return nil
}

func (i *strictIntFlag) IsBoolFlag() bool { return true }

const snapshotCellSize = 24

// setupLogger discards everything unless debug is set, in which case it
// appends to go-tetris-debug.log in the temp dir. The returned func closes
// the file.
func setupLogger(debug bool) (*slog.Logger, func(), error) {
	if !debug {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	path := filepath.Join(os.TempDir(), "go-tetris-debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

// pickLayout loads every layout under paths and chooses one with rng.
func pickLayout(paths []string, rng *rand.Rand) (*game.Layout, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	layouts, err := game.LoadLayouts(paths)
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found in provided paths")
	}
	l := layouts[rng.IntN(len(layouts))]
	return &l, nil
}

// newRands returns separate generators for the piece bag and the layout
// choice. With seeded set the bag deals exactly what piece.NewSeededBag(seed)
// would, whatever the seed value; otherwise both are randomly seeded.
func newRands(seed uint64, seeded bool) (bag, layout *rand.Rand) {
	if !seeded {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
			rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return piece.NewSeededRand(seed), piece.NewSeededRand(seed)
}

func writeSnapshot(path string, g *game.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := render.Snapshot(f, g, snapshotCellSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	var (
		configPath  string
		width       strictIntFlag
		height      strictIntFlag
		pool        strictIntFlag
		preview     strictIntFlag
		interval    durationFlag
		seed        uint64
		seeded      bool
		snapshot    string
		debug       bool
		writeConfig bool
	)

	flag.StringVar(&configPath, "config", "", "Settings file (default ~/.config/go-tetris/config.json)")
	flag.Var(&width, "width", "Well width in cells")
	flag.Var(&height, "height", "Well height in cells")
	flag.Var(&pool, "pool", "Pieces kept ready in the pool")
	flag.Var(&preview, "preview", "Pooled pieces shown as next")
	flag.Var(&interval, "interval", "Gravity interval (e.g. 500ms or 0.5)")
	flag.Var(&interval, "i", "Gravity interval (shorthand)")
	flag.Uint64Var(&seed, "seed", 0, "Seed the piece bag for a repeatable game")
	flag.StringVar(&snapshot, "snapshot", "", "Write a PNG of the final board to this path")
	flag.BoolVar(&debug, "debug", false, "Write a debug log to the temp dir")
	flag.BoolVar(&writeConfig, "write-config", false, "Save the effective settings to the config file and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [layout files or dirs...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "        --width=N          Well width (default 10)\n")
		fmt.Fprintf(os.Stderr, "        --height=N         Well height (default 20)\n")
		fmt.Fprintf(os.Stderr, "        --pool=N           Pieces kept in the pool (default 10)\n")
		fmt.Fprintf(os.Stderr, "        --preview=N        Next pieces shown (default 4)\n")
		fmt.Fprintf(os.Stderr, "    -i, --interval=D       Gravity interval, e.g. 500ms (default 1s)\n")
		fmt.Fprintf(os.Stderr, "        --seed=N           Repeatable piece sequence (any N, 0 included)\n")
		fmt.Fprintf(os.Stderr, "        --snapshot=PATH    Save the final board as PNG\n")
		fmt.Fprintf(os.Stderr, "        --config=PATH      Settings file\n")
		fmt.Fprintf(os.Stderr, "        --write-config     Save effective settings and exit\n")
		fmt.Fprintf(os.Stderr, "        --debug            Log to %s\n", filepath.Join(os.TempDir(), "go-tetris-debug.log"))
	}

	flag.Parse()

	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Printf("Error locating config: %v\n", err)
			os.Exit(1)
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the settings file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = int(width)
		case "height":
			cfg.Height = int(height)
		case "pool":
			cfg.PoolSize = int(pool)
		case "preview":
			cfg.Preview = int(preview)
		case "interval", "i":
			cfg.Interval = config.Duration(interval)
		case "seed":
			seeded = true
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid settings: %v\n", err)
		os.Exit(1)
	}

	if writeConfig {
		if err := config.Save(configPath, cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Settings written to %s\n", configPath)
		return
	}

	logger, closeLog, err := setupLogger(debug)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	bagRng, layoutRng := newRands(seed, seeded)

	layout, err := pickLayout(flag.Args(), layoutRng)
	if err != nil {
		fmt.Printf("Error loading layouts: %v\n", err)
		os.Exit(1)
	}

	storage, err := scoring.NewJSONFileStorage()
	if err != nil {
		fmt.Printf("Error: failed to create score storage: %v\n", err)
		os.Exit(1)
	}

	sess, err := game.NewSession(game.Config{
		Width:    cfg.Width,
		Height:   cfg.Height,
		PoolSize: cfg.PoolSize,
		Bag:      piece.NewBag(bagRng),
		Logger:   logger,
	}, storage, layout)
	if err != nil {
		fmt.Printf("Error initializing game: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session started", "config", configPath, "scores", storage.Path(), "seeded", seeded, "seed", seed)

	model := newLocalState(sess, newKeyMap(cfg.Keys), time.Duration(cfg.Interval), cfg.Preview, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
	}

	if err := sess.Finish(); err != nil {
		fmt.Printf("Error saving score: %v\n", err)
	}

	fmt.Printf("Final score: %d | Games: %d | Best this session: %d\n",
		sess.Game.Score(), sess.GamesPlayed, sess.BestScore)
	if sess.Scoring.GotHighScore() {
		fmt.Println("You got a high score!")
	}
	if top := sess.Scoring.GetNScoreEntries(5); len(top) > 0 {
		fmt.Println("Top 5 scores:")
		for _, entry := range top {
			fmt.Printf("  * %d (%d lines) on %s\n", entry.Score, entry.Lines, entry.Timestamp)
		}
	}

	if snapshot != "" {
		if err := writeSnapshot(snapshot, sess.Game); err != nil {
			fmt.Printf("Error writing snapshot: %v\n", err)
		} else {
			fmt.Printf("Board saved to %s\n", snapshot)
		}
	}
}
