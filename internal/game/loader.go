package game

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go-tetris/internal/piece"
	"go-tetris/internal/state"
)

// Layout is a preset arrangement of locked blocks, bottom aligned when
// applied to a grid. Rows are written top to bottom with '.' for empty
// and a color letter (c b o y g m r) for a block.
type Layout struct {
	Rows   []string
	Source string
	Index  int // position within Source, starting at 1
}

// Name identifies the layout in messages.
func (l Layout) Name() string {
	return fmt.Sprintf("%s #%d", filepath.Base(l.Source), l.Index)
}

var separatorRe = regexp.MustCompile(`(?m)^-{3,}[ \t]*$`)

// LoadLayouts loads layouts from a list of paths (files or directories).
// Layouts inside one file are separated by lines of three or more dashes.
func LoadLayouts(paths []string) ([]Layout, error) {
	var layouts []Layout

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if !info.IsDir() {
			l, err := loadFile(path)
			if err != nil {
				return nil, err
			}
			layouts = append(layouts, l...)
			continue
		}

		files, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
		}
		for _, entry := range files {
			if entry.IsDir() {
				continue
			}
			l, err := loadFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			layouts = append(layouts, l...)
		}
	}

	return layouts, nil
}

func loadFile(path string) ([]Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var contentBuilder strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		contentBuilder.WriteString(scanner.Text() + "\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}

	var layouts []Layout
	for _, part := range separatorRe.Split(contentBuilder.String(), -1) {
		var rows []string
		for _, line := range strings.Split(part, "\n") {
			line = strings.TrimRight(line, " \t\r")
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			rows = append(rows, line)
		}
		if len(rows) == 0 {
			continue
		}
		l := Layout{Rows: rows, Source: path, Index: len(layouts) + 1}
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("layout %s: %w", l.Name(), err)
		}
		layouts = append(layouts, l)
	}

	return layouts, nil
}

func (l Layout) validate() error {
	if len(l.Rows) == 0 {
		return fmt.Errorf("layout has no rows")
	}
	for i, row := range l.Rows {
		if len(row) != len(l.Rows[0]) {
			return fmt.Errorf("row %d is %d wide, expected %d", i+1, len(row), len(l.Rows[0]))
		}
		full := true
		for j := 0; j < len(row); j++ {
			if row[j] == '.' {
				full = false
				continue
			}
			if _, ok := piece.ColorFromLetter(row[j]); !ok {
				return fmt.Errorf("row %d has unknown cell %q", i+1, row[j])
			}
		}
		// A full row could never be cleared: only rows touched by a
		// locking piece are scanned.
		if full {
			return fmt.Errorf("row %d is already full", i+1)
		}
	}
	return nil
}

// ApplyLayout fills the bottom of the grid with l. It is only allowed
// before Start.
func (g *Game) ApplyLayout(l Layout) error {
	if !g.machine.Is(state.Spawning) {
		return fmt.Errorf("layout %s: game already started", l.Name())
	}
	if err := l.validate(); err != nil {
		return fmt.Errorf("layout %s: %w", l.Name(), err)
	}
	if len(l.Rows) > g.grid.Height() {
		return fmt.Errorf("layout %s: %d rows do not fit a grid %d tall", l.Name(), len(l.Rows), g.grid.Height())
	}
	if len(l.Rows[0]) != g.grid.Width() {
		return fmt.Errorf("layout %s: %d columns, grid is %d wide", l.Name(), len(l.Rows[0]), g.grid.Width())
	}

	g.grid.Clear()
	top := g.grid.Height() - len(l.Rows)
	for i, row := range l.Rows {
		for x := 0; x < len(row); x++ {
			if col, ok := piece.ColorFromLetter(row[x]); ok {
				g.grid.Set(x, top+i, piece.Block(col))
			}
		}
	}
	g.log.Debug("layout applied", "layout", l.Name(), "rows", len(l.Rows))
	return nil
}
