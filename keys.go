package main

import (
	"strings"

	"go-tetris/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Down       key.Binding
	Rotate     key.Binding
	RotateBack key.Binding
	HardDrop   key.Binding
	Quit       key.Binding
}

func newKeyMap(k config.Keys) keyMap {
	bind := func(keys []string, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), desc))
	}
	return keyMap{
		Left:       bind(k.Left, "left"),
		Right:      bind(k.Right, "right"),
		Down:       bind(k.Down, "down"),
		Rotate:     bind(k.Rotate, "rotate"),
		RotateBack: bind(k.RotateBack, "rotate back"),
		HardDrop:   bind(k.HardDrop, "drop"),
		Quit:       bind(k.Quit, "quit"),
	}
}

var arrowNames = strings.NewReplacer("left", "←", "right", "→", "up", "↑", "down", "↓")

func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = arrowNames.Replace(k)
	}
	return strings.Join(names, "/")
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.HardDrop, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down},
		{k.Rotate, k.RotateBack, k.HardDrop},
		{k.Quit},
	}
}
