package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/TimelordUK/mseek/internal/config"
)

type keyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Generate  key.Binding
}

func newKeyMap(cfg config.KeybindingConfig) keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys(cfg.Quit...), key.WithHelp(first(cfg.Quit), "quit")),
		Up:        key.NewBinding(key.WithKeys(cfg.Up...), key.WithHelp(first(cfg.Up), "prev log")),
		Down:      key.NewBinding(key.WithKeys(cfg.Down...), key.WithHelp(first(cfg.Down), "next log")),
		NextField: key.NewBinding(key.WithKeys(cfg.NextField...), key.WithHelp(first(cfg.NextField), "next term")),
		PrevField: key.NewBinding(key.WithKeys(cfg.PrevField...), key.WithHelp(first(cfg.PrevField), "prev term")),
		Toggle:    key.NewBinding(key.WithKeys(cfg.Toggle...), key.WithHelp(first(cfg.Toggle), "open/close")),
		Generate:  key.NewBinding(key.WithKeys(cfg.Generate...), key.WithHelp(first(cfg.Generate), "create files")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.NextField, k.Up, k.Down, k.Toggle, k.Generate, k.Quit}
}

func first(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
