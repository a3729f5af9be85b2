// Package state persists lightweight UI state between sessions:
// expanded directories and display toggles. Selection is deliberately
// not persisted. Corrupt or missing state degrades to defaults.
package state

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

const (
	configDirName = ".config"
	appDirName    = "explorerpro"
	stateFileName = "state.json"
)

// State is the persisted application state.
type State struct {
	// Expanded records directories the user explicitly expanded or
	// collapsed; paths absent from the map use the default (root
	// expanded, everything else collapsed).
	Expanded map[string]bool `json:"expanded,omitempty"`
	// ShowHidden toggles dotfile visibility.
	ShowHidden bool `json:"show_hidden"`
	// LastRoot is the tree root of the previous session.
	LastRoot string `json:"last_root,omitempty"`
}

// DefaultState returns the state for a first run.
func DefaultState() State {
	return State{
		Expanded:   make(map[string]bool),
		ShowHidden: true,
	}
}

func statePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, appDirName, stateFileName), nil
}

// Load reads the persisted state, returning defaults if the file is
// missing or unreadable.
func Load() State {
	path, err := statePath()
	if err != nil {
		return DefaultState()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultState()
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultState()
	}
	if s.Expanded == nil {
		s.Expanded = make(map[string]bool)
	}
	return s
}

// Save writes the state, creating the config directory if needed.
func Save(s State) error {
	path, err := statePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
