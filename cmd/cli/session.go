package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// session is persisted between invocations as TOML.
type session struct {
	API      string `toml:"api"`
	Token    string `toml:"token,omitempty"`
	Username string `toml:"username,omitempty"`
	// LastList is the id used when a list command omits --id.
	LastList string `toml:"last_list,omitempty"`
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".movietier-cli.toml"
	}
	return filepath.Join(home, ".movietier", "cli.toml")
}

func loadSession(path string) (session, error) {
	var s session
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	if err := toml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

func saveSession(path string, s session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	b, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return os.WriteFile(path, b, 0o600)
}

func (s session) baseURL(flag string) string {
	switch {
	case strings.TrimSpace(flag) != "":
		return strings.TrimRight(flag, "/")
	case s.API != "":
		return strings.TrimRight(s.API, "/")
	default:
		return defaultBaseURL
	}
}
