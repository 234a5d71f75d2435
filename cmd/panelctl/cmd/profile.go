package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// profile holds per-user defaults read from the profile file.
//
//	api = "https://api.example.com"
//	timeout = "5s"
//	email = "root@example.com"
type profile struct {
	API     string `toml:"api"`
	Timeout string `toml:"timeout"`
	Email   string `toml:"email"`
}

// defaultProfilePath is $HOME/.panel/config.toml.
func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".panel", "config.toml")
	}
	return filepath.Join(home, ".panel", "config.toml")
}

// loadProfile reads path from fs. A missing file is an empty profile.
func loadProfile(fs afero.Fs, path string) (*profile, error) {
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return &profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p profile
	if _, err := toml.Decode(string(data), &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if p.Timeout != "" {
		if _, err := time.ParseDuration(p.Timeout); err != nil {
			return nil, fmt.Errorf("profile timeout %q: %w", p.Timeout, err)
		}
	}
	return &p, nil
}

// timeout returns the profile timeout, or fallback when unset.
func (p *profile) timeout(fallback time.Duration) time.Duration {
	if p.Timeout == "" {
		return fallback
	}
	d, _ := time.ParseDuration(p.Timeout)
	return d
}
