// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from a directory of plain-text
// files. The filename is the key name and the trimmed file contents are the
// value, so CI can mount credentials without touching the config file.
//
// Supported key files: openai-api-key, github-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Secrets maps key names to credential values.
type Secrets map[string]string

// Get returns the value for key, or fallback when fallback is non-empty or
// the key is unknown. An explicit config value always beats a key file.
func (s Secrets) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Load reads all files in dir into a Secrets map. A missing directory is
// not an error; dotfiles, subdirectories and empty files are skipped, and
// an unreadable file warns on stderr without aborting.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[entry.Name()] = value
		}
	}

	return s, nil
}
