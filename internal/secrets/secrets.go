// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text
// files, with environment variables as a fallback. Each file in the directory
// represents one secret: the filename is the key name and the file contents
// (trimmed) are the value.
//
// Supported key files: tavily-api-key, gemini-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envVars maps secret key names to the environment variables consulted when
// the key file is absent, for container deployments without a secrets dir.
var envVars = map[string]string{
	"tavily-api-key": "TAVILY_API_KEY",
	"gemini-api-key": "GEMINI_API_KEY",
}

// Load reads all files in dir and returns a map of filename to trimmed
// contents, then fills any missing known key from its environment variable.
// A missing directory or missing files are not errors; Load returns whatever
// it found. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	secrets := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

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
			secrets[entry.Name()] = value
		}
	}

	for key, env := range envVars {
		if _, ok := secrets[key]; ok {
			continue
		}
		if value := strings.TrimSpace(os.Getenv(env)); value != "" {
			secrets[key] = value
		}
	}

	return secrets, nil
}
