package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envFile = ".env"

// ReadEnvValue returns the value of key in the project's .env file, or ""
// when the key is absent or empty.
func ReadEnvValue(root, key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, envFile))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", envFile, err)
	}

	prefix := key + "="
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), nil
		}
	}
	return "", nil
}

// WriteEnvValue sets key=value in the project's .env, replacing the existing
// line if present and appending otherwise. Writing the same value twice
// leaves the file unchanged.
func WriteEnvValue(root, key, value string) error {
	path := filepath.Join(root, envFile)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", envFile, err)
	}

	entry := key + "=" + value
	lines := strings.Split(string(data), "\n")

	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, key+"=") {
			lines[i] = entry
			replaced = true
			break
		}
	}

	if !replaced {
		// Drop a single trailing blank line before appending so the file
		// keeps exactly one final newline.
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		lines = append(lines, entry)
	}

	content := strings.Join(lines, "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	return os.WriteFile(path, []byte(content), 0644)
}
