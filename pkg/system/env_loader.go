package system

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// findProjectRoot walks up from the working directory until it finds a
// directory containing filename.
func findProjectRoot(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, filename)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // hit the filesystem root
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// LoadEnv reads KEY=VALUE pairs from an env file into the process
// environment. The file is looked up in the working directory first, then
// up the directory tree, so the binary can run from a subdirectory of the
// checkout. Blank lines, comments and lines without = are skipped.
func LoadEnv(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		root, rootErr := findProjectRoot(filename)
		if rootErr != nil {
			return fmt.Errorf("env file %s not found: %w", filename, rootErr)
		}
		f, err = os.Open(filepath.Join(root, filename))
		if err != nil {
			return fmt.Errorf("failed to open env file: %w", err)
		}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if err := os.Setenv(key, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return scanner.Err()
}
