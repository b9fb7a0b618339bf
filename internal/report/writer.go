package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the name of the generated wiki page
const DefaultFileName = "PR_Status.md"

// OutputPath resolves the report path, defaulting dir to the current directory
func OutputPath(dir, name string) string {
	if dir == "" {
		dir = "."
	}
	if name == "" {
		name = DefaultFileName
	}
	return filepath.Join(dir, name)
}

// WriteFile replaces path with content, creating its directory if needed.
// The content goes to a temp file first, so readers never see a partial page.
func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pr-status-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
