// Package validation checks user-supplied command arguments.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// IsValidPath checks that path exists and is a regular file or a directory.
func IsValidPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}
	return nil
}

// IsValidDocument checks that path is an existing regular file.
func IsValidDocument(path string) error {
	if err := IsValidPath(path); err != nil {
		return err
	}
	if info, _ := os.Stat(path); info.IsDir() {
		return fmt.Errorf("expected a statement file, got directory: %s", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "csv", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'csv', 'json'", format)
	}
}
