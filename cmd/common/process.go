// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/card-recon/cmd/root"
	"fjacquet/card-recon/internal/container"
	"fjacquet/card-recon/internal/models"
)

// Container returns the application container built by the root command.
func Container() (*container.Container, error) {
	c := root.GetContainer()
	if c == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return c, nil
}

// RequireFlag fails when a mandatory flag was left empty.
func RequireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("flag --%s is required", name)
	}
	return nil
}

// OpenOutput returns fallback when path is empty, otherwise a newly created
// file. The returned close function is always safe to call.
func OpenOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- CLI tool writes to user-provided paths
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
