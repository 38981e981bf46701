// Package scanner discovers statement documents on disk.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/card-recon/internal/logging"
)

// DefaultExtensions are the document extensions picked up by a scan.
var DefaultExtensions = []string{".pdf"}

// DocumentScanner walks files and directories for statement documents.
type DocumentScanner struct {
	logger     logging.Logger
	extensions []string
}

// NewDocumentScanner creates a DocumentScanner. Without extensions it
// matches DefaultExtensions.
func NewDocumentScanner(logger logging.Logger, extensions ...string) *DocumentScanner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &DocumentScanner{
		logger:     logger.WithField(logging.FieldComponent, "DocumentScanner"),
		extensions: extensions,
	}
}

// ScanPaths returns the documents under the given paths (files or
// directories) in traversal order. An unreadable root is an error; an
// unreadable entry below a root is logged and skipped.
func (s *DocumentScanner) ScanPaths(paths []string) ([]string, error) {
	var docs []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			s.logger.WithError(err).WithField("path", p).Error("Failed to stat path")
			return nil, fmt.Errorf("failed to stat path %s: %w", p, err)
		}

		if !info.IsDir() {
			if s.matches(p) {
				docs = append(docs, p)
			}
			continue
		}

		dirDocs, err := s.scanDirectory(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, dirDocs...)
	}

	return docs, nil
}

func (s *DocumentScanner) scanDirectory(dirPath string) ([]string, error) {
	var docs []string

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dirPath {
				return err
			}
			s.logger.WithError(err).WithField("path", path).Warn("Error walking path")
			return nil
		}
		if d.IsDir() {
			if path != dirPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if s.matches(path) {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	s.logger.Debug("Scanned directory",
		logging.F("path", dirPath),
		logging.F(logging.FieldCount, len(docs)))
	return docs, nil
}

func (s *DocumentScanner) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
