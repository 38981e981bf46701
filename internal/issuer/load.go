package issuer

import (
	"errors"
	"fmt"
	"os"

	"fjacquet/card-recon/internal/logging"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a dialect override file.
type File struct {
	Dialects []Dialect `yaml:"dialects"`
}

// LoadDialects returns the built-in dialects merged with the ones in path.
// A file dialect whose tag matches a built-in replaces it in place; new tags
// are placed ahead of the built-ins so they are routed first.
// An empty path returns the built-ins.
func LoadDialects(path string, logger logging.Logger) ([]Dialect, error) {
	builtins := Builtin()
	if path == "" {
		return builtins, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Issuer dialect file not found, using built-in dialects",
				logging.Field{Key: logging.FieldFile, Value: path})
			return builtins, nil
		}
		return nil, fmt.Errorf("failed to read issuer dialect file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse issuer dialect file %s: %w", path, err)
	}

	return Merge(builtins, file.Dialects)
}

// Merge overlays overrides onto base following the LoadDialects rules.
func Merge(base, overrides []Dialect) ([]Dialect, error) {
	index := make(map[string]int, len(base))
	for i, d := range base {
		index[d.Tag] = i
	}

	merged := append([]Dialect(nil), base...)
	var added []Dialect
	seen := map[string]bool{}
	for _, d := range overrides {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if seen[d.Tag] {
			return nil, fmt.Errorf("duplicate dialect tag %q", d.Tag)
		}
		seen[d.Tag] = true

		if i, ok := index[d.Tag]; ok {
			merged[i] = d
			continue
		}
		added = append(added, d)
	}
	return append(added, merged...), nil
}
