// ABOUTME: Data migration between storage backends
// ABOUTME: Copies presets and the saved selection from source to destination

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Presets   int
	Selection bool
}

// MigrateData copies all data from src to dst storage. The destination
// should be empty before calling this function.
func MigrateData(src, dst Store) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	presets, err := src.ListPresets()
	if err != nil {
		return nil, fmt.Errorf("list source presets: %w", err)
	}
	for _, p := range presets {
		if err := dst.CreatePreset(p); err != nil {
			return nil, fmt.Errorf("create preset %q: %w", p.Name, err)
		}
		summary.Presets++
	}

	rec, ok, err := src.LoadSelection()
	if err != nil {
		return nil, fmt.Errorf("load source selection: %w", err)
	}
	if ok {
		if err := dst.SaveSelection(rec); err != nil {
			return nil, fmt.Errorf("save selection: %w", err)
		}
		summary.Selection = true
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
