// ABOUTME: Preset reference resolution shared by all backends
// ABOUTME: Exact ID, then name, then unambiguous ID prefix

package storage

import (
	"errors"
	"fmt"

	"github.com/harper/daterange/internal/models"
)

// lookupPreset resolves a user-supplied reference against any store.
func lookupPreset(s Store, ref string) (*models.Preset, error) {
	p, err := s.GetPreset(ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p, err = s.GetPresetByName(ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if len(ref) < MinPrefixLength {
		return nil, fmt.Errorf("preset %w: %s", ErrNotFound, ref)
	}
	return s.GetPresetByPrefix(ref)
}

// singleMatch returns the only element of matches or a descriptive error.
func singleMatch(matches []*models.Preset, prefix string) (*models.Preset, error) {
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("preset %w: no preset with prefix %s", ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous prefix %s matches %d presets", prefix, len(matches))
	}
}
