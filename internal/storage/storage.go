// ABOUTME: Storage interface and types for preset and selection persistence
// ABOUTME: Defines the contract shared by the SQLite and YAML backends

package storage

import (
	"errors"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/models"
)

// MinPrefixLength is the shortest ID prefix accepted for lookups.
const MinPrefixLength = 6

var (
	// ErrNotFound is returned when a preset or selection does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a preset name is already taken.
	ErrDuplicateName = errors.New("preset name already exists")
)

// Store defines the storage interface for saved ranges.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// Preset Operations

	// CreatePreset stores a new preset. Names are unique.
	CreatePreset(p *models.Preset) error

	// GetPreset retrieves a preset by ID.
	GetPreset(id string) (*models.Preset, error)

	// GetPresetByName finds a preset by its exact name.
	GetPresetByName(name string) (*models.Preset, error)

	// GetPresetByPrefix finds a preset by ID prefix (min 6 chars).
	GetPresetByPrefix(prefix string) (*models.Preset, error)

	// GetPresetByIDOrPrefix tries an exact ID, then the name, then an ID
	// prefix.
	GetPresetByIDOrPrefix(ref string) (*models.Preset, error)

	// ListPresets returns all presets sorted by name.
	ListPresets() ([]*models.Preset, error)

	// UpdatePreset updates an existing preset.
	UpdatePreset(p *models.Preset) error

	// DeletePreset removes a preset.
	DeletePreset(id string) error

	// Selection

	// SaveSelection persists the current picker selection.
	SaveSelection(rec daterange.Record) error

	// LoadSelection returns the persisted selection, if any.
	LoadSelection() (daterange.Record, bool, error)
}
