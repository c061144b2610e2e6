// ABOUTME: File-based storage backend writing presets and selection as YAML
// ABOUTME: Human-editable presets.yaml and selection.yaml with atomic rewrites

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/models"
)

const (
	presetsFile   = "presets.yaml"
	selectionFile = "selection.yaml"
)

// YAMLStore provides file-based storage using YAML documents.
type YAMLStore struct {
	dataDir string
	mu      sync.Mutex
}

// Compile-time check that YAMLStore implements Store.
var _ Store = (*YAMLStore)(nil)

// NewYAMLStore creates a YAML-backed store rooted at dataDir.
func NewYAMLStore(dataDir string) (*YAMLStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &YAMLStore{dataDir: dataDir}, nil
}

// Close releases resources. For YAMLStore this is a no-op.
func (s *YAMLStore) Close() error {
	return nil
}

// presetEntry represents a single preset in presets.yaml.
type presetEntry struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description *string          `yaml:"description,omitempty"`
	Range       daterange.Record `yaml:"range"`
	CreatedAt   string           `yaml:"created_at"`
	UpdatedAt   string           `yaml:"updated_at"`
}

// selectionDoc is the content of selection.yaml.
type selectionDoc struct {
	Range   daterange.Record `yaml:"range"`
	SavedAt string           `yaml:"saved_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func presetToEntry(p *models.Preset) presetEntry {
	return presetEntry{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Range:       p.Range,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func entryToPreset(e presetEntry) (*models.Preset, error) {
	created, err := parseTime(e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of preset %s: %w", e.ID, err)
	}
	updated, err := parseTime(e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at of preset %s: %w", e.ID, err)
	}
	return &models.Preset{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Range:       e.Range,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func (s *YAMLStore) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// readYAML decodes a file into v. A missing file leaves v untouched.
func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeYAML encodes v and replaces path atomically.
func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return AtomicWrite(path, data)
}

// AtomicWrite writes data to a temp file in the same directory and
// renames it over path.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *YAMLStore) readPresets() ([]presetEntry, error) {
	var entries []presetEntry
	if err := readYAML(s.path(presetsFile), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *YAMLStore) writePresets(entries []presetEntry) error {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return writeYAML(s.path(presetsFile), entries)
}

// findPreset returns the first preset matching pred.
func (s *YAMLStore) findPreset(pred func(presetEntry) bool) (*models.Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readPresets()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if pred(e) {
			return entryToPreset(e)
		}
	}
	return nil, fmt.Errorf("preset %w", ErrNotFound)
}

// Preset Operations

// CreatePreset stores a new preset.
func (s *YAMLStore) CreatePreset(p *models.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readPresets()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.ID == p.ID {
			return fmt.Errorf("preset already exists: %s", p.ID)
		}
		if e.Name == p.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
	}
	return s.writePresets(append(entries, presetToEntry(p)))
}

// GetPreset retrieves a preset by ID.
func (s *YAMLStore) GetPreset(id string) (*models.Preset, error) {
	return s.findPreset(func(e presetEntry) bool { return e.ID == id })
}

// GetPresetByName finds a preset by its name.
func (s *YAMLStore) GetPresetByName(name string) (*models.Preset, error) {
	return s.findPreset(func(e presetEntry) bool { return e.Name == name })
}

// GetPresetByPrefix finds a preset by ID prefix (min 6 chars).
func (s *YAMLStore) GetPresetByPrefix(prefix string) (*models.Preset, error) {
	if len(prefix) < MinPrefixLength {
		return nil, fmt.Errorf("prefix must be at least %d characters", MinPrefixLength)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readPresets()
	if err != nil {
		return nil, err
	}
	var matches []*models.Preset
	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) {
			p, err := entryToPreset(e)
			if err != nil {
				return nil, err
			}
			matches = append(matches, p)
		}
	}
	return singleMatch(matches, prefix)
}

// GetPresetByIDOrPrefix tries an exact ID, then the name, then a prefix.
func (s *YAMLStore) GetPresetByIDOrPrefix(ref string) (*models.Preset, error) {
	return lookupPreset(s, ref)
}

// ListPresets returns all presets sorted by name.
func (s *YAMLStore) ListPresets() ([]*models.Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readPresets()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	presets := make([]*models.Preset, 0, len(entries))
	for _, e := range entries {
		p, err := entryToPreset(e)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// UpdatePreset updates an existing preset.
func (s *YAMLStore) UpdatePreset(p *models.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readPresets()
	if err != nil {
		return err
	}
	idx := -1
	for i, e := range entries {
		if e.ID == p.ID {
			idx = i
		} else if e.Name == p.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
	}
	if idx < 0 {
		return fmt.Errorf("preset %w: %s", ErrNotFound, p.ID)
	}
	entries[idx] = presetToEntry(p)
	return s.writePresets(entries)
}

// DeletePreset removes a preset.
func (s *YAMLStore) DeletePreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readPresets()
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.ID == id {
			return s.writePresets(append(entries[:i], entries[i+1:]...))
		}
	}
	return fmt.Errorf("preset %w: %s", ErrNotFound, id)
}

// Selection

// SaveSelection persists the current selection.
func (s *YAMLStore) SaveSelection(rec daterange.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeYAML(s.path(selectionFile), selectionDoc{Range: rec, SavedAt: formatTime(time.Now())})
}

// LoadSelection returns the persisted selection, if any.
func (s *YAMLStore) LoadSelection() (daterange.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(selectionFile)); errors.Is(err, os.ErrNotExist) {
		return daterange.Record{}, false, nil
	}
	var doc selectionDoc
	if err := readYAML(s.path(selectionFile), &doc); err != nil {
		return daterange.Record{}, false, err
	}
	return doc.Range, true, nil
}
