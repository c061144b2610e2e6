// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Persists presets and the current selection with ranges stored as JSON

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/models"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite storage instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS presets (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			name TEXT UNIQUE NOT NULL,
			description TEXT,
			range_json TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_presets_id ON presets(id);

		CREATE TABLE IF NOT EXISTS selection (
			slot INTEGER PRIMARY KEY CHECK (slot = 1),
			range_json TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Preset Operations

const presetColumns = `id, name, description, range_json, created_at, updated_at`

// CreatePreset stores a new preset.
func (s *SQLiteStore) CreatePreset(p *models.Preset) error {
	rangeJSON, err := json.Marshal(p.Range)
	if err != nil {
		return fmt.Errorf("encode range: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO presets (`+presetColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, string(rangeJSON), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
		return fmt.Errorf("insert preset: %w", err)
	}
	return nil
}

// GetPreset retrieves a preset by ID.
func (s *SQLiteStore) GetPreset(id string) (*models.Preset, error) {
	return s.scanPreset(s.db.QueryRow(`SELECT `+presetColumns+` FROM presets WHERE id = ?`, id))
}

// GetPresetByName finds a preset by its name.
func (s *SQLiteStore) GetPresetByName(name string) (*models.Preset, error) {
	return s.scanPreset(s.db.QueryRow(`SELECT `+presetColumns+` FROM presets WHERE name = ?`, name))
}

// GetPresetByPrefix finds a preset by ID prefix (min 6 chars).
func (s *SQLiteStore) GetPresetByPrefix(prefix string) (*models.Preset, error) {
	if len(prefix) < MinPrefixLength {
		return nil, fmt.Errorf("prefix must be at least %d characters", MinPrefixLength)
	}

	rows, err := s.db.Query(`SELECT `+presetColumns+` FROM presets WHERE id LIKE ?`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	var matches []*models.Preset
	for rows.Next() {
		p, err := s.scanPreset(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}

	return singleMatch(matches, prefix)
}

// GetPresetByIDOrPrefix tries an exact ID, then the name, then a prefix.
func (s *SQLiteStore) GetPresetByIDOrPrefix(ref string) (*models.Preset, error) {
	return lookupPreset(s, ref)
}

// ListPresets returns all presets sorted by name.
func (s *SQLiteStore) ListPresets() ([]*models.Preset, error) {
	rows, err := s.db.Query(`SELECT ` + presetColumns + ` FROM presets ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	var presets []*models.Preset
	for rows.Next() {
		p, err := s.scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// UpdatePreset updates an existing preset.
func (s *SQLiteStore) UpdatePreset(p *models.Preset) error {
	rangeJSON, err := json.Marshal(p.Range)
	if err != nil {
		return fmt.Errorf("encode range: %w", err)
	}
	result, err := s.db.Exec(`
		UPDATE presets SET name = ?, description = ?, range_json = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Description, string(rangeJSON), p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
		return fmt.Errorf("update preset: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("preset %w: %s", ErrNotFound, p.ID)
	}
	return nil
}

// DeletePreset removes a preset.
func (s *SQLiteStore) DeletePreset(id string) error {
	result, err := s.db.Exec("DELETE FROM presets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("preset %w: %s", ErrNotFound, id)
	}
	return nil
}

// Selection

// SaveSelection persists the current selection.
func (s *SQLiteStore) SaveSelection(rec daterange.Record) error {
	rangeJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode range: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO selection (slot, range_json, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET range_json = excluded.range_json, saved_at = excluded.saved_at
	`, string(rangeJSON), time.Now())
	if err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// LoadSelection returns the persisted selection, if any.
func (s *SQLiteStore) LoadSelection() (daterange.Record, bool, error) {
	var rangeJSON string
	err := s.db.QueryRow(`SELECT range_json FROM selection WHERE slot = 1`).Scan(&rangeJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return daterange.Record{}, false, nil
	}
	if err != nil {
		return daterange.Record{}, false, fmt.Errorf("load selection: %w", err)
	}
	var rec daterange.Record
	if err := json.Unmarshal([]byte(rangeJSON), &rec); err != nil {
		return daterange.Record{}, false, fmt.Errorf("decode selection: %w", err)
	}
	return rec, true, nil
}

// Helper functions

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanPreset(row rowScanner) (*models.Preset, error) {
	var p models.Preset
	var description sql.NullString
	var rangeJSON string
	if err := row.Scan(&p.ID, &p.Name, &description, &rangeJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("preset %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan preset: %w", err)
	}
	if description.Valid {
		p.Description = &description.String
	}
	if err := json.Unmarshal([]byte(rangeJSON), &p.Range); err != nil {
		return nil, fmt.Errorf("decode range of preset %s: %w", p.ID, err)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
