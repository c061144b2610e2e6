// ABOUTME: Tests specific to the SQLite storage backend
// ABOUTME: Covers database creation and persistence across reopen

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/models"
)

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "daterange.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSQLiteReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "daterange.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	p := models.NewPreset("Week", daterange.NewPastDays(7, 0))
	mustNoErr(t, store.CreatePreset(p))
	mustNoErr(t, store.SaveSelection(daterange.Today(0).Record()))
	mustNoErr(t, store.Close())

	store, err = NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()

	if _, err := store.GetPreset(p.ID); err != nil {
		t.Errorf("preset lost after reopen: %v", err)
	}
	if _, ok, err := store.LoadSelection(); err != nil || !ok {
		t.Errorf("selection lost after reopen: ok=%v err=%v", ok, err)
	}
}
