// ABOUTME: Migration command for converting daterange data between storage backends
// ABOUTME: Supports sqlite-to-yaml and yaml-to-sqlite with safety checks

package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/config"
	"github.com/harper/daterange/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Migrate saved presets and the current selection from the configured
backend to a different backend.

Does NOT update the config file; verify the migration was successful
then update config.json (or run "daterange setup").

Examples:
  daterange migrate --to yaml
  daterange migrate --to sqlite --data-dir ~/daterange-sqlite
  daterange migrate --to yaml --force`,
	Annotations: map[string]string{skipStore: "true"},
	Args:        cobra.NoArgs,
	RunE:        runMigrate,
}

var (
	migrateTo      string
	migrateDataDir string
	migrateForce   bool
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite or yaml)")
	migrateCmd.Flags().StringVar(&migrateDataDir, "data-dir", "", "target data directory (defaults to current config data_dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target directory")
	_ = migrateCmd.MarkFlagRequired("to")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sourceBackend := cfg.GetBackend()
	targetBackend := migrateTo

	if targetBackend != config.BackendSQLite && targetBackend != config.BackendYAML {
		return fmt.Errorf("invalid target backend %q: must be %q or %q", targetBackend, config.BackendSQLite, config.BackendYAML)
	}
	if targetBackend == sourceBackend {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	targetDataDir := cfg.GetDataDir()
	if migrateDataDir != "" {
		targetDataDir = config.ExpandPath(migrateDataDir)
	}

	// The sqlite and yaml files can share a directory, so only refuse when
	// the target's own files are already there.
	existing, err := targetHasData(targetBackend, targetDataDir)
	if err != nil {
		return fmt.Errorf("check target directory: %w", err)
	}
	if existing && !migrateForce {
		return fmt.Errorf("target directory %q already holds %s data; use --force to write anyway", targetDataDir, targetBackend)
	}

	src, err := cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("open source storage (%s): %w", sourceBackend, err)
	}
	defer src.Close()

	dst, err := openMigrateStorage(targetBackend, targetDataDir)
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer dst.Close()

	out := cmd.OutOrStdout()
	color.New(color.FgYellow).Fprintln(out, "Migrating daterange data:")
	fmt.Fprintf(out, "  Source:  %s (%s)\n", sourceBackend, cfg.GetDataDir())
	fmt.Fprintf(out, "  Target:  %s (%s)\n", targetBackend, targetDataDir)
	fmt.Fprintln(out)

	summary, err := storage.MigrateData(src, dst)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	color.New(color.FgGreen).Fprintln(out, "Migration complete!")
	fmt.Fprintf(out, "  Presets:   %d\n", summary.Presets)
	fmt.Fprintf(out, "  Selection: %t\n", summary.Selection)
	fmt.Fprintln(out)
	color.New(color.FgYellow).Fprintln(out, "Note: config.json was NOT updated. To switch to the new backend, edit:")
	fmt.Fprintf(out, "  %s\n", resolvedConfigPath())
	fmt.Fprintf(out, "  Set \"backend\": %q", targetBackend)
	if migrateDataDir != "" {
		fmt.Fprintf(out, " and \"data_dir\": %q", migrateDataDir)
	}
	fmt.Fprintln(out)

	return nil
}

// targetHasData reports whether the backend's files already exist in dir.
func targetHasData(backend, dir string) (bool, error) {
	nonEmpty, err := storage.IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		return false, err
	}
	var names []string
	switch backend {
	case config.BackendSQLite:
		names = []string{config.DBFilename}
	default:
		names = []string{"presets.yaml", "selection.yaml"}
	}
	for _, name := range names {
		if matches, _ := filepath.Glob(filepath.Join(dir, name)); len(matches) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// openMigrateStorage creates a Store implementation for the given backend and data directory.
func openMigrateStorage(backend, dataDir string) (storage.Store, error) {
	switch backend {
	case config.BackendSQLite:
		return storage.NewSQLiteStore(filepath.Join(dataDir, config.DBFilename))
	case config.BackendYAML:
		return storage.NewYAMLStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}
