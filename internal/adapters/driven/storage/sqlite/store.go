package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/mempack/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
)

// StoreFileName is the store file within a pack directory.
const StoreFileName = "store.db"

// Store is the SQLite-backed pack store. It provides access to the
// fingerprint, writer, reader and search interfaces through wrapper types.
type Store struct {
	db       *sql.DB
	path     string
	readOnly bool
}

// NewStore creates (or opens) the writable pack store inside packDir,
// creating the directory if needed and applying pending migrations.
func NewStore(packDir string) (*Store, error) {
	if err := os.MkdirAll(packDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating pack directory: %v", domain.ErrWrite, err)
	}

	dbPath := filepath.Join(packDir, StoreFileName)

	// WAL for durability with a single writer; busy_timeout covers
	// concurrent read-only verifier opens.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening store: %v", domain.ErrWrite, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %v", domain.ErrWrite, err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %v", domain.ErrWrite, err)
	}

	return s, nil
}

// OpenReadOnly opens the pack store inside packDir without write access.
// Used by the verifier and search-only consumers; it never creates or
// migrates the store.
func OpenReadOnly(packDir string) (*Store, error) {
	dbPath := filepath.Join(packDir, StoreFileName)
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("store %s: %w", dbPath, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("stat store: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store read-only: %w", err)
	}

	return &Store{db: db, path: dbPath, readOnly: true}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FingerprintStore returns a FingerprintStore interface backed by this store.
func (s *Store) FingerprintStore() driven.FingerprintStore {
	return &fingerprintStore{store: s}
}

// PackWriter returns a PackWriter interface backed by this store.
func (s *Store) PackWriter() driven.PackWriter {
	return &packWriter{store: s}
}

// PackReader returns a PackReader interface backed by this store.
func (s *Store) PackReader() driven.PackReader {
	return &packReader{store: s}
}

// SearchEngine returns a SearchEngine interface backed by this store.
func (s *Store) SearchEngine() driven.SearchEngine {
	return &searchEngine{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
