package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/database"

	_ "modernc.org/sqlite"
)

const (
	DefaultDBFileName = "data.db"
	schemaVersion     = 2
)

// Store is a SQLite-based data store implementing database.DataStore
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	distanceRepo database.DistanceRepository
	souvenirRepo database.SouvenirRepository
	collegeRepo  database.CollegeRepository
}

// New creates a new SQLite store at the specified path
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Printf("Opening SQLite database at: %s", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.distanceRepo = &distanceRepository{store: store}
	store.souvenirRepo = &souvenirRepository{store: store}
	store.collegeRepo = &collegeRepository{store: store}

	return store, nil
}

// GetDBPath returns the current database file path
func (s *Store) GetDBPath() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist, create everything
		return s.createSchema()
	}

	if version < schemaVersion {
		if err := s.runMigrations(version); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (2);

	-- Directed distances; B->A is a separate row from A->B
	CREATE TABLE IF NOT EXISTS distances (
		start_college TEXT NOT NULL,
		end_college TEXT NOT NULL,
		distance REAL NOT NULL CHECK (distance >= 0),
		PRIMARY KEY (start_college, end_college)
	);

	CREATE TABLE IF NOT EXISTS souvenirs (
		college TEXT NOT NULL,
		souvenir TEXT NOT NULL,
		price REAL NOT NULL CHECK (price >= 0),
		PRIMARY KEY (college, souvenir)
	);

	CREATE INDEX IF NOT EXISTS idx_distances_end ON distances(end_college);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("SQLite schema initialized (version %d)", schemaVersion)
	return nil
}

func (s *Store) runMigrations(fromVersion int) error {
	if fromVersion < 2 {
		if _, err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_distances_end ON distances(end_college)"); err != nil {
			return fmt.Errorf("failed to migrate to version 2: %w", err)
		}
	}

	_, err := s.db.Exec("UPDATE schema_version SET version = ?", schemaVersion)
	if err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}

	log.Printf("SQLite schema migrated from version %d to %d", fromVersion, schemaVersion)
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		// Checkpoint WAL before closing
		s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Repository accessors
func (s *Store) Distances() database.DistanceRepository { return s.distanceRepo }
func (s *Store) Souvenirs() database.SouvenirRepository { return s.souvenirRepo }
func (s *Store) Colleges() database.CollegeRepository   { return s.collegeRepo }
