package sqlite

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/database"
)

type collegeRepository struct {
	store *Store
}

// Rename moves every distance and souvenir row from oldName to newName
func (r *collegeRepository) Rename(ctx context.Context, oldName, newName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT 1 FROM distances WHERE start_college = ?1 OR end_college = ?1
			UNION ALL
			SELECT 1 FROM souvenirs WHERE college = ?1
		)`, newName).Scan(&taken)
	if err != nil {
		return fmt.Errorf("failed to check college name: %w", err)
	}
	if taken > 0 {
		return database.ErrAlreadyExists
	}

	statements := []string{
		`UPDATE distances SET start_college = ?2 WHERE start_college = ?1`,
		`UPDATE distances SET end_college = ?2 WHERE end_college = ?1`,
		`UPDATE souvenirs SET college = ?2 WHERE college = ?1`,
	}

	var changed int64
	for _, stmt := range statements {
		result, err := tx.ExecContext(ctx, stmt, oldName, newName)
		if err != nil {
			return fmt.Errorf("failed to rename college: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		changed += n
	}
	if changed == 0 {
		return database.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("[STORE] Renamed college %q to %q (%d rows)", oldName, newName, changed)
	return nil
}

// Delete removes a college's distances in both directions and its souvenirs
func (r *collegeRepository) Delete(ctx context.Context, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM distances WHERE start_college = ?1 OR end_college = ?1`,
		`DELETE FROM souvenirs WHERE college = ?1`,
	}

	var removed int64
	for _, stmt := range statements {
		result, err := tx.ExecContext(ctx, stmt, name)
		if err != nil {
			return fmt.Errorf("failed to delete college: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		removed += n
	}
	if removed == 0 {
		return database.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("[STORE] Deleted college %q (%d rows)", name, removed)
	return nil
}
