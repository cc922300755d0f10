package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
)

type distanceRepository struct {
	store *Store
}

// Lookup returns the from→to distance. The reverse row is never consulted.
func (r *distanceRepository) Lookup(ctx context.Context, from, to string) (float64, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var miles float64
	err := r.store.db.QueryRowContext(ctx,
		`SELECT distance FROM distances WHERE start_college = ? AND end_college = ?`,
		from, to,
	).Scan(&miles)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up distance: %w", err)
	}

	return miles, true, nil
}

func (r *distanceRepository) Colleges(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT start_college AS name FROM distances
	          UNION
	          SELECT end_college FROM distances
	          UNION
	          SELECT college FROM souvenirs
	          ORDER BY name`

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query colleges: %w", err)
	}
	defer rows.Close()

	var colleges []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan college: %w", err)
		}
		colleges = append(colleges, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating colleges: %w", err)
	}

	return colleges, nil
}

func (r *distanceRepository) ListFrom(ctx context.Context, college string) ([]models.Distance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT start_college, end_college, distance
	          FROM distances
	          WHERE start_college = ?
	          ORDER BY distance, end_college`

	rows, err := r.store.db.QueryContext(ctx, query, college)
	if err != nil {
		return nil, fmt.Errorf("failed to query distances: %w", err)
	}
	defer rows.Close()

	var distances []models.Distance
	for rows.Next() {
		var d models.Distance
		if err := rows.Scan(&d.StartCollege, &d.EndCollege, &d.Miles); err != nil {
			return nil, fmt.Errorf("failed to scan distance: %w", err)
		}
		distances = append(distances, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distances: %w", err)
	}

	return distances, nil
}

func (r *distanceRepository) Upsert(ctx context.Context, d *models.Distance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `INSERT OR REPLACE INTO distances (start_college, end_college, distance)
	          VALUES (?, ?, ?)`

	if _, err := r.store.db.ExecContext(ctx, query, d.StartCollege, d.EndCollege, d.Miles); err != nil {
		return fmt.Errorf("failed to upsert distance: %w", err)
	}

	return nil
}

func (r *distanceRepository) Delete(ctx context.Context, from, to string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx,
		`DELETE FROM distances WHERE start_college = ? AND end_college = ?`, from, to)
	if err != nil {
		return fmt.Errorf("failed to delete distance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrNotFound
	}

	return nil
}

// SetBatch writes entries in one transaction and returns how many rows changed
func (r *distanceRepository) SetBatch(ctx context.Context, entries []models.Distance, mode database.BatchMode) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`INSERT OR %s INTO distances (start_college, end_college, distance)
	          VALUES (?, ?, ?)`, conflictClause(mode))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, d := range entries {
		result, err := stmt.ExecContext(ctx, d.StartCollege, d.EndCollege, d.Miles)
		if err != nil {
			return 0, fmt.Errorf("failed to insert distance %s -> %s: %w", d.StartCollege, d.EndCollege, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		written += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return written, nil
}

func conflictClause(mode database.BatchMode) string {
	if mode == database.BatchReplace {
		return "REPLACE"
	}
	return "IGNORE"
}
