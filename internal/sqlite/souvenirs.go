package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
)

type souvenirRepository struct {
	store *Store
}

func (r *souvenirRepository) List(ctx context.Context, college string) ([]models.Souvenir, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT college, souvenir, price
	          FROM souvenirs
	          WHERE college = ?
	          ORDER BY souvenir`

	rows, err := r.store.db.QueryContext(ctx, query, college)
	if err != nil {
		return nil, fmt.Errorf("failed to query souvenirs: %w", err)
	}
	defer rows.Close()

	var souvenirs []models.Souvenir
	for rows.Next() {
		var s models.Souvenir
		if err := rows.Scan(&s.College, &s.Name, &s.Price); err != nil {
			return nil, fmt.Errorf("failed to scan souvenir: %w", err)
		}
		souvenirs = append(souvenirs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating souvenirs: %w", err)
	}

	return souvenirs, nil
}

func (r *souvenirRepository) Get(ctx context.Context, college, name string) (*models.Souvenir, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var s models.Souvenir
	err := r.store.db.QueryRowContext(ctx,
		`SELECT college, souvenir, price FROM souvenirs WHERE college = ? AND souvenir = ?`,
		college, name,
	).Scan(&s.College, &s.Name, &s.Price)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get souvenir: %w", err)
	}

	return &s, nil
}

func (r *souvenirRepository) Add(ctx context.Context, s *models.Souvenir) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO souvenirs (college, souvenir, price) VALUES (?, ?, ?)`,
		s.College, s.Name, s.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to add souvenir: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrAlreadyExists
	}

	return nil
}

func (r *souvenirRepository) UpdatePrice(ctx context.Context, college, name string, price float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx,
		`UPDATE souvenirs SET price = ? WHERE college = ? AND souvenir = ?`,
		price, college, name,
	)
	if err != nil {
		return fmt.Errorf("failed to update souvenir: %w", err)
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

func (r *souvenirRepository) Delete(ctx context.Context, college, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx,
		`DELETE FROM souvenirs WHERE college = ? AND souvenir = ?`, college, name)
	if err != nil {
		return fmt.Errorf("failed to delete souvenir: %w", err)
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

func (r *souvenirRepository) SetBatch(ctx context.Context, entries []models.Souvenir, mode database.BatchMode) (int, error) {
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

	query := fmt.Sprintf(`INSERT OR %s INTO souvenirs (college, souvenir, price)
	          VALUES (?, ?, ?)`, conflictClause(mode))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, s := range entries {
		result, err := stmt.ExecContext(ctx, s.College, s.Name, s.Price)
		if err != nil {
			return 0, fmt.Errorf("failed to insert souvenir %s/%s: %w", s.College, s.Name, err)
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
