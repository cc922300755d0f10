package database

import (
	"context"

	"college-trip-planner/internal/models"
)

// DataStore is the interface for data persistence
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Distances() DistanceRepository
	Souvenirs() SouvenirRepository
	Colleges() CollegeRepository
}

// BatchMode controls how SetBatch treats rows that already exist
type BatchMode string

const (
	// BatchIgnore keeps existing rows; used for the initial load
	BatchIgnore BatchMode = "ignore"
	// BatchReplace overwrites existing rows
	BatchReplace BatchMode = "replace"
)

// DistanceRepository handles directed college-to-college distances.
// Lookup and Colleges satisfy planner.DistanceLookup and planner.LocationEnumerator.
type DistanceRepository interface {
	Lookup(ctx context.Context, from, to string) (float64, bool, error)
	Colleges(ctx context.Context) ([]string, error)
	ListFrom(ctx context.Context, college string) ([]models.Distance, error)
	Upsert(ctx context.Context, d *models.Distance) error
	Delete(ctx context.Context, from, to string) error
	SetBatch(ctx context.Context, entries []models.Distance, mode BatchMode) (int, error)
}

// SouvenirRepository handles souvenir persistence
type SouvenirRepository interface {
	List(ctx context.Context, college string) ([]models.Souvenir, error)
	Get(ctx context.Context, college, name string) (*models.Souvenir, error)
	Add(ctx context.Context, s *models.Souvenir) error
	UpdatePrice(ctx context.Context, college, name string, price float64) error
	Delete(ctx context.Context, college, name string) error
	SetBatch(ctx context.Context, entries []models.Souvenir, mode BatchMode) (int, error)
}

// CollegeRepository handles operations that span distances and souvenirs
type CollegeRepository interface {
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}
