package planner

import (
	"context"
	"errors"
	"fmt"

	"college-trip-planner/internal/models"
)

// Strategy selects how a trip is ordered
type Strategy string

const (
	StrategyExact     Strategy = "exact"     // Held-Karp over subsets, optimal
	StrategyHeuristic Strategy = "heuristic" // Nearest neighbour + 2-opt, fast
	StrategyAuto      Strategy = "auto"      // Exact when small enough, heuristic otherwise
)

// ParseStrategy maps a user supplied name to a Strategy, defaulting to exact
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyExact:
		return StrategyExact, nil
	case StrategyHeuristic, StrategyAuto:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// DistanceLookup returns the stored distance from one college to another.
// ok is false when no distance is known for the directed pair.
type DistanceLookup interface {
	Lookup(ctx context.Context, from, to string) (distance float64, ok bool, err error)
}

// LocationEnumerator lists the distinct colleges known to the store
type LocationEnumerator interface {
	Colleges(ctx context.Context) ([]string, error)
}

// TripRequest contains the input for a trip calculation
type TripRequest struct {
	// Colleges is the visiting set; the first entry is the fixed start.
	Colleges []string
	Strategy Strategy
}

// TripPlanner orders a set of colleges into a trip
type TripPlanner interface {
	PlanTrip(ctx context.Context, req *TripRequest) (*models.TripResult, error)
}

var (
	// ErrNoColleges is returned when a trip has no colleges at all
	ErrNoColleges = errors.New("no colleges to visit")

	// ErrDuplicateCollege is returned when a college appears twice in a trip
	ErrDuplicateCollege = errors.New("duplicate college")

	// ErrBlankCollege is returned for empty college names
	ErrBlankCollege = errors.New("blank college name")
)

// ErrTooManyColleges is returned when an exact search would not fit in memory or time
type ErrTooManyColleges struct {
	Count int
	Max   int
}

func (e *ErrTooManyColleges) Error() string {
	return fmt.Sprintf("too many colleges for exact planning: %d (max %d)", e.Count, e.Max)
}

// IsInvalidInput reports whether err was caused by the request rather than the store
func IsInvalidInput(err error) bool {
	var tooMany *ErrTooManyColleges
	return errors.Is(err, ErrNoColleges) ||
		errors.Is(err, ErrDuplicateCollege) ||
		errors.Is(err, ErrBlankCollege) ||
		errors.As(err, &tooMany)
}
