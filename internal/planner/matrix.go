package planner

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Unknown is stored for pairs with no known distance. Half of the float64 range
// lets two unknown legs be summed before the total saturates to +Inf.
const Unknown = math.MaxFloat64 / 2

// CostMatrix is a dense directed distance table; Cost[i][j] is the cost from i to j.
type CostMatrix struct {
	Colleges []string
	Cost     [][]float64
}

// Size returns the number of colleges in the matrix
func (m *CostMatrix) Size() int {
	return len(m.Colleges)
}

// Known reports whether the i→j leg came from the store
func (m *CostMatrix) Known(i, j int) bool {
	return i == j || m.Cost[i][j] != Unknown
}

// validateColleges rejects empty, blank or duplicated input before any lookups
func validateColleges(colleges []string) error {
	if len(colleges) == 0 {
		return ErrNoColleges
	}

	seen := make(map[string]int, len(colleges))
	for i, c := range colleges {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w at position %d", ErrBlankCollege, i)
		}
		if first, ok := seen[c]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateCollege, c, first, i)
		}
		seen[c] = i
	}
	return nil
}

// BuildCostMatrix queries every ordered pair once. Pairs the store does not know
// get the Unknown sentinel; reverse directions are never inferred.
func BuildCostMatrix(ctx context.Context, colleges []string, lookup DistanceLookup) (*CostMatrix, error) {
	if err := validateColleges(colleges); err != nil {
		return nil, err
	}

	n := len(colleges)
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			if i == j {
				continue
			}

			d, ok, err := lookup.Lookup(ctx, colleges[i], colleges[j])
			if err != nil {
				return nil, fmt.Errorf("failed to look up distance %s -> %s: %w", colleges[i], colleges[j], err)
			}
			if !ok {
				cost[i][j] = Unknown
				continue
			}
			cost[i][j] = d
		}
	}

	names := make([]string, n)
	copy(names, colleges)

	return &CostMatrix{Colleges: names, Cost: cost}, nil
}

// PathCost sums the legs of an open path given as matrix indices
func (m *CostMatrix) PathCost(path []int) float64 {
	total := 0.0
	for k := 1; k < len(path); k++ {
		total += m.Cost[path[k-1]][path[k]]
	}
	return total
}
