package planner

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/models"
)

// Config holds planner limits
type Config struct {
	// MaxExactColleges caps exact searches; zero means DefaultMaxExactColleges.
	MaxExactColleges int
}

// tripPlanner implements TripPlanner on top of a distance store
type tripPlanner struct {
	lookup   DistanceLookup
	maxExact int
}

// New creates a trip planner that reads distances through lookup
func New(lookup DistanceLookup, cfg Config) TripPlanner {
	maxExact := cfg.MaxExactColleges
	if maxExact <= 0 {
		maxExact = DefaultMaxExactColleges
	}
	if maxExact > HardMaxColleges {
		maxExact = HardMaxColleges
	}

	return &tripPlanner{
		lookup:   lookup,
		maxExact: maxExact,
	}
}

func (p *tripPlanner) PlanTrip(ctx context.Context, req *TripRequest) (*models.TripResult, error) {
	totalStart := time.Now()

	strategy := req.Strategy
	if strategy == "" {
		strategy = StrategyExact
	}

	if err := validateColleges(req.Colleges); err != nil {
		solvesTotal.WithLabelValues(string(strategy), resultInvalid).Inc()
		return nil, err
	}

	n := len(req.Colleges)
	if strategy == StrategyAuto {
		strategy = StrategyExact
		if n > p.maxExact {
			strategy = StrategyHeuristic
		}
	}
	if strategy == StrategyExact && n > p.maxExact {
		solvesTotal.WithLabelValues(string(strategy), resultInvalid).Inc()
		return nil, &ErrTooManyColleges{Count: n, Max: p.maxExact}
	}

	log.Printf("[PLANNER] Starting calculation: colleges=%d start=%s strategy=%s", n, req.Colleges[0], strategy)

	matrixStart := time.Now()
	m, err := BuildCostMatrix(ctx, req.Colleges, p.lookup)
	if err != nil {
		solvesTotal.WithLabelValues(string(strategy), resultError).Inc()
		return nil, err
	}
	log.Printf("[TIMING] Cost matrix: %v (lookups=%d)", time.Since(matrixStart), n*(n-1))

	searchStart := time.Now()
	var (
		total    float64
		path     []int
		expanded int
	)
	switch strategy {
	case StrategyHeuristic:
		total, path, err = solveHeuristic(ctx, m)
	default:
		total, path, expanded, err = solveExact(ctx, m)
		statesExpanded.Observe(float64(expanded))
	}
	if err != nil {
		solvesTotal.WithLabelValues(string(strategy), resultError).Inc()
		return nil, err
	}
	log.Printf("[TIMING] Search (%s): %v (states=%d)", strategy, time.Since(searchStart), expanded)

	result := buildResult(m, path, total)
	result.Strategy = string(strategy)
	result.StatesExpanded = expanded

	outcome := resultOK
	if !result.Feasible {
		outcome = resultInfeasible
		log.Warnf("[PLANNER] Trip uses %d leg(s) with no stored distance; total covers known legs only", result.UnknownLegs)
	}
	solvesTotal.WithLabelValues(string(strategy), outcome).Inc()
	solveDuration.WithLabelValues(string(strategy)).Observe(time.Since(totalStart).Seconds())

	log.Printf("[PLANNER] Complete: path=%v total=%.1f", result.Path, result.TotalDistanceMiles)
	log.Printf("[TIMING] TOTAL: %v", time.Since(totalStart))

	return result, nil
}

// buildResult expands an index path into stops with per-leg distances.
// Unknown legs contribute 0 and are flagged, so an infeasible trip reports
// the sum of its known legs instead of a sentinel-sized total.
func buildResult(m *CostMatrix, path []int, total float64) *models.TripResult {
	stops := make([]models.TripStop, len(path))
	cumulative := 0.0
	unknown := 0

	for i, idx := range path {
		stop := models.TripStop{
			Order:    i,
			College:  m.Colleges[idx],
			KnownLeg: true,
		}

		if i > 0 {
			prev := path[i-1]
			if m.Known(prev, idx) {
				stop.DistanceFromPrevMiles = m.Cost[prev][idx]
				cumulative += stop.DistanceFromPrevMiles
			} else {
				stop.KnownLeg = false
				unknown++
			}
		}
		stop.CumulativeDistanceMiles = cumulative

		stops[i] = stop
	}

	feasible := unknown == 0 && total < Unknown
	if !feasible {
		total = cumulative
	}

	return &models.TripResult{
		Path:               m.names(path),
		Stops:              stops,
		TotalDistanceMiles: total,
		UnknownLegs:        unknown,
		Feasible:           feasible,
	}
}
