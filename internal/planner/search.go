package planner

import (
	"context"
	"fmt"
)

const (
	// DefaultMaxExactColleges keeps the tables at roughly 40MB (18·2¹⁸ states).
	DefaultMaxExactColleges = 18

	// HardMaxColleges is the largest n the exact search accepts at all.
	HardMaxColleges = 24

	ctxCheckInterval = 4096

	unsetChoice int8 = -1
)

// heldKarp is the per-request state of an exact open-path search. It is never
// shared: every solve allocates its own tables sized for its own n.
type heldKarp struct {
	ctx  context.Context
	n    int
	full uint32
	cost [][]float64

	// memo and choice are flat n·2ⁿ tables indexed by mask*n + curr.
	// choice doubles as the "computed" marker for memo.
	memo   []float64
	choice []int8

	expanded int
	err      error
}

func newHeldKarp(ctx context.Context, m *CostMatrix) *heldKarp {
	n := m.Size()
	states := n << n

	hk := &heldKarp{
		ctx:    ctx,
		n:      n,
		full:   uint32(1)<<n - 1,
		cost:   m.Cost,
		memo:   make([]float64, states),
		choice: make([]int8, states),
	}
	for i := range hk.choice {
		hk.choice[i] = unsetChoice
	}
	return hk
}

func (hk *heldKarp) index(curr int, mask uint32) int {
	return int(mask)*hk.n + curr
}

// solve returns the cheapest cost of visiting every college outside mask,
// starting from curr. Nothing is charged for returning to the start.
func (hk *heldKarp) solve(curr int, mask uint32) float64 {
	if mask == hk.full {
		return 0
	}

	k := hk.index(curr, mask)
	if hk.choice[k] != unsetChoice {
		return hk.memo[k]
	}
	if hk.err != nil {
		return 0
	}

	hk.expanded++
	if hk.expanded%ctxCheckInterval == 0 {
		if err := hk.ctx.Err(); err != nil {
			hk.err = err
			return 0
		}
	}

	// The first unvisited j seeds best so a state always records a choice,
	// even when every continuation saturates to +Inf. Later candidates must
	// be strictly cheaper, so the lowest index wins ties.
	best := 0.0
	next := -1
	for j := 0; j < hk.n; j++ {
		if mask&(1<<j) != 0 {
			continue
		}
		cand := hk.cost[curr][j] + hk.solve(j, mask|1<<j)
		if next < 0 || cand < best {
			best = cand
			next = j
		}
	}

	hk.memo[k] = best
	hk.choice[k] = int8(next)
	return best
}

// path replays the recorded choices from the start state (0, {0})
func (hk *heldKarp) path() []int {
	path := make([]int, 0, hk.n)
	curr, mask := 0, uint32(1)
	path = append(path, curr)

	for mask != hk.full {
		next := int(hk.choice[hk.index(curr, mask)])
		path = append(path, next)
		mask |= 1 << next
		curr = next
	}

	return path
}

// solveExact runs the subset DP over m and reconstructs the optimal open path
func solveExact(ctx context.Context, m *CostMatrix) (total float64, path []int, expanded int, err error) {
	n := m.Size()
	if n == 0 {
		return 0, nil, 0, ErrNoColleges
	}
	if n > HardMaxColleges {
		return 0, nil, 0, &ErrTooManyColleges{Count: n, Max: HardMaxColleges}
	}

	hk := newHeldKarp(ctx, m)
	total = hk.solve(0, 1)
	if hk.err != nil {
		return 0, nil, hk.expanded, fmt.Errorf("exact search aborted after %d states: %w", hk.expanded, hk.err)
	}

	return total, hk.path(), hk.expanded, nil
}

// Solve orders colleges into the shortest open path starting at colleges[0]
// and returns its total distance. Unknown pairs cost Unknown, so the search
// always completes; check the total against Unknown before trusting it.
// Inputs above DefaultMaxExactColleges are rejected; use New with a larger
// Config.MaxExactColleges to search up to HardMaxColleges.
func Solve(ctx context.Context, colleges []string, lookup DistanceLookup) (float64, []string, error) {
	if err := validateColleges(colleges); err != nil {
		return 0, nil, err
	}
	if len(colleges) > DefaultMaxExactColleges {
		return 0, nil, &ErrTooManyColleges{Count: len(colleges), Max: DefaultMaxExactColleges}
	}

	m, err := BuildCostMatrix(ctx, colleges, lookup)
	if err != nil {
		return 0, nil, err
	}

	total, path, _, err := solveExact(ctx, m)
	if err != nil {
		return 0, nil, err
	}

	return total, m.names(path), nil
}

func (m *CostMatrix) names(path []int) []string {
	names := make([]string, len(path))
	for i, idx := range path {
		names[i] = m.Colleges[idx]
	}
	return names
}
