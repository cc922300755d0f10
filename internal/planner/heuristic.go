package planner

import "context"

// solveHeuristic builds a nearest-neighbour path from the start and then
// improves it with 2-opt. It runs in polynomial time and is not guaranteed optimal.
func solveHeuristic(ctx context.Context, m *CostMatrix) (float64, []int, error) {
	if m.Size() == 0 {
		return 0, nil, ErrNoColleges
	}

	path := nearestNeighbour(m)

	optimized, err := twoOpt(ctx, m, path)
	if err != nil {
		return 0, nil, err
	}

	return m.PathCost(optimized), optimized, nil
}

// nearestNeighbour repeatedly moves to the closest unvisited college
func nearestNeighbour(m *CostMatrix) []int {
	n := m.Size()
	visited := make([]bool, n)
	path := make([]int, 0, n)

	curr := 0
	visited[curr] = true
	path = append(path, curr)

	for len(path) < n {
		nearest := -1
		minDist := 0.0

		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if nearest < 0 || m.Cost[curr][j] < minDist {
				minDist = m.Cost[curr][j]
				nearest = j
			}
		}

		visited[nearest] = true
		path = append(path, nearest)
		curr = nearest
	}

	return path
}

// twoOpt reverses segments of the path while that lowers the total.
// The start stays fixed. Distances may be directed, so every candidate is
// scored on the whole path rather than on the two swapped edges.
func twoOpt(ctx context.Context, m *CostMatrix, path []int) ([]int, error) {
	if len(path) < 3 {
		return path, nil
	}

	best := m.PathCost(path)
	improved := true
	for improved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		improved = false
		for i := 1; i < len(path)-1; i++ {
			for j := i + 1; j < len(path); j++ {
				reverse(path, i, j)

				cost := m.PathCost(path)
				if cost < best {
					best = cost
					improved = true
					continue
				}

				reverse(path, i, j)
			}
		}
	}

	return path, nil
}

func reverse(path []int, i, j int) {
	for i < j {
		path[i], path[j] = path[j], path[i]
		i++
		j--
	}
}
