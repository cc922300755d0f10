package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrMockFailure is returned by MockDistanceStore when FailOn matches a lookup
var ErrMockFailure = errors.New("mock distance store failure")

// LookupCall tracks a call to the distance store
type LookupCall struct {
	From string
	To   string
}

// MockDistanceStore is an in-memory directed distance table for tests.
// Only pairs set explicitly are known; nothing is mirrored.
type MockDistanceStore struct {
	mu        sync.Mutex
	distances map[[2]string]float64
	order     []string
	Calls     []LookupCall
	// FailOn makes Lookup return ErrMockFailure for this directed pair
	FailOn *LookupCall
}

func NewMockDistanceStore() *MockDistanceStore {
	return &MockDistanceStore{
		distances: make(map[[2]string]float64),
		Calls:     []LookupCall{},
	}
}

// SetDistance stores the from→to distance only
func (m *MockDistanceStore) SetDistance(from, to string, miles float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remember(from)
	m.remember(to)
	m.distances[[2]string{from, to}] = miles
}

// SetSymmetric stores the distance in both directions
func (m *MockDistanceStore) SetSymmetric(a, b string, miles float64) {
	m.SetDistance(a, b, miles)
	m.SetDistance(b, a, miles)
}

// SetMatrix loads a full matrix for the given names; negative entries are left unknown
func (m *MockDistanceStore) SetMatrix(names []string, matrix [][]float64) {
	for i := range matrix {
		for j := range matrix[i] {
			if i == j || matrix[i][j] < 0 {
				continue
			}
			m.SetDistance(names[i], names[j], matrix[i][j])
		}
	}
}

func (m *MockDistanceStore) remember(name string) {
	for _, n := range m.order {
		if n == name {
			return
		}
	}
	m.order = append(m.order, name)
}

// Lookup returns the stored from→to distance
func (m *MockDistanceStore) Lookup(ctx context.Context, from, to string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, LookupCall{From: from, To: to})

	if m.FailOn != nil && m.FailOn.From == from && m.FailOn.To == to {
		return 0, false, ErrMockFailure
	}

	d, ok := m.distances[[2]string{from, to}]
	return d, ok, nil
}

// Colleges returns every name seen so far, sorted
func (m *MockDistanceStore) Colleges(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	sort.Strings(names)
	return names, nil
}

// ResetCalls clears the recorded calls
func (m *MockDistanceStore) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = []LookupCall{}
}

// CallCount returns the number of lookups made
func (m *MockDistanceStore) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
