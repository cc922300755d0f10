package planner

import (
	"context"
	"errors"
	"testing"

	"college-trip-planner/internal/testutil"
)

func TestBuildCostMatrix_Diagonal(t *testing.T) {
	store := testutil.NewMockDistanceStore()
	store.SetSymmetric("A", "B", 10)

	m, err := BuildCostMatrix(context.Background(), []string{"A", "B"}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < m.Size(); i++ {
		if m.Cost[i][i] != 0 {
			t.Errorf("expected Cost[%d][%d] = 0, got %v", i, i, m.Cost[i][i])
		}
	}
	// Self pairs are never looked up
	if store.CallCount() != 2 {
		t.Errorf("expected 2 lookups, got %d", store.CallCount())
	}
}

func TestBuildCostMatrix_UnknownPairGetsSentinel(t *testing.T) {
	store := testutil.NewMockDistanceStore()
	store.SetDistance("A", "B", 7)

	m, err := BuildCostMatrix(context.Background(), []string{"A", "B", "C"}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Cost[0][1] != 7 {
		t.Errorf("expected A->B = 7, got %v", m.Cost[0][1])
	}
	if m.Cost[1][0] != Unknown {
		t.Errorf("expected B->A to be Unknown, got %v", m.Cost[1][0])
	}
	if m.Cost[0][2] != Unknown || m.Cost[2][1] != Unknown {
		t.Error("expected pairs involving C to be Unknown")
	}
	if m.Known(1, 0) {
		t.Error("expected B->A to be reported unknown")
	}
	if !m.Known(0, 1) || !m.Known(2, 2) {
		t.Error("expected A->B and C->C to be reported known")
	}
}

func TestBuildCostMatrix_KeepsAsymmetry(t *testing.T) {
	store := testutil.NewMockDistanceStore()
	store.SetDistance("A", "B", 3)
	store.SetDistance("B", "A", 30)

	m, err := BuildCostMatrix(context.Background(), []string{"A", "B"}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Cost[0][1] != 3 || m.Cost[1][0] != 30 {
		t.Errorf("expected directed costs 3/30, got %v/%v", m.Cost[0][1], m.Cost[1][0])
	}
}

func TestBuildCostMatrix_ZeroDistanceIsKnown(t *testing.T) {
	store := testutil.NewMockDistanceStore()
	store.SetSymmetric("A", "B", 0)

	m, err := BuildCostMatrix(context.Background(), []string{"A", "B"}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Known(0, 1) || m.Cost[0][1] != 0 {
		t.Errorf("expected a known zero leg, got %v", m.Cost[0][1])
	}
}

func TestBuildCostMatrix_LookupError(t *testing.T) {
	store := testutil.NewMockDistanceStore()
	store.SetSymmetric("A", "B", 5)
	store.FailOn = &testutil.LookupCall{From: "B", To: "A"}

	_, err := BuildCostMatrix(context.Background(), []string{"A", "B"}, store)
	if !errors.Is(err, testutil.ErrMockFailure) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestBuildCostMatrix_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		colleges []string
		want     error
	}{
		{"empty", nil, ErrNoColleges},
		{"blank", []string{"A", "  "}, ErrBlankCollege},
		{"duplicate", []string{"A", "B", "A"}, ErrDuplicateCollege},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockDistanceStore()
			_, err := BuildCostMatrix(context.Background(), tt.colleges, store)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !IsInvalidInput(err) {
				t.Error("expected IsInvalidInput to be true")
			}
			if store.CallCount() != 0 {
				t.Errorf("expected no lookups for invalid input, got %d", store.CallCount())
			}
		})
	}
}

func TestPathCost(t *testing.T) {
	m := &CostMatrix{
		Colleges: []string{"A", "B", "C"},
		Cost: [][]float64{
			{0, 5, 9},
			{5, 0, 10},
			{9, 10, 0},
		},
	}

	if got := m.PathCost([]int{0, 1, 2}); got != 15 {
		t.Errorf("expected 15, got %v", got)
	}
	if got := m.PathCost([]int{0}); got != 0 {
		t.Errorf("expected 0 for a single stop, got %v", got)
	}
}
