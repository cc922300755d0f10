package handlers

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"college-trip-planner/internal/models"
)

// MaxQuantityPerItem is the most of one souvenir a trip may buy
const MaxQuantityPerItem = 3

var (
	// ErrCollegeNotOnTrip is returned when buying at a college the trip skips
	ErrCollegeNotOnTrip = errors.New("college is not on this trip")

	// ErrQuantity is returned for quantities outside 1..MaxQuantityPerItem
	ErrQuantity = fmt.Errorf("quantity must be between 1 and %d", MaxQuantityPerItem)
)

// TripSession stores a planned trip and the souvenirs bought along it
type TripSession struct {
	ID        string
	Trip      *models.TripResult
	Purchases []models.Purchase
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AddPurchase records a purchase, merging with an earlier one for the same item
func (t *TripSession) AddPurchase(p models.Purchase) error {
	if !t.Trip.Visits(p.College) {
		return ErrCollegeNotOnTrip
	}
	if p.Quantity < 1 || p.Quantity > MaxQuantityPerItem {
		return ErrQuantity
	}

	for i := range t.Purchases {
		existing := &t.Purchases[i]
		if existing.College != p.College || existing.Souvenir != p.Souvenir {
			continue
		}
		if existing.Quantity+p.Quantity > MaxQuantityPerItem {
			return ErrQuantity
		}
		existing.Quantity += p.Quantity
		existing.Price = p.Price
		return nil
	}

	t.Purchases = append(t.Purchases, p)
	return nil
}

// SpentByCollege returns the spend at each college that had purchases
func (t *TripSession) SpentByCollege() map[string]float64 {
	spent := make(map[string]float64)
	for i := range t.Purchases {
		spent[t.Purchases[i].College] += t.Purchases[i].Subtotal()
	}
	return spent
}

// TotalSpent returns the grand total over all purchases
func (t *TripSession) TotalSpent() float64 {
	total := 0.0
	for i := range t.Purchases {
		total += t.Purchases[i].Subtotal()
	}
	return total
}

// TripSessionStore manages planned trips in memory
type TripSessionStore struct {
	sessions map[string]*TripSession
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

// NewTripSessionStore creates a new session store; sessions expire after ttl
func NewTripSessionStore(ttl time.Duration) *TripSessionStore {
	return &TripSessionStore{
		sessions: make(map[string]*TripSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *TripSessionStore) Create(trip *models.TripResult) *TripSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	now := s.now()
	session := &TripSession{
		ID:        uuid.NewString(),
		Trip:      trip,
		Purchases: []models.Purchase{},
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.sessions[session.ID] = session
	log.Printf("[SESSION] Created trip session: id=%s stops=%d", session.ID, len(trip.Path))
	return session
}

// Get returns a copy of the session, or nil if it is missing or expired
func (s *TripSessionStore) Get(id string) *TripSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.sessions[id]
	if session == nil || s.now().After(session.ExpiresAt) {
		return nil
	}

	snapshot := *session
	snapshot.Purchases = append([]models.Purchase(nil), session.Purchases...)
	return &snapshot
}

// Update executes fn on a live session while holding the write lock.
// Returns false if the session doesn't exist or has expired.
func (s *TripSessionStore) Update(id string, fn func(*TripSession) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[id]
	if session == nil || s.now().After(session.ExpiresAt) {
		return false, nil
	}
	return true, fn(session)
}

// Delete removes a session, reporting whether it existed
func (s *TripSessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	log.Printf("[SESSION] Deleted trip session: id=%s", id)
	return true
}

// Sweep drops expired sessions and returns how many were removed
func (s *TripSessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *TripSessionStore) sweepLocked() int {
	now := s.now()
	removed := 0
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debugf("[SESSION] Swept %d expired trip session(s)", removed)
	}
	return removed
}

// Len returns the number of stored sessions, expired or not
func (s *TripSessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
