package otp

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"salonflow/models"
)

// fakeHolds is a minimal in-memory HoldRepository for OTP flow tests.
type fakeHolds struct {
	mu    sync.Mutex
	holds map[string]*models.Hold
}

func newFakeHolds(holds ...*models.Hold) *fakeHolds {
	r := &fakeHolds{holds: make(map[string]*models.Hold)}
	for _, h := range holds {
		cp := *h
		r.holds[h.ID] = &cp
	}
	return r
}

func (r *fakeHolds) get(id string) *models.Hold {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok {
		return nil
	}
	cp := *h
	return &cp
}

func (r *fakeHolds) Insert(_ context.Context, hold *models.Hold) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *hold
	r.holds[hold.ID] = &cp
	return nil
}

func (r *fakeHolds) GetByID(_ context.Context, id string) (*models.Hold, error) {
	return r.get(id), nil
}

func (r *fakeHolds) FindBlockingBySlot(_ context.Context, _, _ string, _ int, _ time.Time) (*models.Hold, error) {
	return nil, nil
}

func (r *fakeHolds) FindActiveRecordBySlot(_ context.Context, _, _ string, _ int) (*models.Hold, error) {
	return nil, nil
}

func (r *fakeHolds) CompareAndSwapState(_ context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok || h.State != from {
		return false, nil
	}
	h.State = to
	return true, nil
}

func (r *fakeHolds) SetConsumed(_ context.Context, id, bookingID, manageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok {
		return fmt.Errorf("hold %s not found", id)
	}
	h.State = models.HoldStateConsumed
	h.BookingID = bookingID
	h.ManageURL = manageURL
	return nil
}

func (r *fakeHolds) MarkExpiredDue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// fakeStore is an in-memory ChallengeStore.
type fakeStore struct {
	mu         sync.Mutex
	challenges map[string]models.OtpChallenge
	attempts   map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		challenges: make(map[string]models.OtpChallenge),
		attempts:   make(map[string]int),
	}
}

func (s *fakeStore) Save(_ context.Context, ch models.OtpChallenge, attempts int, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[ch.HoldID] = ch
	s.attempts[ch.HoldID] = attempts
	return nil
}

func (s *fakeStore) Get(_ context.Context, holdID string) (*models.OtpChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[holdID]
	if !ok {
		return nil, nil
	}
	cp := ch
	return &cp, nil
}

func (s *fakeStore) Attempts(_ context.Context, holdID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[holdID], nil
}

func (s *fakeStore) DecrementAttempts(_ context.Context, holdID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[holdID]--
	return s.attempts[holdID], nil
}

func (s *fakeStore) Delete(_ context.Context, holdID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, holdID)
	delete(s.attempts, holdID)
	return nil
}

// fakeLimiter allows or blocks deterministically and records refunds.
type fakeLimiter struct {
	blocked    bool
	retryAfter int

	reserves int
	refunds  int
}

func (l *fakeLimiter) Reserve(_ context.Context, _ string) (int, bool, error) {
	l.reserves++
	if l.blocked {
		return l.retryAfter, false, nil
	}
	return 0, true, nil
}

func (l *fakeLimiter) Refund(_ context.Context, _ string) error {
	l.refunds++
	return nil
}

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

// fakeGateway records sent messages and can simulate delivery failure.
type fakeGateway struct {
	mu       sync.Mutex
	messages []string
	phones   []string
	err      error
}

func (g *fakeGateway) Send(_ context.Context, phone, message string) error {
	if g.err != nil {
		return g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.phones = append(g.phones, phone)
	g.messages = append(g.messages, message)
	return nil
}

// lastCode extracts the 6-digit code from the most recent message.
func (g *fakeGateway) lastCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.messages) == 0 {
		return ""
	}
	return codePattern.FindString(g.messages[len(g.messages)-1])
}

// fakePromoter records promoted holds and returns a canned URL or error.
type fakePromoter struct {
	mu        sync.Mutex
	promoted  []string
	names     []string
	manageURL string
	err       error
}

func (p *fakePromoter) Promote(_ context.Context, hold *models.Hold) (*models.Booking, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, "", p.err
	}
	p.promoted = append(p.promoted, hold.ID)
	p.names = append(p.names, hold.CustomerName)
	return &models.Booking{ID: "bk-1", SalonID: hold.SalonID}, p.manageURL, nil
}
