package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	holdRepo "salonflow/database/repository/hold"
	"salonflow/models"
)

// fakeHoldRepo is an in-memory HoldRepository. It enforces the same uniqueness
// rule as the Mongo partial index: at most one ACTIVE hold per slot.
type fakeHoldRepo struct {
	mu    sync.Mutex
	holds map[string]*models.Hold

	insertErr error
}

func newFakeHoldRepo(holds ...*models.Hold) *fakeHoldRepo {
	r := &fakeHoldRepo{holds: make(map[string]*models.Hold)}
	for _, h := range holds {
		cp := *h
		r.holds[h.ID] = &cp
	}
	return r
}

func (r *fakeHoldRepo) get(id string) *models.Hold {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok {
		return nil
	}
	cp := *h
	return &cp
}

func (r *fakeHoldRepo) Insert(_ context.Context, hold *models.Hold) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.holds {
		if h.State == models.HoldStateActive &&
			h.SalonID == hold.SalonID && h.Date == hold.Date && h.Time == hold.Time {
			return holdRepo.ErrDuplicateActiveHold
		}
	}
	cp := *hold
	r.holds[hold.ID] = &cp
	return nil
}

func (r *fakeHoldRepo) GetByID(_ context.Context, id string) (*models.Hold, error) {
	return r.get(id), nil
}

func (r *fakeHoldRepo) FindBlockingBySlot(_ context.Context, salonID, date string, minute int, now time.Time) (*models.Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.holds {
		if h.SalonID != salonID || h.Date != date || h.Time != minute {
			continue
		}
		if (h.State == models.HoldStateActive || h.State == models.HoldStateVerified) && !h.ExpiredAt(now) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeHoldRepo) FindActiveRecordBySlot(_ context.Context, salonID, date string, minute int) (*models.Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.holds {
		if h.State == models.HoldStateActive &&
			h.SalonID == salonID && h.Date == date && h.Time == minute {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeHoldRepo) CompareAndSwapState(_ context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok || h.State != from {
		return false, nil
	}
	h.State = to
	return true, nil
}

func (r *fakeHoldRepo) SetConsumed(_ context.Context, id, bookingID, manageURL string) error {
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

func (r *fakeHoldRepo) MarkExpiredDue(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, h := range r.holds {
		if h.State == models.HoldStateActive && h.ExpiredAt(now) {
			h.State = models.HoldStateExpired
			n++
		}
	}
	return n, nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	insertErr error
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		cp := *b
		r.bookings[b.ID] = &cp
	}
	return r
}

func (r *fakeBookingRepo) Insert(_ context.Context, booking *models.Booking) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) CountAtSlot(_ context.Context, salonID, date string, minute int, statuses []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.SalonID != salonID || b.Date != date || b.Time != minute {
			continue
		}
		for _, st := range statuses {
			if b.Status == st {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	b.Status = status
	return nil
}

// fakeCustomerRepo is an in-memory CustomerRepository keyed by (salon, phone).
type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*models.Customer
	nextID    int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*models.Customer)}
}

func (r *fakeCustomerRepo) FindOrCreate(_ context.Context, salonID, phone, name string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := salonID + ":" + phone
	if c, ok := r.customers[key]; ok {
		cp := *c
		return &cp, nil
	}
	r.nextID++
	c := &models.Customer{
		ID:      fmt.Sprintf("cust-%d", r.nextID),
		SalonID: salonID,
		Phone:   phone,
		Name:    name,
	}
	r.customers[key] = c
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeTokenRepo is an in-memory TokenRepository.
type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.ManagementToken
}

func newFakeTokenRepo(tokens ...*models.ManagementToken) *fakeTokenRepo {
	r := &fakeTokenRepo{tokens: make(map[string]*models.ManagementToken)}
	for _, t := range tokens {
		cp := *t
		r.tokens[t.Token] = &cp
	}
	return r
}

func (r *fakeTokenRepo) Insert(_ context.Context, token *models.ManagementToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *fakeTokenRepo) FindByToken(_ context.Context, token string) (*models.ManagementToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// fakeCatalog serves a fixed set of services.
type fakeCatalog struct {
	services map[string]*models.Service // keyed by salonID:serviceID
}

func newFakeCatalog(services ...*models.Service) *fakeCatalog {
	c := &fakeCatalog{services: make(map[string]*models.Service)}
	for _, s := range services {
		cp := *s
		c.services[s.SalonID+":"+s.ID] = &cp
	}
	return c
}

func (c *fakeCatalog) ServiceByID(_ context.Context, salonID, serviceID string) (*models.Service, error) {
	s, ok := c.services[salonID+":"+serviceID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, payload)
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// fakeScheduler records queued reminders.
type fakeScheduler struct {
	mu       sync.Mutex
	payloads []models.ReminderPayload
	fireAts  []time.Time
	err      error
}

func (s *fakeScheduler) ScheduleReminder(_ context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	s.fireAts = append(s.fireAts, fireAt)
	return nil
}
