package booking

import (
	"fmt"
	"sync"
	"time"
)

// SlotLocks serializes check-then-insert sequences per slot key. Hold creation
// and the pre-promotion re-check for the same (salon, date, time) are mutually
// exclusive; everything else in the workflow needs no shared lock.
type SlotLocks struct {
	mu    sync.Mutex
	slots map[string]*slotLock
}

type slotLock struct {
	sem  chan struct{}
	refs int
}

// NewSlotLocks returns an empty lock table.
func NewSlotLocks() *SlotLocks {
	return &SlotLocks{slots: make(map[string]*slotLock)}
}

// SlotKey builds the lock key for a slot.
func SlotKey(salonID, date string, minute int) string {
	return fmt.Sprintf("%s:%s:%d", salonID, date, minute)
}

// Acquire takes the lock for key, waiting at most wait. Returns false on
// timeout; callers fail fast with a slot conflict rather than queueing.
func (l *SlotLocks) Acquire(key string, wait time.Duration) bool {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slotLock{sem: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case s.sem <- struct{}{}:
		return true
	case <-timer.C:
		l.release(key, s, false)
		return false
	}
}

// Release frees the lock for key.
func (l *SlotLocks) Release(key string) {
	l.mu.Lock()
	s, ok := l.slots[key]
	l.mu.Unlock()
	if !ok {
		return
	}
	l.release(key, s, true)
}

func (l *SlotLocks) release(key string, s *slotLock, held bool) {
	if held {
		<-s.sem
	}
	l.mu.Lock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
	l.mu.Unlock()
}
