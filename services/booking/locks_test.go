package booking

import (
	"sync"
	"testing"
	"time"
)

func TestSlotLocks(t *testing.T) {
	t.Run("acquire times out while held", func(t *testing.T) {
		locks := NewSlotLocks()
		key := SlotKey("salon-1", "2025-06-02", 870)

		if !locks.Acquire(key, time.Second) {
			t.Fatalf("expected first acquire to succeed")
		}
		if locks.Acquire(key, 10*time.Millisecond) {
			t.Fatalf("expected second acquire to time out")
		}
		locks.Release(key)
		if !locks.Acquire(key, time.Second) {
			t.Fatalf("expected acquire after release to succeed")
		}
		locks.Release(key)
	})

	t.Run("distinct keys do not contend", func(t *testing.T) {
		locks := NewSlotLocks()
		a := SlotKey("salon-1", "2025-06-02", 870)
		b := SlotKey("salon-1", "2025-06-02", 900)

		if !locks.Acquire(a, time.Second) {
			t.Fatalf("expected acquire of %s", a)
		}
		if !locks.Acquire(b, 10*time.Millisecond) {
			t.Fatalf("expected independent acquire of %s", b)
		}
		locks.Release(a)
		locks.Release(b)
	})

	t.Run("lock table does not leak entries", func(t *testing.T) {
		locks := NewSlotLocks()
		key := SlotKey("salon-1", "2025-06-02", 870)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if locks.Acquire(key, time.Second) {
					locks.Release(key)
				}
			}()
		}
		wg.Wait()

		locks.mu.Lock()
		n := len(locks.slots)
		locks.mu.Unlock()
		if n != 0 {
			t.Fatalf("expected empty lock table, found %d entries", n)
		}
	})
}
