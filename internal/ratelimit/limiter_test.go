package ratelimit

import (
	"sync"
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSlidingWindow_AdmitsUpToLimit(t *testing.T) {
	sw := NewSlidingWindow(3, time.Hour)

	for i := 0; i < 3; i++ {
		if d := sw.Admit("1.2.3.4", base.Add(time.Duration(i)*time.Minute)); !d.Allowed {
			t.Fatalf("expected admission %d allowed", i+1)
		}
	}

	d := sw.Admit("1.2.3.4", base.Add(3*time.Minute))
	if d.Allowed {
		t.Error("expected 4th admission within the window to be rejected")
	}
	if d.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter on rejection, got %v", d.RetryAfter)
	}
}

func TestSlidingWindow_RejectionConsumesNoSlot(t *testing.T) {
	sw := NewSlidingWindow(3, time.Hour)

	for i := 0; i < 3; i++ {
		sw.Admit("client", base)
	}
	// Hammer the limiter while over the limit; none of these may count.
	for i := 0; i < 10; i++ {
		if d := sw.Admit("client", base.Add(30*time.Minute)); d.Allowed {
			t.Fatal("expected rejection while over the limit")
		}
	}

	// Once the original three expire, full capacity is back — the rejected
	// attempts above must not have extended the window.
	later := base.Add(time.Hour + time.Second)
	for i := 0; i < 3; i++ {
		if d := sw.Admit("client", later); !d.Allowed {
			t.Fatalf("expected admission %d allowed after window expiry", i+1)
		}
	}
}

func TestSlidingWindow_ExpiryRestoresCapacity(t *testing.T) {
	sw := NewSlidingWindow(3, time.Hour)

	sw.Admit("client", base)
	sw.Admit("client", base.Add(30*time.Minute))
	sw.Admit("client", base.Add(45*time.Minute))

	if d := sw.Admit("client", base.Add(50*time.Minute)); d.Allowed {
		t.Fatal("expected rejection with 3 admissions in window")
	}

	// Just past the earliest admission's expiry: exactly one slot free.
	now := base.Add(time.Hour + time.Second)
	if d := sw.Admit("client", now); !d.Allowed {
		t.Error("expected admission once the earliest entry aged out")
	}
	if d := sw.Admit("client", now); d.Allowed {
		t.Error("expected rejection again: only one slot had expired")
	}
}

func TestSlidingWindow_RetryAfterTracksOldestEntry(t *testing.T) {
	sw := NewSlidingWindow(3, time.Hour)

	sw.Admit("client", base)
	sw.Admit("client", base.Add(10*time.Minute))
	sw.Admit("client", base.Add(20*time.Minute))

	d := sw.Admit("client", base.Add(40*time.Minute))
	if d.Allowed {
		t.Fatal("expected rejection")
	}
	// Oldest entry expires at base+1h, i.e. 20 minutes from "now".
	if want := 20 * time.Minute; d.RetryAfter != want {
		t.Errorf("expected RetryAfter=%v, got %v", want, d.RetryAfter)
	}
}

func TestSlidingWindow_KeysAreIndependent(t *testing.T) {
	sw := NewSlidingWindow(3, time.Hour)

	for i := 0; i < 3; i++ {
		sw.Admit("1.1.1.1", base)
	}
	if d := sw.Admit("1.1.1.1", base); d.Allowed {
		t.Fatal("expected first key exhausted")
	}
	if d := sw.Admit("2.2.2.2", base); !d.Allowed {
		t.Error("expected second key unaffected by first key's window")
	}
}

// All requests without a resolvable source address share the single
// "unknown" key, so anonymous clients collectively get 3 admissions per
// hour. This mirrors the upstream behavior and is intentional.
func TestSlidingWindow_UnknownClientsShareOneBucket(t *testing.T) {
	sw := NewSlidingWindow(3, time.Hour)

	for i := 0; i < 3; i++ {
		if d := sw.Admit("unknown", base); !d.Allowed {
			t.Fatalf("expected anonymous admission %d allowed", i+1)
		}
	}
	// A different anonymous caller: same bucket, no capacity left.
	if d := sw.Admit("unknown", base); d.Allowed {
		t.Error("expected the shared unknown bucket to be exhausted")
	}
}

func TestSlidingWindow_ConcurrentSameKeyNeverExceedsLimit(t *testing.T) {
	sw := NewSlidingWindow(3, time.Hour)

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d := sw.Admit("client", base); d.Allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 3 {
		t.Errorf("expected exactly 3 concurrent admissions, got %d", admitted)
	}
}
