package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrComputeMemoizes(t *testing.T) {
	c := NewTTL[int]()

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("k", time.Minute, compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 42 {
			t.Fatalf("value = %d, want 42", v)
		}
	}

	if calls != 1 {
		t.Fatalf("compute ran %d times within TTL, want 1", calls)
	}
}

func TestGetOrComputeRecomputesAfterExpiry(t *testing.T) {
	c := NewTTL[string]()

	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	compute := func() (string, error) {
		calls++
		return "v", nil
	}

	if _, err := c.GetOrCompute("k", 5*time.Second, compute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Advance past the TTL: the entry is expired and must recompute.
	now = now.Add(6 * time.Second)
	if _, err := c.GetOrCompute("k", 5*time.Second, compute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("compute ran %d times across expiry, want 2", calls)
	}
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	c := NewTTL[int]()

	calls := 0
	fail := errors.New("backend down")
	compute := func() (int, error) {
		calls++
		if calls == 1 {
			return 0, fail
		}
		return 7, nil
	}

	if _, err := c.GetOrCompute("k", time.Minute, compute); !errors.Is(err, fail) {
		t.Fatalf("first call error = %v, want %v", err, fail)
	}

	v, err := c.GetOrCompute("k", time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Fatalf("value = %d, want 7", v)
	}
	if c.Len() != 1 {
		t.Fatalf("entries = %d, want 1", c.Len())
	}
}

func TestGetOrComputeSingleFlight(t *testing.T) {
	c := NewTTL[int]()

	var calls atomic.Int64
	compute := func() (int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 9, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCompute("k", time.Minute, compute)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if v != 9 {
				t.Errorf("value = %d, want 9", v)
			}
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("compute ran %d times under concurrent misses, want 1", n)
	}
}

func TestInvalidate(t *testing.T) {
	c := NewTTL[int]()

	calls := 0
	compute := func() (int, error) {
		calls++
		return calls, nil
	}

	if _, err := c.GetOrCompute("k", time.Minute, compute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Invalidate("k")

	v, err := c.GetOrCompute("k", time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2 {
		t.Fatalf("value after invalidate = %d, want 2", v)
	}
}

func TestLenEvictsExpired(t *testing.T) {
	c := NewTTL[int]()

	now := time.Now()
	c.now = func() time.Time { return now }

	one := func() (int, error) { return 1, nil }
	if _, err := c.GetOrCompute("a", time.Second, one); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GetOrCompute("b", time.Minute, one); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(10 * time.Second)
	if n := c.Len(); n != 1 {
		t.Fatalf("live entries = %d, want 1", n)
	}
}

func TestHitMissHooks(t *testing.T) {
	c := NewTTL[int]()

	hits, misses := 0, 0
	c.OnHit = func() { hits++ }
	c.OnMiss = func() { misses++ }

	one := func() (int, error) { return 1, nil }
	if _, err := c.GetOrCompute("k", time.Minute, one); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GetOrCompute("k", time.Minute, one); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if misses != 1 || hits != 1 {
		t.Fatalf("hits=%d misses=%d, want 1/1", hits, misses)
	}
}
