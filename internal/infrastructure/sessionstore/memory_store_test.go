package sessionstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/doeshing/minebot/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTakeConsumesState(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(time.Minute, clock)
	key := domain.NewSessionKey(1, 1)

	store.Put(key, domain.SessionState{MineCount: 5, CreatedAt: clock.Now()})

	state, ok := store.Take(key)
	if !ok || state.MineCount != 5 {
		t.Fatalf("Take() = %+v, %v", state, ok)
	}
	if _, ok := store.Take(key); ok {
		t.Fatal("second Take() should find nothing")
	}
}

func TestKeysAreIsolated(t *testing.T) {
	store := NewMemoryStore(0, nil)
	store.Put(domain.NewSessionKey(1, 10), domain.SessionState{MineCount: 3})
	store.Put(domain.NewSessionKey(2, 10), domain.SessionState{MineCount: 9})

	a, _ := store.Peek(domain.NewSessionKey(1, 10))
	b, _ := store.Peek(domain.NewSessionKey(2, 10))
	if a.MineCount != 3 || b.MineCount != 9 {
		t.Fatalf("sessions leaked between users: %+v %+v", a, b)
	}
}

func TestExpiredStateIsAbsent(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(time.Minute, clock)
	key := domain.NewSessionKey(1, 1)
	store.Put(key, domain.SessionState{MineCount: 2, CreatedAt: clock.Now()})

	clock.Advance(2 * time.Minute)

	if _, ok := store.Peek(key); ok {
		t.Fatal("expired state visible through Peek")
	}
	if _, ok := store.Take(key); ok {
		t.Fatal("expired state returned by Take")
	}
	if store.Len() != 0 {
		t.Fatalf("Take should drop the expired entry, Len() = %d", store.Len())
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(time.Minute, clock)
	store.Put(domain.NewSessionKey(1, 1), domain.SessionState{MineCount: 2, CreatedAt: clock.Now()})
	clock.Advance(90 * time.Second)
	store.Put(domain.NewSessionKey(2, 2), domain.SessionState{MineCount: 4, CreatedAt: clock.Now()})

	if n := store.Sweep(); n != 1 {
		t.Fatalf("Sweep() = %d, want 1", n)
	}
	if _, ok := store.Peek(domain.NewSessionKey(2, 2)); !ok {
		t.Fatal("fresh session removed by Sweep")
	}
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	store := NewMemoryStore(time.Millisecond, nil)
	store.Put(domain.NewSessionKey(1, 1), domain.SessionState{MineCount: 2, CreatedAt: time.Now().Add(-time.Hour)})

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, time.Millisecond, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-swept:
		if n != 1 {
			t.Fatalf("swept %d entries, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
