package dataset

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIngestLimiterAcquireRelease(t *testing.T) {
	l := NewIngestLimiter(2, time.Second)

	ctx := context.Background()
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("second acquire: %v", err)
	}

	if got := l.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}
	if got := l.Available(); got != 0 {
		t.Errorf("Available = %d, want 0", got)
	}

	l.Release()
	if got := l.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount after release = %d, want 1", got)
	}
	l.Release()
}

func TestIngestLimiterTimeout(t *testing.T) {
	l := NewIngestLimiter(1, 50*time.Millisecond)

	ctx := context.Background()
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.Release()

	err := l.Acquire(ctx)
	if !errors.Is(err, ErrTooManyIngests) {
		t.Errorf("expected ErrTooManyIngests, got %v", err)
	}
}

func TestIngestLimiterContextCancel(t *testing.T) {
	l := NewIngestLimiter(1, time.Minute)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIngestLimiterDefaults(t *testing.T) {
	l := NewIngestLimiter(0, 0)
	if got := cap(l.semaphore); got != DefaultMaxConcurrentIngests {
		t.Errorf("default capacity = %d, want %d", got, DefaultMaxConcurrentIngests)
	}
	if l.maxWait != DefaultMaxWaitTime {
		t.Errorf("default maxWait = %v", l.maxWait)
	}
}

func TestIngestLimiterWaitForDrain(t *testing.T) {
	l := NewIngestLimiter(1, time.Second)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- l.WaitForDrain(ctx)
	}()

	time.Sleep(150 * time.Millisecond)
	l.Release()

	if err := <-done; err != nil {
		t.Errorf("WaitForDrain: %v", err)
	}
}
