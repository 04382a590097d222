package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewPacer(t *testing.T) {
	p := NewPacer(DefaultInterval, zerolog.Nop())

	if p.Interval() != time.Second {
		t.Errorf("Interval() = %v, want 1s", p.Interval())
	}
}

func TestPacer_SpacesRequests(t *testing.T) {
	interval := 40 * time.Millisecond
	p := NewPacer(interval, zerolog.Nop())
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait() failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	// First token is immediate, the next two wait one interval each.
	min := 2*interval - 5*time.Millisecond
	if elapsed < min {
		t.Errorf("3 paced requests took %v, want at least %v", elapsed, min)
	}
}

func TestPacer_DisabledDoesNotWait(t *testing.T) {
	p := NewPacer(0, zerolog.Nop())
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait() failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Disabled pacer took %v for 100 waits", elapsed)
	}
}

func TestPacer_ContextCancelled(t *testing.T) {
	p := NewPacer(time.Hour, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	// Drain the initial token.
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}

	cancel()
	err := p.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() after cancel = %v, want context.Canceled", err)
	}
}

func TestPacer_DeadlineShorterThanInterval(t *testing.T) {
	p := NewPacer(time.Hour, zerolog.Nop())
	_ = p.Wait(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := p.Wait(ctx); err == nil {
		t.Error("Expected error when deadline precedes next token")
	}
}
