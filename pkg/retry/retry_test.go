package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var (
	errTransient = errors.New("service unavailable")
	errFatal     = errors.New("forbidden")
)

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func fastPolicy(attempts int) Policy {
	return Policy{
		Name:        "test",
		MaxAttempts: attempts,
		MinBackoff:  time.Millisecond,
		MaxBackoff:  2 * time.Millisecond,
		Retryable:   isTransient,
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy("match_details", isTransient)

	if p.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", p.MaxAttempts)
	}
	if p.MinBackoff != 5*time.Second {
		t.Errorf("MinBackoff = %v, want 5s", p.MinBackoff)
	}
	if p.MaxBackoff != 60*time.Second {
		t.Errorf("MaxBackoff = %v, want 60s", p.MaxBackoff)
	}
	if p.Name != "match_details" {
		t.Errorf("Name = %q, want match_details", p.Name)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{"valid", Policy{MaxAttempts: 1, MinBackoff: 0, MaxBackoff: 0}, false},
		{"zero attempts", Policy{MaxAttempts: 0}, true},
		{"negative min", Policy{MaxAttempts: 1, MinBackoff: -1}, true},
		{"max below min", Policy{MaxAttempts: 1, MinBackoff: 2 * time.Second, MaxBackoff: time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPolicy_BackoffWithinRange(t *testing.T) {
	p := Policy{MinBackoff: 5 * time.Second, MaxBackoff: 60 * time.Second}

	for i := 0; i < 200; i++ {
		d := p.Backoff()
		if d < p.MinBackoff || d > p.MaxBackoff {
			t.Fatalf("Backoff() = %v outside [%v, %v]", d, p.MinBackoff, p.MaxBackoff)
		}
	}

	fixed := Policy{MinBackoff: time.Second, MaxBackoff: time.Second}
	if d := fixed.Backoff(); d != time.Second {
		t.Errorf("Backoff() with equal bounds = %v, want 1s", d)
	}
}

func TestDo_Success(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(5), func(context.Context) (int, error) {
		calls++
		return 42, nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if got != 42 {
		t.Errorf("Result = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestDo_SuccessAfterRetry(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(5), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if got != "ok" {
		t.Errorf("Result = %q, want ok", got)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestDo_MaxAttemptsExhausted(t *testing.T) {
	for _, attempts := range []int{1, 3, 5} {
		calls := 0
		_, err := Do(context.Background(), fastPolicy(attempts), func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		})

		if calls != attempts {
			t.Errorf("MaxAttempts=%d: expected %d calls, got %d", attempts, attempts, calls)
		}
		// The last failure propagates unmodified.
		if err != errTransient {
			t.Errorf("MaxAttempts=%d: error = %v, want %v", attempts, err, errTransient)
		}
	}
}

func TestDo_FatalErrorNoRetry(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(5), func(context.Context) (int, error) {
		calls++
		return 0, errFatal
	})

	if calls != 1 {
		t.Errorf("Expected 1 call (no retry for fatal errors), got %d", calls)
	}
	if !errors.Is(err, errFatal) {
		t.Errorf("Expected original error, got %v", err)
	}
}

func TestDo_NilRetryableNeverRetries(t *testing.T) {
	p := fastPolicy(5)
	p.Retryable = nil

	calls := 0
	_, _ = Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		return 0, errTransient
	})

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy(5)
	p.MinBackoff = time.Minute
	p.MaxBackoff = time.Minute

	calls := 0
	_, err := Do(ctx, p, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errTransient
	})

	if !errors.Is(err, ErrCancelled) {
		t.Errorf("Expected ErrCancelled, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call before cancellation, got %d", calls)
	}
}

func TestDo_WaitsBetweenAttempts(t *testing.T) {
	p := fastPolicy(2)
	p.MinBackoff = 20 * time.Millisecond
	p.MaxBackoff = 30 * time.Millisecond

	var stamps []time.Time
	_, _ = Do(context.Background(), p, func(context.Context) (int, error) {
		stamps = append(stamps, time.Now())
		return 0, errTransient
	})

	if len(stamps) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(stamps))
	}
	if delay := stamps[1].Sub(stamps[0]); delay < p.MinBackoff {
		t.Errorf("Delay %v shorter than MinBackoff %v", delay, p.MinBackoff)
	}
}
