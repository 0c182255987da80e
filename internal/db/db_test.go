package db

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpGet, Err: ErrKeyNotFound}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatal("expected errors.Is to see through db.Error")
	}
	if err.Error() != "GET: db: key not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestPollReady_Succeeds(t *testing.T) {
	calls := 0
	err := PollReady(context.Background(), time.Second, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestPollReady_Timeout(t *testing.T) {
	err := PollReady(context.Background(), 150*time.Millisecond, func(context.Context) error {
		return errors.New("down")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}
