package catalog

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/cinebox/cinebox/internal/domain"
)

func TestDebouncer_LastWriteWins(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var got atomic.Int64
	superseded := make(chan struct{}, 2)

	d.Trigger(func() { got.Store(1); superseded <- struct{}{} })
	d.Trigger(func() { got.Store(2); superseded <- struct{}{} })
	fired := make(chan struct{})
	d.Trigger(func() { got.Store(3); close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("debounced function never fired")
	}
	if got.Load() != 3 {
		t.Fatalf("got = %d, want 3 (only the last trigger should run)", got.Load())
	}

	select {
	case <-superseded:
		t.Fatalf("superseded trigger ran")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	fired := make(chan struct{})
	d.Trigger(func() { close(fired) })
	d.Stop()

	select {
	case <-fired:
		t.Fatalf("stopped debouncer still fired")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestFieldValidator_ReportsAfterSettle(t *testing.T) {
	type report struct {
		field   string
		message string
	}
	reports := make(chan report, 1)

	v := NewFieldValidator(20*time.Millisecond, func(field, message string) {
		reports <- report{field, message}
	})
	defer v.Close()

	in := domain.MovieInput{Rating: 11}
	// Rapid edits; only the final state is validated.
	v.FieldChanged("rating", domain.MovieInput{Rating: 2})
	v.FieldChanged("rating", in)

	select {
	case r := <-reports:
		if r.field != "rating" {
			t.Fatalf("field = %q, want rating", r.field)
		}
		if r.message == "" {
			t.Fatalf("expected a validation message for rating 11")
		}
	case <-time.After(time.Second):
		t.Fatalf("validator never reported")
	}
}

func TestFieldValidator_ValidFieldReportsEmptyMessage(t *testing.T) {
	reports := make(chan string, 1)
	v := NewFieldValidator(10*time.Millisecond, func(_, message string) {
		reports <- message
	})
	defer v.Close()

	v.FieldChanged("rating", domain.MovieInput{Rating: 8.8})

	select {
	case msg := <-reports:
		if msg != "" {
			t.Fatalf("message = %q, want empty for valid rating", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("validator never reported")
	}
}
