package catalog

import (
	"sync"
	"time"

	"github.com/cinebox/cinebox/internal/domain"
)

// Debouncer coalesces rapid triggers, running only the most recent function
// once the delay elapses. Last write wins; each trigger supersedes the
// previous one.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer constructs a Debouncer with the given settle delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, cancelling any previously scheduled function.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending function. Call when the owning view goes away.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// FieldValidator delivers per-field validation feedback a settle delay after
// the last edit, using the same rules the API boundary enforces.
type FieldValidator struct {
	debouncer *Debouncer
	report    func(field, message string)
}

// NewFieldValidator constructs a validator that calls report with the field
// name and its validation message (empty when valid).
func NewFieldValidator(delay time.Duration, report func(field, message string)) *FieldValidator {
	return &FieldValidator{
		debouncer: NewDebouncer(delay),
		report:    report,
	}
}

// FieldChanged records an edit to field; validation runs after the delay
// unless another edit supersedes it.
func (v *FieldValidator) FieldChanged(field string, input domain.MovieInput) {
	v.debouncer.Trigger(func() {
		v.report(field, domain.ValidateField(field, input))
	})
}

// Close cancels any pending validation.
func (v *FieldValidator) Close() {
	v.debouncer.Stop()
}
