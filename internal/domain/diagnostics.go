package domain

import (
	"errors"
	"fmt"
	"sync"
)

// Diagnostics accumulates authoring errors for one run.
// It is safe for concurrent use.
type Diagnostics struct {
	mu   sync.Mutex
	errs []error
}

// NewDiagnostics creates an empty collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Report records an AuthoringError for unit.
func (d *Diagnostics) Report(unit, format string, args ...any) {
	d.Add(&AuthoringError{Unit: unit, Message: fmt.Sprintf(format, args...)})
}

// Add records err as is.
func (d *Diagnostics) Add(err error) {
	if err == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, err)
}

// Errors returns a copy of the collected errors in report order.
func (d *Diagnostics) Errors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]error, len(d.errs))
	copy(out, d.errs)
	return out
}

// Len returns the number of collected errors.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.errs)
}

// Err joins the collected errors, or returns nil when there are none.
func (d *Diagnostics) Err() error {
	return errors.Join(d.Errors()...)
}
