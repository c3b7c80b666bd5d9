package qbloch

import (
	"sync"

	"github.com/theapemachine/errnie"
)

/*
Diagnostics receives rejected input. Nothing in the core is fatal: a bad
request is reported here and otherwise ignored.
*/
type Diagnostics interface {
	Report(err error)
}

// LogDiagnostics writes reports to the errnie logger.
type LogDiagnostics struct{}

func (LogDiagnostics) Report(err error) {
	errnie.Info("qbloch: %v", err)
}

// DiagnosticRecorder keeps every report in order.
type DiagnosticRecorder struct {
	mu      sync.Mutex
	reports []error
}

func (r *DiagnosticRecorder) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, err)
}

// Reports returns a copy of what has been reported so far.
func (r *DiagnosticRecorder) Reports() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]error, len(r.reports))
	copy(out, r.reports)
	return out
}
