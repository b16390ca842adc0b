// Package logit traces a branch of the agent-logit quantal response
// equilibrium correspondence by numerical continuation: Euler prediction
// along the curve tangent, Newton correction against the defining system,
// a Givens-rotation QR factorization shared by both, and adaptive step
// size control. The approach follows Allgower and Georg's
// _Numerical Continuation Methods_.
package logit

import (
	"context"

	"github.com/pkg/errors"
)

// ErrCancelled is reported by a Status sink to stop a trace in progress.
var ErrCancelled = errors.New("trace cancelled")

// Status receives progress reports from the tracer and may cancel it.
type Status interface {
	// Get returns non-nil to cancel the trace. It is polled once per
	// predictor-corrector cycle.
	Get() error
	// SetProgress is advisory; no ordering or rate is guaranteed.
	SetProgress(fraction float64, label string)
}

// NullStatus ignores progress and never cancels.
type NullStatus struct{}

func (NullStatus) Get() error                  { return nil }
func (NullStatus) SetProgress(float64, string) {}

// ContextStatus cancels the trace when the context is done.
type ContextStatus struct {
	Ctx context.Context
}

func (s ContextStatus) Get() error {
	select {
	case <-s.Ctx.Done():
		return errors.Wrap(ErrCancelled, s.Ctx.Err().Error())
	default:
		return nil
	}
}

func (ContextStatus) SetProgress(float64, string) {}
