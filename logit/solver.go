package logit

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/quantal/logitrace"
)

// Solver traces the principal branch of the agent-logit QRE correspondence
// of a game, from the uniform profile at lambda=0 toward MaxLambda. Tracing
// is best effort: every outcome is encoded in the returned list of
// profiles, which may be empty or partial.
type Solver struct {
	// MaxLambda is the rationality parameter at which tracing stops. The
	// last profile reached is the branch's best approximation to a Nash
	// equilibrium.
	MaxLambda float64
	// FullGraph retains every accepted point of the branch instead of
	// only the final one.
	FullGraph bool
}

// NewSolver returns a solver with the default configuration.
func NewSolver() *Solver {
	return &Solver{MaxLambda: 30.0}
}

// Solve traces the correspondence branch over the given support and
// returns the accepted profiles in order. status may be nil. Cancellation
// through the status sink stops the trace and yields the points
// accumulated so far.
func (s *Solver) Solve(support *logitrace.Support, status Status) []*logitrace.BehaviorProfile {
	if status == nil {
		status = NullStatus{}
	}

	var solutions []*logitrace.BehaviorProfile
	if err := tracePath(support.Centroid(), 0.0, s.MaxLambda, 1.0, status, &solutions); err != nil {
		if errors.Cause(err) == ErrCancelled {
			glog.V(1).Infof("trace cancelled with %d points", len(solutions))
		} else {
			glog.Warningf("trace abandoned: %v", err)
		}
	}

	if !s.FullGraph && len(solutions) > 1 {
		solutions = solutions[len(solutions)-1:]
	}
	return solutions
}
