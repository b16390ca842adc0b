package logit

import (
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/quantal/logitrace"
	"github.com/quantal/logitrace/internal/linalg"
)

const (
	maxIters = 5000   // hard iteration ceiling per branch
	corrTol  = 1.0e-4 // tolerance for the corrector iteration
	maxDecel = 1.1    // maximal deceleration factor
	maxDist  = 0.4    // maximal distance to the curve
	maxContr = 0.6    // maximal contraction rate in the corrector
	eta      = 0.1    // perturbation to avoid cancellation in the contraction rate
	hInit    = 0.03   // initial stepsize
	hMin     = 1.0e-5 // minimal stepsize
	dropTol  = 1.0e-10
)

// stepObserver, when set, receives the stepsize after every accepted
// predictor-corrector cycle. Test seam.
var stepObserver func(h float64)

// dropFirst scans the strategy part of a point for a component that has
// left the simplex interior. When one is found it returns a profile on the
// support with that action removed, holding the surviving components.
func dropFirst(support *logitrace.Support, probs []float64) (*logitrace.BehaviorProfile, error) {
	for i, v := range probs {
		if v >= dropTol {
			continue
		}

		reduced, err := support.RemoveAction(support.ActionAtSlot(i))
		if err != nil {
			return nil, err
		}

		next := reduced.NewProfile(0)
		for j := 0; j < next.Len(); j++ {
			if j < i {
				next.SetAt(j, probs[j])
			} else {
				next.SetAt(j, probs[j+1])
			}
		}
		return next, nil
	}
	return nil, nil
}

// tracePath follows one branch of the correspondence from start at
// startLambda until lambda leaves [0, maxLambda), the stepsize collapses,
// or the iteration ceiling is hit. Accepted points are appended to
// solutions. When a strategy drops out of the support the branch restarts
// on the reduced support from the drop point; the original formulation
// recursed here, but both drop sites are tail calls, so a loop carries the
// reduced profile instead.
//
// The only errors returned are cancellation from the status sink and a
// support that can no longer shrink; every numerical failure mode shrinks
// the stepsize until the trace gives up silently.
func tracePath(start *logitrace.BehaviorProfile, startLambda, maxLambda, omega float64,
	status Status, solutions *[]*logitrace.BehaviorProfile) error {

branch:
	for {
		support := start.Support()
		n := start.Len()

		x := linalg.NewVector(n + 1)
		for i := 0; i < n; i++ {
			x[i] = start.At(i)
		}
		x[n] = startLambda

		u := linalg.NewVector(n + 1)
		y := linalg.NewVector(n)
		t := linalg.NewVector(n + 1)
		newT := linalg.NewVector(n + 1)

		b := linalg.NewMatrix(n+1, n)
		q := linalg.NewMatrix(n+1, n+1)
		qreJacobian(support, x, b)
		linalg.QRDecomp(b, q)
		q.CopyRow(q.Rows()-1, t)

		// A caller-supplied start (or a restart after a drop) may already
		// sit on a face of the simplex; shed those actions before stepping.
		if next, err := dropFirst(support, x[:n]); err != nil {
			return err
		} else if next != nil {
			start, startLambda = next, x[n]
			continue branch
		}

		h := hInit
		niters := 0

		for x[n] >= 0.0 && x[n] < maxLambda {
			if err := status.Get(); err != nil {
				return err
			}
			if niters > maxIters {
				glog.V(1).Infof("giving up after %d iterations at lambda=%v", niters, x[n])
				return nil
			}
			if niters%25 == 0 {
				status.SetProgress(x[n]/maxLambda, fmt.Sprintf("Lambda = %v", x[n]))
			}
			niters++

			if math.Abs(h) <= hMin {
				return nil
			}

			// Predictor step along the tangent.
			accept := true
			for k := 0; k <= n; k++ {
				u[k] = x[k] + h*omega*t[k]
				if k < n && u[k] < 0.0 {
					accept = false
					break
				}
			}
			if !accept {
				h *= 0.5
				continue
			}

			decel := 1.0 / maxDecel
			qreJacobian(support, u, b)
			linalg.QRDecomp(b, q)

			// Corrector iteration.
			disto := 0.0
			for iter := 1; ; iter++ {
				qreLHS(support, u, y)
				dist := linalg.NewtonStep(q, b, u, y)
				if dist >= maxDist || math.IsNaN(dist) {
					accept = false
					break
				}
				for i := 0; i < n; i++ {
					if u[i] < 0.0 {
						// don't go negative
						accept = false
						break
					}
				}
				if !accept {
					break
				}

				decel = math.Max(decel, math.Sqrt(dist/maxDist)*maxDecel)
				if iter >= 2 {
					contr := dist / (disto + corrTol*eta)
					if contr > maxContr {
						accept = false
						break
					}
					decel = math.Max(decel, math.Sqrt(contr/maxContr)*maxDecel)
				}

				if dist <= corrTol {
					break
				}
				disto = dist
			}

			if !accept {
				// Not accepted; shrink the stepsize and retry.
				h /= maxDecel
				if math.Abs(h) <= hMin {
					return nil
				}
				continue
			}

			if decel > maxDecel {
				decel = maxDecel
			}
			h = math.Abs(h / decel)

			// Commit the corrected point, shedding any strategy that left
			// the support on the way.
			if next, err := dropFirst(support, u[:n]); err != nil {
				return err
			} else if next != nil {
				start, startLambda = next, u[n]
				continue branch
			}
			copy(x, u)

			snapshot := support.NewProfile(0)
			for i := 0; i < n; i++ {
				snapshot.SetAt(i, x[i])
			}
			*solutions = append(*solutions, snapshot)
			if stepObserver != nil {
				stepObserver(h)
			}
			glog.V(2).Infof("accepted point at lambda=%v (h=%v, %d points)",
				x[n], h, len(*solutions))

			q.CopyRow(q.Rows()-1, newT)
			if t.Dot(newT) < 0.0 {
				// A turning point was crossed; flip the orientation to
				// keep moving forward along the curve.
				glog.V(1).Infof("orientation flip at lambda=%v", x[n])
				omega = -omega
			}
			copy(t, newT)
		}
		return nil
	}
}
