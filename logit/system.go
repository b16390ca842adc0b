package logit

import (
	"math"

	"github.com/quantal/logitrace"
	"github.com/quantal/logitrace/internal/linalg"
)

// fillProfile builds a profile on the support holding the strategy part of
// the continuation point.
func fillProfile(support *logitrace.Support, point linalg.Vector) *logitrace.BehaviorProfile {
	profile := support.NewProfile(0)
	for i := 0; i < profile.Len(); i++ {
		profile.SetAt(i, point[i])
	}
	return profile
}

// qreLHS evaluates the system of equations characterizing a point of the
// logit QRE correspondence. Per information set it emits one sum-to-one
// row followed by one logit indifference row for every non-reference
// action:
//
//	[ ln(s_k/s_1) - lambda*(V_k - V_1) ] * s_1 * s_k
//
// The multiplicative factor clears the logarithm on the boundary of the
// simplex; a row with a vanished factor is exactly 0 there.
func qreLHS(support *logitrace.Support, point linalg.Vector, lhs linalg.Vector) {
	profile := fillProfile(support, point)
	lambda := point[len(point)-1]

	for i := range lhs {
		lhs[i] = 0
	}

	row := 0
	for pl := 0; pl < support.NumPlayers(); pl++ {
		for iset := 0; iset < support.NumInfosets(pl); iset++ {
			for act := 0; act < support.NumActions(pl, iset); act++ {
				lhs[row] += profile.GetProb(pl, iset, act)
			}
			lhs[row] -= 1.0
			row++

			for act := 1; act < support.NumActions(pl, iset); act++ {
				p0 := profile.GetProb(pl, iset, 0)
				pk := profile.GetProb(pl, iset, act)
				if p0 > 0 && pk > 0 {
					lhs[row] = math.Log(pk / p0)
					lhs[row] -= lambda *
						(profile.ActionValue(support.GetAction(pl, iset, act)) -
							profile.ActionValue(support.GetAction(pl, iset, 0)))
					lhs[row] *= p0 * pk
				}
				row++
			}
		}
	}
}

// qreJacobian fills m with the partial derivatives of the system evaluated
// by qreLHS. Rows of m index the variables of the continuation point (the
// strategy slots followed by lambda); columns index the equations in the
// same traversal order qreLHS emits them. The own-infoset entries of an
// indifference row (-s_k and s_1) omit the terms proportional to the
// bracket [ ln(s_k/s_1) - lambda*(V_k - V_1) ], so they equal the exact
// partials only where that bracket vanishes, that is, on the
// correspondence.
func qreJacobian(support *logitrace.Support, point linalg.Vector, m *linalg.Matrix) {
	profile := fillProfile(support, point)
	lambda := point[len(point)-1]

	row := 0
	for pl1 := 0; pl1 < support.NumPlayers(); pl1++ {
		for iset1 := 0; iset1 < support.NumInfosets(pl1); iset1++ {
			// Sum-to-one equation: 1 on the own-infoset slots, 0 elsewhere.
			col := 0
			for pl2 := 0; pl2 < support.NumPlayers(); pl2++ {
				for iset2 := 0; iset2 < support.NumInfosets(pl2); iset2++ {
					for act2 := 0; act2 < support.NumActions(pl2, iset2); act2++ {
						if pl1 == pl2 && iset1 == iset2 {
							m.Set(col, row, 1.0)
						} else {
							m.Set(col, row, 0.0)
						}
						col++
					}
				}
			}
			m.Set(m.Rows()-1, row, 0.0)
			row++

			for act1 := 1; act1 < support.NumActions(pl1, iset1); act1++ {
				p0 := profile.GetProb(pl1, iset1, 0)
				pk := profile.GetProb(pl1, iset1, act1)
				a1 := support.GetAction(pl1, iset1, act1)
				a1ref := support.GetAction(pl1, iset1, 0)

				col = 0
				for pl2 := 0; pl2 < support.NumPlayers(); pl2++ {
					for iset2 := 0; iset2 < support.NumInfosets(pl2); iset2++ {
						for act2 := 0; act2 < support.NumActions(pl2, iset2); act2++ {
							if pl1 == pl2 && iset1 == iset2 {
								switch {
								case act2 == 0:
									m.Set(col, row, -pk)
								case act1 == act2:
									m.Set(col, row, p0)
								default:
									m.Set(col, row, 0.0)
								}
							} else if profile.InfosetProb(pl1, iset1) < 1.0e-10 {
								// The action value differentials divide by
								// the infoset reach; mask them when it
								// vanishes.
								m.Set(col, row, 0.0)
							} else {
								a2 := support.GetAction(pl2, iset2, act2)
								m.Set(col, row, -lambda*p0*pk*
									(profile.DiffActionValue(a1, a2)-
										profile.DiffActionValue(a1ref, a2)))
							}
							col++
						}
					}
				}

				m.Set(m.Rows()-1, row, -p0*pk*
					(profile.ActionValue(a1)-profile.ActionValue(a1ref)))
				row++
			}
		}
	}
}
