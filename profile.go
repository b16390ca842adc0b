package logitrace

import (
	"math"

	lru "github.com/hashicorp/golang-lru"
)

// diffStep is the base step for central-difference derivatives of action
// values, cube root of machine epsilon per the usual analysis.
var diffStep = math.Cbrt(math.Nextafter(1, 2) - 1)

// BehaviorProfile assigns a probability to every action slot of a support.
// It exposes the payoff quantities the homotopy engine needs: action
// values, their derivatives with respect to action probabilities, and
// information set reach probabilities. Evaluation is lazy: the first query
// after a mutation runs one top-down reach pass and one bottom-up value
// pass over the materialized tree.
type BehaviorProfile struct {
	support *Support
	probs   []float64

	valid     bool
	reach     []float64 // per node realization probability
	values    []float64 // per node, per player expected utility (node-major)
	isetReach []float64 // per global infoset

	// diffCache holds central-difference evaluations keyed by the
	// perturbed action; purged whenever the profile mutates.
	diffCache *lru.Cache
}

// NewProfile returns a profile on s with every slot set to fill.
func (s *Support) NewProfile(fill float64) *BehaviorProfile {
	probs := make([]float64, s.slots)
	for i := range probs {
		probs[i] = fill
	}
	cache, _ := lru.New(s.slots + 1)
	return &BehaviorProfile{support: s, probs: probs, diffCache: cache}
}

// Centroid returns the uniform profile on s: every retained action at an
// information set gets equal probability.
func (s *Support) Centroid() *BehaviorProfile {
	p := s.NewProfile(0)
	for gi, acts := range s.actions {
		w := 1.0 / float64(len(acts))
		for k := range acts {
			p.probs[s.offsets[gi]+k] = w
		}
	}
	return p
}

// Support returns the support the profile is defined on.
func (p *BehaviorProfile) Support() *Support { return p.support }

// Len returns the number of action slots.
func (p *BehaviorProfile) Len() int { return len(p.probs) }

// At returns the probability in flat slot l.
func (p *BehaviorProfile) At(l int) float64 { return p.probs[l] }

// SetAt assigns the probability in flat slot l.
func (p *BehaviorProfile) SetAt(l int, v float64) {
	p.probs[l] = v
	p.invalidate()
}

// GetProb returns the probability of the k'th retained action at infoset i
// of player pl.
func (p *BehaviorProfile) GetProb(pl, i, k int) float64 {
	gi := p.support.game.byPlayer[pl][i]
	return p.probs[p.support.offsets[gi]+k]
}

// SetProb assigns the probability of the k'th retained action at infoset i
// of player pl.
func (p *BehaviorProfile) SetProb(pl, i, k int, v float64) {
	gi := p.support.game.byPlayer[pl][i]
	p.probs[p.support.offsets[gi]+k] = v
	p.invalidate()
}

// ProbOf returns the probability on a, or 0 when a is outside the support.
func (p *BehaviorProfile) ProbOf(a Action) float64 {
	if l := p.support.slotOf(a); l >= 0 {
		return p.probs[l]
	}
	return 0
}

// Clone returns a copy of the profile on the same support.
func (p *BehaviorProfile) Clone() *BehaviorProfile {
	q := p.support.NewProfile(0)
	copy(q.probs, p.probs)
	return q
}

func (p *BehaviorProfile) invalidate() {
	p.valid = false
	p.diffCache.Purge()
}

// evaluate refreshes the cached reach probabilities and expected values.
// Nodes are stored in depth-first preorder, so a forward sweep propagates
// reach and a reverse sweep folds values.
func (p *BehaviorProfile) evaluate() {
	if p.valid {
		return
	}
	g := p.support.game
	np := g.numPlayers
	if p.reach == nil {
		p.reach = make([]float64, len(g.nodes))
		p.values = make([]float64, len(g.nodes)*np)
		p.isetReach = make([]float64, len(g.infosets))
	}

	reach := p.reach
	for i := range reach {
		reach[i] = 0
	}
	reach[0] = 1
	for i := range g.nodes {
		nd := &g.nodes[i]
		r := reach[i]
		switch {
		case nd.probs != nil:
			for j, c := range nd.children {
				reach[c] += r * nd.probs[j]
			}
		case nd.infoset >= 0:
			off := p.support.offsets[nd.infoset]
			for k, childOff := range p.support.actions[nd.infoset] {
				reach[nd.children[childOff]] += r * p.probs[off+k]
			}
		}
	}

	for i := len(g.nodes) - 1; i >= 0; i-- {
		nd := &g.nodes[i]
		v := p.values[i*np : (i+1)*np]
		switch {
		case nd.utils != nil:
			copy(v, nd.utils)
		case nd.probs != nil:
			for pl := range v {
				v[pl] = 0
			}
			for j, c := range nd.children {
				cv := p.values[c*np : (c+1)*np]
				for pl := range v {
					v[pl] += nd.probs[j] * cv[pl]
				}
			}
		default:
			for pl := range v {
				v[pl] = 0
			}
			off := p.support.offsets[nd.infoset]
			for k, childOff := range p.support.actions[nd.infoset] {
				w := p.probs[off+k]
				cv := p.values[nd.children[childOff]*np : (nd.children[childOff]+1)*np]
				for pl := range v {
					v[pl] += w * cv[pl]
				}
			}
		}
	}

	for gi := range g.infosets {
		sum := 0.0
		for _, n := range g.infosets[gi].nodes {
			sum += reach[n]
		}
		p.isetReach[gi] = sum
	}

	p.valid = true
}

// ActionValue returns the expected payoff to the acting player of taking
// action a at its information set, conditional on the set being reached.
// When the set is unreachable under the profile the value is reported as 0;
// the engine masks those entries anyway.
func (p *BehaviorProfile) ActionValue(a Action) float64 {
	p.evaluate()
	g := p.support.game
	is := &g.infosets[a.infoset]
	r := p.isetReach[a.infoset]
	if r <= 0 {
		return 0
	}

	num := 0.0
	for _, n := range is.nodes {
		c := g.nodes[n].children[a.child]
		num += p.reach[n] * p.values[c*g.numPlayers+is.player]
	}
	return num / r
}

// InfosetProb returns the reach probability of infoset i of player pl.
func (p *BehaviorProfile) InfosetProb(pl, i int) float64 {
	p.evaluate()
	return p.isetReach[p.support.game.byPlayer[pl][i]]
}

type diffEntry struct {
	step        float64
	plus, minus []float64 // action value per slot at sigma(b) +/- step
}

// DiffActionValue returns the partial derivative of ActionValue(a) with
// respect to the probability placed on b, estimated by central differences.
// One perturbation of b prices every action, so the per-b evaluations are
// cached until the profile mutates.
func (p *BehaviorProfile) DiffActionValue(a, b Action) float64 {
	ent := p.diffEntry(b)
	l := p.support.slotOf(a)
	return (ent.plus[l] - ent.minus[l]) / (2 * ent.step)
}

func (p *BehaviorProfile) diffEntry(b Action) *diffEntry {
	if v, ok := p.diffCache.Get(b); ok {
		return v.(*diffEntry)
	}

	slot := p.support.slotOf(b)
	x0 := p.probs[slot]
	ent := &diffEntry{
		step:  diffStep * math.Max(1, math.Abs(x0)),
		plus:  make([]float64, len(p.probs)),
		minus: make([]float64, len(p.probs)),
	}

	p.probs[slot] = x0 + ent.step
	p.valid = false
	p.actionValues(ent.plus)

	p.probs[slot] = x0 - ent.step
	p.valid = false
	p.actionValues(ent.minus)

	p.probs[slot] = x0
	p.valid = false

	p.diffCache.Add(b, ent)
	return ent
}

// actionValues fills dst with the action value of every slot under the
// current (possibly perturbed) probabilities.
func (p *BehaviorProfile) actionValues(dst []float64) {
	s := p.support
	for gi, acts := range s.actions {
		for k, childOff := range acts {
			dst[s.offsets[gi]+k] = p.ActionValue(Action{infoset: gi, child: childOff})
		}
	}
}
