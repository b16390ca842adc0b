package logitrace

import "github.com/pkg/errors"

// Action is a stable handle on one action slot of a game. Handles remain
// valid across support restrictions: an action keeps its identity after
// other actions are removed.
type Action struct {
	infoset int // global infoset index
	child   int // child offset within the owning game node
}

// Support is an immutable subset of each information set's actions. The
// homotopy engine restricts play to a support and shrinks it as strategies
// leave the simplex.
type Support struct {
	game *Game
	// actions holds, per global infoset, the retained child offsets in
	// ascending order. Shared between supports; never mutated in place.
	actions [][]int
	offsets []int // per global infoset, offset into the flat slot layout
	slots   int
}

// FullSupport returns the support containing every action of the game.
func FullSupport(g *Game) *Support {
	actions := make([][]int, len(g.infosets))
	for gi, is := range g.infosets {
		all := make([]int, is.numActions)
		for k := range all {
			all[k] = k
		}
		actions[gi] = all
	}
	return newSupport(g, actions)
}

func newSupport(g *Game, actions [][]int) *Support {
	s := &Support{game: g, actions: actions}
	s.offsets = make([]int, len(actions))
	for gi, acts := range actions {
		s.offsets[gi] = s.slots
		s.slots += len(acts)
	}
	return s
}

// Game returns the game the support restricts.
func (s *Support) Game() *Game { return s.game }

// NumPlayers returns the number of players in the underlying game.
func (s *Support) NumPlayers() int { return s.game.numPlayers }

// NumInfosets returns the number of information sets of player p.
func (s *Support) NumInfosets(p int) int { return len(s.game.byPlayer[p]) }

// NumActions returns the number of retained actions at infoset i of player p.
func (s *Support) NumActions(p, i int) int {
	return len(s.actions[s.game.byPlayer[p][i]])
}

// NumSlots returns the total number of retained action slots.
func (s *Support) NumSlots() int { return s.slots }

// GetAction returns the handle of the k'th retained action at infoset i of
// player p.
func (s *Support) GetAction(p, i, k int) Action {
	gi := s.game.byPlayer[p][i]
	return Action{infoset: gi, child: s.actions[gi][k]}
}

// ActionAtSlot returns the handle occupying flat slot l in the canonical
// traversal order (players outer, infosets next, actions innermost).
func (s *Support) ActionAtSlot(l int) Action {
	rem := l
	for gi, acts := range s.actions {
		if rem < len(acts) {
			return Action{infoset: gi, child: acts[rem]}
		}
		rem -= len(acts)
	}
	panic(errors.Errorf("slot %d out of range [0, %d)", l, s.slots))
}

// RemoveAction returns a new support with a removed. The receiver is
// unchanged. Removing the last action of an information set is an error.
func (s *Support) RemoveAction(a Action) (*Support, error) {
	old := s.actions[a.infoset]
	if len(old) <= 1 {
		return nil, errors.Errorf("cannot remove the last action of infoset %d", a.infoset)
	}

	reduced := make([]int, 0, len(old)-1)
	for _, c := range old {
		if c != a.child {
			reduced = append(reduced, c)
		}
	}
	if len(reduced) == len(old) {
		return nil, errors.Errorf("action (infoset %d, child %d) not in support", a.infoset, a.child)
	}

	actions := make([][]int, len(s.actions))
	copy(actions, s.actions)
	actions[a.infoset] = reduced
	return newSupport(s.game, actions), nil
}

// slotOf returns the flat slot of a, or -1 when a is not retained.
func (s *Support) slotOf(a Action) int {
	for k, c := range s.actions[a.infoset] {
		if c == a.child {
			return s.offsets[a.infoset] + k
		}
	}
	return -1
}
