package logitrace

import "testing"

func TestRemoveAction(t *testing.T) {
	game := coordinationGame(t)
	full := FullSupport(game)

	reduced, err := full.RemoveAction(full.GetAction(0, 0, 0))
	if err != nil {
		t.Fatalf("removing action: %v", err)
	}

	if full.NumActions(0, 0) != 2 {
		t.Errorf("original support shrank to %d actions", full.NumActions(0, 0))
	}
	if reduced.NumActions(0, 0) != 1 {
		t.Errorf("reduced support has %d actions, expected 1", reduced.NumActions(0, 0))
	}
	if reduced.NumSlots() != 3 {
		t.Errorf("reduced support has %d slots, expected 3", reduced.NumSlots())
	}

	// The surviving action keeps its identity.
	if reduced.GetAction(0, 0, 0) != full.GetAction(0, 0, 1) {
		t.Error("surviving action lost its handle identity")
	}
}

func TestRemoveLastAction(t *testing.T) {
	game := coordinationGame(t)
	full := FullSupport(game)
	reduced, err := full.RemoveAction(full.GetAction(0, 0, 0))
	if err != nil {
		t.Fatalf("removing action: %v", err)
	}

	if _, err := reduced.RemoveAction(reduced.GetAction(0, 0, 0)); err == nil {
		t.Error("expected an error removing the last action of an infoset")
	}
}

func TestActionAtSlot(t *testing.T) {
	game := coordinationGame(t)
	full := FullSupport(game)

	l := 0
	for p := 0; p < full.NumPlayers(); p++ {
		for i := 0; i < full.NumInfosets(p); i++ {
			for k := 0; k < full.NumActions(p, i); k++ {
				if full.ActionAtSlot(l) != full.GetAction(p, i, k) {
					t.Errorf("slot %d does not match action (%d,%d,%d)", l, p, i, k)
				}
				l++
			}
		}
	}
}

func TestProbOfRemovedAction(t *testing.T) {
	game := coordinationGame(t)
	full := FullSupport(game)
	reduced, err := full.RemoveAction(full.GetAction(0, 0, 0))
	if err != nil {
		t.Fatalf("removing action: %v", err)
	}

	profile := reduced.Centroid()
	if v := profile.ProbOf(full.GetAction(0, 0, 0)); v != 0 {
		t.Errorf("removed action has probability %v, expected 0", v)
	}
	if v := profile.ProbOf(full.GetAction(0, 0, 1)); v != 1 {
		t.Errorf("surviving action has probability %v, expected 1", v)
	}
}
