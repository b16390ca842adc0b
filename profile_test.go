package logitrace

import (
	"math"
	"testing"
)

func TestCentroid(t *testing.T) {
	game := coordinationGame(t)
	profile := FullSupport(game).Centroid()

	if profile.Len() != 4 {
		t.Fatalf("profile has %d slots, expected 4", profile.Len())
	}
	for i := 0; i < profile.Len(); i++ {
		if profile.At(i) != 0.5 {
			t.Errorf("slot %d is %v, expected 0.5", i, profile.At(i))
		}
	}
}

func TestNewProfileFill(t *testing.T) {
	game := coordinationGame(t)
	profile := FullSupport(game).NewProfile(0.3)
	for i := 0; i < profile.Len(); i++ {
		if profile.At(i) != 0.3 {
			t.Errorf("slot %d is %v, expected 0.3", i, profile.At(i))
		}
	}
}

func TestActionValues(t *testing.T) {
	game := coordinationGame(t)
	support := FullSupport(game)
	profile := support.Centroid()

	// At the centroid both of the row player's actions coordinate half
	// the time.
	for k := 0; k < 2; k++ {
		if v := profile.ActionValue(support.GetAction(0, 0, k)); math.Abs(v-0.5) > 1e-12 {
			t.Errorf("action %d has value %v, expected 0.5", k, v)
		}
	}

	// Skew the column player; the row player's values follow.
	profile.SetProb(1, 0, 0, 0.7)
	profile.SetProb(1, 0, 1, 0.3)
	if v := profile.ActionValue(support.GetAction(0, 0, 0)); math.Abs(v-0.7) > 1e-12 {
		t.Errorf("row action 0 has value %v, expected 0.7", v)
	}
	if v := profile.ActionValue(support.GetAction(0, 0, 1)); math.Abs(v-0.3) > 1e-12 {
		t.Errorf("row action 1 has value %v, expected 0.3", v)
	}
}

func TestDiffActionValue(t *testing.T) {
	game := coordinationGame(t)
	support := FullSupport(game)
	profile := support.Centroid()

	rowA0 := support.GetAction(0, 0, 0)
	rowA1 := support.GetAction(0, 0, 1)
	colA0 := support.GetAction(1, 0, 0)

	// The row player's value of action 0 is the column player's weight on
	// action 0, so the cross derivative is the coordination payoff.
	if d := profile.DiffActionValue(rowA0, colA0); math.Abs(d-1.0) > 1e-6 {
		t.Errorf("cross derivative is %v, expected 1", d)
	}

	// A one-shot action value does not depend on the actor's own mixing.
	if d := profile.DiffActionValue(rowA0, rowA1); math.Abs(d) > 1e-8 {
		t.Errorf("own-infoset derivative is %v, expected 0", d)
	}
}

func TestDiffCacheInvalidation(t *testing.T) {
	game := coordinationGame(t)
	support := FullSupport(game)
	profile := support.Centroid()

	rowA0 := support.GetAction(0, 0, 0)
	colA0 := support.GetAction(1, 0, 0)

	before := profile.DiffActionValue(rowA0, colA0)
	profile.SetProb(1, 0, 0, 0.9)
	profile.SetProb(1, 0, 1, 0.1)
	after := profile.DiffActionValue(rowA0, colA0)

	// The derivative is constant in this game; the point is that the
	// cached evaluation must be recomputed, not reused blindly.
	if math.Abs(before-after) > 1e-6 {
		t.Errorf("derivative moved from %v to %v on a linear game", before, after)
	}
	if v := profile.ActionValue(rowA0); math.Abs(v-0.9) > 1e-12 {
		t.Errorf("action value is %v after mutation, expected 0.9", v)
	}
}

func TestClone(t *testing.T) {
	game := coordinationGame(t)
	profile := FullSupport(game).Centroid()
	clone := profile.Clone()
	clone.SetAt(0, 0.9)

	if profile.At(0) != 0.5 {
		t.Errorf("mutating a clone changed the original to %v", profile.At(0))
	}
}
