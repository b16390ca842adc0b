package logitrace

import (
	"math"
	"testing"

	"github.com/quantal/logitrace/gametree"
)

func coordinationGame(t *testing.T) *Game {
	t.Helper()
	root := gametree.TwoPlayerMatrix(
		[][]float64{{1, 0}, {0, 1}},
		[][]float64{{1, 0}, {0, 1}})
	game, err := CompileGame(root, 2)
	if err != nil {
		t.Fatalf("compiling coordination game: %v", err)
	}
	return game
}

func TestCompileCoordination(t *testing.T) {
	game := coordinationGame(t)

	if game.NumPlayers() != 2 {
		t.Errorf("game has %d players, expected 2", game.NumPlayers())
	}
	for p := 0; p < 2; p++ {
		if game.NumInfosets(p) != 1 {
			t.Errorf("player %d has %d infosets, expected 1", p, game.NumInfosets(p))
		}
		if game.NumActions(p, 0) != 2 {
			t.Errorf("player %d has %d actions, expected 2", p, game.NumActions(p, 0))
		}
	}

	// Root, two column-player nodes, four terminals.
	if game.NumNodes() != 7 {
		t.Errorf("game has %d nodes, expected 7", game.NumNodes())
	}
}

func TestCompileSimultaneousThreePlayer(t *testing.T) {
	root := gametree.Simultaneous([]int{2, 2, 2}, func(choices []int) []float64 {
		return []float64{float64(choices[0]), float64(choices[1]), float64(choices[2])}
	})
	game, err := CompileGame(root, 3)
	if err != nil {
		t.Fatalf("compiling game: %v", err)
	}

	if game.NumNodes() != 15 {
		t.Errorf("game has %d nodes, expected 15", game.NumNodes())
	}
	for p := 0; p < 3; p++ {
		if game.NumInfosets(p) != 1 {
			t.Errorf("player %d has %d infosets, expected 1 (pooled)", p, game.NumInfosets(p))
		}
		if game.NumActions(p, 0) != 2 {
			t.Errorf("player %d has %d actions, expected 2", p, game.NumActions(p, 0))
		}
	}
}

func TestCompileRejectsInconsistentInfoset(t *testing.T) {
	// The same information set key offers two actions at one node and
	// three at another.
	root := gametree.Decision(1, "top",
		gametree.Decision(0, "x",
			gametree.Terminal(0, 0),
			gametree.Terminal(0, 0)),
		gametree.Decision(0, "x",
			gametree.Terminal(0, 0),
			gametree.Terminal(0, 0),
			gametree.Terminal(0, 0)))

	if _, err := CompileGame(root, 2); err == nil {
		t.Error("expected an error for inconsistent action counts")
	}
}

func TestCompileRejectsBadPlayer(t *testing.T) {
	root := gametree.Decision(3, "p3",
		gametree.Terminal(0, 0),
		gametree.Terminal(0, 0))
	if _, err := CompileGame(root, 2); err == nil {
		t.Error("expected an error for an out-of-range player")
	}
}

func TestInfosetProbChance(t *testing.T) {
	root := gametree.Chance([]float64{0.25, 0.75},
		gametree.Decision(0, "a", gametree.Terminal(0), gametree.Terminal(1)),
		gametree.Decision(0, "b", gametree.Terminal(2), gametree.Terminal(3)))
	game, err := CompileGame(root, 1)
	if err != nil {
		t.Fatalf("compiling game: %v", err)
	}

	profile := FullSupport(game).Centroid()
	if p := profile.InfosetProb(0, 0); math.Abs(p-0.25) > 1e-12 {
		t.Errorf("infoset 0 has reach %v, expected 0.25", p)
	}
	if p := profile.InfosetProb(0, 1); math.Abs(p-0.75) > 1e-12 {
		t.Errorf("infoset 1 has reach %v, expected 0.75", p)
	}
}
