// Package logitrace traces branches of the agent-logit quantal response
// equilibrium correspondence of extensive-form games. The root package
// holds the agent-form game model: a compiled, flattened view of a
// cfr.GameTreeNode tree, supports over its actions, and behavior profiles
// with the payoff quantities the homotopy engine consumes.
package logitrace

import (
	"github.com/pkg/errors"
	"github.com/timpalpant/go-cfr"
)

// Game is the agent form of an extensive-form game: every information set
// is treated as an independent decision maker. The tree is materialized
// once at construction; the original nodes are not retained.
type Game struct {
	numPlayers int
	nodes      []gameNode
	// infosets are grouped by player: all of player 0's information sets
	// first, then player 1's, and so on. This ordering fixes the traversal
	// order of every flattened vector built over the game.
	infosets []infoset
	byPlayer [][]int
}

type gameNode struct {
	nodeType cfr.NodeType
	infoset  int // global infoset index; -1 unless a player node
	children []int
	probs    []float64 // chance nodes only
	utils    []float64 // terminal nodes only, one entry per player
}

type infoset struct {
	player     int
	numActions int
	nodes      []int // member nodes, in discovery order
}

// CompileGame walks the game tree rooted at root and builds its agent form.
// Information sets are identified by (acting player, InfoSet key); every
// node of one information set must offer the same number of actions.
func CompileGame(root cfr.GameTreeNode, numPlayers int) (*Game, error) {
	if numPlayers <= 0 {
		return nil, errors.Errorf("game must have at least one player, got %d", numPlayers)
	}

	g := &Game{numPlayers: numPlayers}
	keys := make(map[infosetID]int)
	if _, err := g.compile(root, keys); err != nil {
		return nil, err
	}

	g.groupByPlayer()
	return g, nil
}

type infosetID struct {
	player int
	key    string
}

func (g *Game) compile(node cfr.GameTreeNode, keys map[infosetID]int) (int, error) {
	idx := len(g.nodes)
	g.nodes = append(g.nodes, gameNode{nodeType: node.Type(), infoset: -1})

	switch node.Type() {
	case cfr.TerminalNode:
		utils := make([]float64, g.numPlayers)
		for p := range utils {
			utils[p] = node.Utility(p)
		}
		g.nodes[idx].utils = utils

	case cfr.ChanceNode:
		n := node.NumChildren()
		probs := make([]float64, n)
		children := make([]int, n)
		for i := 0; i < n; i++ {
			probs[i] = node.GetChildProbability(i)
			ci, err := g.compile(node.GetChild(i), keys)
			if err != nil {
				return 0, err
			}
			children[i] = ci
		}
		g.nodes[idx].probs = probs
		g.nodes[idx].children = children

	case cfr.PlayerNode:
		player := node.Player()
		if player < 0 || player >= g.numPlayers {
			return 0, errors.Errorf("player %d out of range [0, %d)", player, g.numPlayers)
		}

		n := node.NumChildren()
		id := infosetID{player: player, key: node.InfoSet(player)}
		isIdx, ok := keys[id]
		if !ok {
			isIdx = len(g.infosets)
			g.infosets = append(g.infosets, infoset{player: player, numActions: n})
			keys[id] = isIdx
		} else if g.infosets[isIdx].numActions != n {
			return 0, errors.Errorf("information set %q of player %d has %d actions at one node and %d at another",
				id.key, player, g.infosets[isIdx].numActions, n)
		}
		g.infosets[isIdx].nodes = append(g.infosets[isIdx].nodes, idx)
		g.nodes[idx].infoset = isIdx

		children := make([]int, n)
		for i := 0; i < n; i++ {
			ci, err := g.compile(node.GetChild(i), keys)
			if err != nil {
				return 0, err
			}
			children[i] = ci
		}
		g.nodes[idx].children = children

	default:
		return 0, errors.Errorf("unknown node type %v", node.Type())
	}

	return idx, nil
}

// groupByPlayer permutes the information sets into the canonical order:
// players outer, discovery order within a player.
func (g *Game) groupByPlayer() {
	perm := make([]int, len(g.infosets))
	grouped := make([]infoset, 0, len(g.infosets))
	g.byPlayer = make([][]int, g.numPlayers)
	for p := 0; p < g.numPlayers; p++ {
		for old, is := range g.infosets {
			if is.player != p {
				continue
			}
			perm[old] = len(grouped)
			g.byPlayer[p] = append(g.byPlayer[p], len(grouped))
			grouped = append(grouped, is)
		}
	}
	g.infosets = grouped

	for i := range g.nodes {
		if g.nodes[i].infoset >= 0 {
			g.nodes[i].infoset = perm[g.nodes[i].infoset]
		}
	}
}

// NumPlayers returns the number of players in the game.
func (g *Game) NumPlayers() int { return g.numPlayers }

// NumInfosets returns the number of information sets of player p.
func (g *Game) NumInfosets(p int) int { return len(g.byPlayer[p]) }

// NumActions returns the number of actions at infoset i of player p in the
// full game, before any support restriction.
func (g *Game) NumActions(p, i int) int {
	return g.infosets[g.byPlayer[p][i]].numActions
}

// NumNodes returns the number of materialized tree nodes.
func (g *Game) NumNodes() int { return len(g.nodes) }
