// Package gametree builds explicit extensive-form game trees that satisfy
// the cfr.GameTreeNode interface. Trees are assembled from terminal,
// decision, and chance nodes; helpers construct the agent form of one-shot
// simultaneous-move games for bench and test use.
package gametree

import (
	"fmt"
	"math/rand"

	"github.com/timpalpant/go-cfr"
)

// Node is an explicit extensive-form game tree node.
type Node struct {
	nodeType cfr.NodeType
	player   int
	key      string
	utils    []float64
	probs    []float64
	children []*Node
	parent   *Node
}

// Verify that we implement the interface.
var _ cfr.GameTreeNode = &Node{}

// Terminal returns a leaf paying utils[p] to player p.
func Terminal(utils ...float64) *Node {
	return &Node{nodeType: cfr.TerminalNode, utils: utils}
}

// Decision returns a node where player chooses among children. Nodes
// sharing (player, key) belong to the same information set and must offer
// their actions in the same order.
func Decision(player int, key string, children ...*Node) *Node {
	n := &Node{nodeType: cfr.PlayerNode, player: player, key: key, children: children}
	for _, c := range children {
		c.parent = n
	}
	return n
}

// Chance returns a node where nature chooses child i with probability
// probs[i].
func Chance(probs []float64, children ...*Node) *Node {
	if len(probs) != len(children) {
		panic(fmt.Errorf("%d probabilities for %d children", len(probs), len(children)))
	}
	n := &Node{nodeType: cfr.ChanceNode, probs: probs, children: children}
	for _, c := range children {
		c.parent = n
	}
	return n
}

// Type implements cfr.GameTreeNode.
func (n *Node) Type() cfr.NodeType {
	return n.nodeType
}

// Player implements cfr.GameTreeNode.
func (n *Node) Player() int {
	return n.player
}

// InfoSet implements cfr.GameTreeNode. Only the acting player's view is
// tracked; the key identifies the information set within that player.
func (n *Node) InfoSet(player int) string {
	return n.key
}

// BuildChildren implements cfr.GameTreeNode. Children are constructed
// eagerly by Decision and Chance, so there is nothing to prepare.
func (n *Node) BuildChildren() {}

// FreeChildren implements cfr.GameTreeNode. Nodes retain their children
// for the lifetime of the tree, so there is nothing to release.
func (n *Node) FreeChildren() {}

// Utility implements cfr.GameTreeNode.
func (n *Node) Utility(player int) float64 {
	if n.nodeType != cfr.TerminalNode {
		panic("cannot get the utility of a non-terminal node")
	}
	return n.utils[player]
}

// NumChildren implements cfr.GameTreeNode.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// GetChild implements cfr.GameTreeNode.
func (n *Node) GetChild(i int) cfr.GameTreeNode {
	return n.children[i]
}

// Parent implements cfr.GameTreeNode.
func (n *Node) Parent() cfr.GameTreeNode {
	return n.parent
}

// GetChildProbability implements cfr.GameTreeNode.
func (n *Node) GetChildProbability(i int) float64 {
	if n.nodeType != cfr.ChanceNode {
		panic("cannot get the probability of a non-chance node")
	}
	return n.probs[i]
}

// SampleChild implements cfr.GameTreeNode.
func (n *Node) SampleChild() (cfr.GameTreeNode, float64) {
	if n.nodeType != cfr.ChanceNode {
		panic("cannot sample the child of a non-chance node")
	}
	r := rand.Float64()
	cum := 0.0
	for i, p := range n.probs {
		cum += p
		if r < cum {
			return n.children[i], p
		}
	}
	last := len(n.children) - 1
	return n.children[last], n.probs[last]
}

// Close implements cfr.GameTreeNode. Nodes are plain values; nothing to
// release.
func (n *Node) Close() {}

// String implements fmt.Stringer.
func (n *Node) String() string {
	switch n.nodeType {
	case cfr.TerminalNode:
		return fmt.Sprintf("terminal%v", n.utils)
	case cfr.ChanceNode:
		return fmt.Sprintf("chance over %d children", len(n.children))
	default:
		return fmt.Sprintf("player %d at %q (%d actions)", n.player, n.key, len(n.children))
	}
}

type nodeInfoSet string

// Key implements cfr.InfoSet.
func (is *nodeInfoSet) Key() string {
	return string(*is)
}

// MarshalBinary implements cfr.InfoSet.
func (is *nodeInfoSet) MarshalBinary() ([]byte, error) {
	return []byte(*is), nil
}

// UnmarshalBinary implements cfr.InfoSet.
func (is *nodeInfoSet) UnmarshalBinary(buf []byte) error {
	*is = nodeInfoSet(buf)
	return nil
}
