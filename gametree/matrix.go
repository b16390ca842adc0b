package gametree

import "fmt"

// Simultaneous returns the agent form of a one-shot game: player p chooses
// among numActions[p] alternatives without observing earlier players'
// choices, and payoff maps a full choice vector to one utility per player.
// Each player has a single information set pooling all histories of the
// players before them.
func Simultaneous(numActions []int, payoff func(choices []int) []float64) *Node {
	return simultaneous(numActions, payoff, nil)
}

func simultaneous(numActions []int, payoff func(choices []int) []float64, prefix []int) *Node {
	p := len(prefix)
	if p == len(numActions) {
		utils := payoff(prefix)
		if len(utils) != len(numActions) {
			panic(fmt.Errorf("payoff returned %d utilities for %d players", len(utils), len(numActions)))
		}
		return Terminal(utils...)
	}

	children := make([]*Node, numActions[p])
	for a := range children {
		choices := append(prefix[:len(prefix):len(prefix)], a)
		children[a] = simultaneous(numActions, payoff, choices)
	}
	return Decision(p, fmt.Sprintf("player/%d", p), children...)
}

// TwoPlayerMatrix returns the agent form of a bimatrix game. row[i][j] pays
// the row player and col[i][j] the column player when row plays i and
// column plays j.
func TwoPlayerMatrix(row, col [][]float64) *Node {
	if len(row) == 0 || len(row) != len(col) {
		panic(fmt.Errorf("row matrix has %d rows, col matrix has %d", len(row), len(col)))
	}
	nCols := len(row[0])
	for i := range row {
		if len(row[i]) != nCols || len(col[i]) != nCols {
			panic(fmt.Errorf("payoff matrices are ragged at row %d", i))
		}
	}

	return Simultaneous([]int{len(row), nCols}, func(choices []int) []float64 {
		i, j := choices[0], choices[1]
		return []float64{row[i][j], col[i][j]}
	})
}

// ZeroSumMatrix returns the agent form of a zero-sum matrix game paying
// row[i][j] to the row player and its negation to the column player.
func ZeroSumMatrix(row [][]float64) *Node {
	col := make([][]float64, len(row))
	for i := range row {
		col[i] = make([]float64, len(row[i]))
		for j := range row[i] {
			col[i][j] = -row[i][j]
		}
	}
	return TwoPlayerMatrix(row, col)
}
