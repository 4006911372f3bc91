package main

import (
	"log"
	"math"
	"math/rand"
	"sort"
	"time"
)

// SearchAgent picks moves with a depth-bounded minimax search and alpha-beta
// pruning. Move-order randomization only ever comes from the injected rng,
// so a fixed (board, depth, seed) triple always reproduces the same choice.
type SearchAgent struct {
	color  Color
	depth  int
	config Config
	rng    *rand.Rand

	nodes int
}

func NewSearchAgent(color Color, depth int, config Config) *SearchAgent {
	return &SearchAgent{color: color, depth: depth, config: config}
}

// SetRand installs an explicit randomness source used to diversify among
// equally ordered moves. Leave nil for fully deterministic search.
func (a *SearchAgent) SetRand(rng *rand.Rand) {
	a.rng = rng
}

// GetBestMove returns the best legal move for the agent's color, or false
// when the color has no legal moves. Callers distinguish checkmate from
// stalemate through the board's status flags, not through this result.
func (a *SearchAgent) GetBestMove(b Board) (Move, bool) {
	start := time.Now()
	moves := b.LegalMoves(a.color)
	if len(moves) == 0 {
		return Move{}, false
	}
	a.nodes = 0
	a.shuffle(moves)
	orderMoves(moves)

	opponent := a.color.Other()
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	best := moves[0]
	bestScore := math.Inf(-1)

	// The root explores every sibling; alpha only tightens the subtrees.
	for i, m := range moves {
		child := b.ApplyMove(m)
		if child.IsCheckmate(opponent) {
			// Mate in one cannot be improved on.
			a.logStats("mate-in-one", m, math.Inf(1), start)
			return m, true
		}
		score := a.minimax(child, a.depth-1, alpha, beta, false)
		if i == 0 || score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}
	a.logStats("search", best, bestScore, start)
	return best, true
}

// minimax scores a position for the side to move at this ply. Maximizing
// plies play the agent's color, minimizing plies the opponent's.
func (a *SearchAgent) minimax(b Board, depth int, alpha, beta float64, maximizing bool) float64 {
	a.nodes++
	side := a.color
	if !maximizing {
		side = a.color.Other()
	}
	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		if b.InCheck(side) {
			// Checkmate: decisive for whichever branch delivered it.
			if maximizing {
				return math.Inf(-1)
			}
			return math.Inf(1)
		}
		return 0 // stalemate
	}
	if depth <= 0 {
		return EvaluateBoard(b, a.color, a.config)
	}

	a.shuffle(moves)
	orderMoves(moves)

	if maximizing {
		best := math.Inf(-1)
		for _, m := range moves {
			score := a.minimax(b.ApplyMove(m), depth-1, alpha, beta, false)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, m := range moves {
		score := a.minimax(b.ApplyMove(m), depth-1, alpha, beta, true)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// orderMoves sorts captures to the front, most valuable victim with the
// least valuable mover first. The sort is stable, so ties keep whatever
// order the candidates already have.
func orderMoves(moves []Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return captureKey(moves[i]) > captureKey(moves[j])
	})
}

func captureKey(m Move) int {
	if !m.IsCapture() {
		return 0
	}
	return m.Captured.Kind.Value()*10 - m.Piece.Kind.Value()
}

func (a *SearchAgent) shuffle(moves []Move) {
	if a.rng == nil {
		return
	}
	a.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
}

func (a *SearchAgent) logStats(tag string, move Move, score float64, start time.Time) {
	if !a.config.AiLogSearchStats {
		return
	}
	elapsed := time.Since(start)
	nps := 0.0
	if elapsed > 0 {
		nps = float64(a.nodes) / elapsed.Seconds()
	}
	log.Printf("[ai:%s] color=%s depth=%d move=%s score=%.2f nodes=%d t=%dms nps=%.0f",
		tag, a.color, a.depth, move, score, a.nodes, elapsed.Milliseconds(), nps)
}
