package main

// startingMaterial is the total value each side begins with:
// king + queen + two rooks + four pawns.
const startingMaterial = 1000 + 9 + 2*5 + 4*1

// centerSquares are the four centermost squares of the 4x4 board.
var centerSquares = []Square{{1, 1}, {1, 2}, {2, 1}, {2, 2}}

// EvaluateBoard scores a position from agent's perspective as
// (agent terms) - (opponent terms), which makes the score negate exactly
// under a color exchange. Terms per side: material on the board, center
// occupancy, opponent material already removed, and the value of opposing
// pieces currently threatened.
func EvaluateBoard(b Board, agent Color, config Config) float64 {
	w := resolveHeuristics(config)
	return sideTerms(b, agent, w) - sideTerms(b, agent.Other(), w)
}

func sideTerms(b Board, c Color, w HeuristicConfig) float64 {
	material := materialOf(b, c)
	removed := startingMaterial - materialOf(b, c.Other())
	center := 0
	for _, sq := range centerSquares {
		p := b.Grid().At(sq)
		if !p.IsEmpty() && p.Color == c {
			center++
		}
	}
	return float64(material) +
		w.CenterBonus*float64(center) +
		w.RemovedBonus*float64(removed) +
		w.ThreatBonus*float64(b.ThreatScore(c))
}

func materialOf(b Board, c Color) int {
	total := 0
	for r := 0; r < BoardSize; r++ {
		for col := 0; col < BoardSize; col++ {
			p := b.At(r, col)
			if !p.IsEmpty() && p.Color == c {
				total += p.Kind.Value()
			}
		}
	}
	return total
}

func resolveHeuristics(config Config) HeuristicConfig {
	if config.Heuristics == (HeuristicConfig{}) {
		return DefaultConfig().Heuristics
	}
	return config.Heuristics
}
