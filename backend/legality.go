package main

// The legality engine works on raw grids so that the self-check filter can
// probe child positions without constructing fully derived Boards (which
// would recurse back into move generation).

// legalMoves generates the truly legal moves for a color: geometric reach,
// occupancy and path rules, then the self-check filter.
func legalMoves(g Grid, color Color) []Move {
	moves := pseudoLegalMoves(g, color)
	out := moves[:0]
	for _, m := range moves {
		child := g
		child.Set(m.From, Piece{})
		child.Set(m.To, m.Piece)
		if inCheck(child, color) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// pseudoLegalMoves applies geometry and occupancy only. Movers are scanned
// row-major and each mover's destinations follow its displacement template
// order, keeping enumeration deterministic.
func pseudoLegalMoves(g Grid, color Color) []Move {
	var moves []Move
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			from := Square{r, c}
			p := g.At(from)
			if p.IsEmpty() || p.Color != color {
				continue
			}
			for _, d := range displacements(p) {
				to := Square{r + d.dr, c + d.dc}
				if !to.InBounds() {
					continue
				}
				target := g.At(to)
				if !pieceMayLand(g, p, from, to, target) {
					continue
				}
				m := Move{Piece: p, From: from, To: to}
				if !target.IsEmpty() {
					m.Captured = target
				}
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// pieceMayLand enforces occupancy rules for one candidate destination:
// never onto a same-color piece, pawns push onto empty squares and capture
// diagonally, sliders need a clear path.
func pieceMayLand(g Grid, p Piece, from, to Square, target Piece) bool {
	if !target.IsEmpty() && target.Color == p.Color {
		return false
	}
	if p.Kind == KindPawn {
		if from.Col == to.Col {
			return target.IsEmpty()
		}
		return !target.IsEmpty() && target.Color != p.Color
	}
	if p.Kind.SlidesAlongPath() && !pathClear(g, from, to) {
		return false
	}
	return true
}

// pathClear walks the squares strictly between from and to along a rook or
// queen ray and reports whether all of them are empty.
func pathClear(g Grid, from, to Square) bool {
	dr := sign(to.Row - from.Row)
	dc := sign(to.Col - from.Col)
	r, c := from.Row+dr, from.Col+dc
	for r != to.Row || c != to.Col {
		if !g.At(Square{r, c}).IsEmpty() {
			return false
		}
		r += dr
		c += dc
	}
	return true
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// attacks tests raw attack reachability: could the piece on from capture on
// to, ignoring whose king that would expose. Pawns attack only their two
// forward diagonals, never straight ahead.
func attacks(g Grid, from, to Square) bool {
	p := g.At(from)
	if p.IsEmpty() {
		return false
	}
	dr := to.Row - from.Row
	dc := to.Col - from.Col
	if p.Kind == KindPawn {
		return dr == pawnForward(p.Color) && (dc == 1 || dc == -1)
	}
	reachable := false
	for _, d := range displacements(p) {
		if d.dr == dr && d.dc == dc {
			reachable = true
			break
		}
	}
	if !reachable {
		return false
	}
	if p.Kind.SlidesAlongPath() {
		return pathClear(g, from, to)
	}
	return true
}

func kingSquare(g Grid, color Color) (Square, bool) {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			p := g.At(Square{r, c})
			if p.Kind == KindKing && p.Color == color {
				return Square{r, c}, true
			}
		}
	}
	return Square{}, false
}

// inCheck reports whether any opposing piece attacks color's king square.
// A grid without that king is tolerated and reported as not in check.
func inCheck(g Grid, color Color) bool {
	king, ok := kingSquare(g, color)
	if !ok {
		return false
	}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			from := Square{r, c}
			p := g.At(from)
			if p.IsEmpty() || p.Color == color {
				continue
			}
			if attacks(g, from, king) {
				return true
			}
		}
	}
	return false
}
