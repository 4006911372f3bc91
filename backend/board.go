package main

import "fmt"

const BoardSize = 4

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Col >= 0 && s.Row < BoardSize && s.Col < BoardSize
}

// Algebraic renders the square as chess coordinates: columns 'a'..'d' left to
// right, rank numbers counting up from the bottom row (row 0 is rank 4).
func (s Square) Algebraic() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, BoardSize-s.Row)
}

func squareFromAlgebraic(pos string) (Square, error) {
	if len(pos) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", pos)
	}
	col := int(pos[0] - 'a')
	rank := int(pos[1] - '0')
	sq := Square{Row: BoardSize - rank, Col: col}
	if rank < 1 || rank > BoardSize || !sq.InBounds() {
		return Square{}, fmt.Errorf("invalid square %q", pos)
	}
	return sq, nil
}

// Grid is the raw piece placement. It is a fixed-size array, so assignment
// copies the whole placement and boards never share storage.
type Grid [BoardSize * BoardSize]Piece

func (g Grid) At(sq Square) Piece {
	return g[sq.Row*BoardSize+sq.Col]
}

func (g *Grid) Set(sq Square, p Piece) {
	g[sq.Row*BoardSize+sq.Col] = p
}

// StartingGrid is the canonical Silverman setup: Rook-Queen-King-Rook back
// ranks with a full pawn rank in front of each, Black on top.
func StartingGrid() Grid {
	var g Grid
	back := []PieceKind{KindRook, KindQueen, KindKing, KindRook}
	for c := 0; c < BoardSize; c++ {
		g.Set(Square{0, c}, Piece{ColorBlack, back[c]})
		g.Set(Square{1, c}, Piece{ColorBlack, KindPawn})
		g.Set(Square{2, c}, Piece{ColorWhite, KindPawn})
		g.Set(Square{3, c}, Piece{ColorWhite, back[c]})
	}
	return g
}

// Board is an immutable position snapshot. The grid never changes after
// construction and every derived field is computed eagerly, so a Board handed
// to a consumer is always fully formed.
type Board struct {
	grid        Grid
	legal       [2][]Move
	check       [2]bool
	checkmate   [2]bool
	stalemate   [2]bool
	threatened  [2][]Piece
	threatScore [2]int
}

func colorIndex(c Color) int {
	if c == ColorBlack {
		return 1
	}
	return 0
}

func NewBoard() Board {
	return NewBoardFromGrid(StartingGrid())
}

func NewBoardFromGrid(g Grid) Board {
	b := Board{grid: g}
	b.computeDerived()
	return b
}

func (b Board) Size() int {
	return BoardSize
}

func (b Board) At(row, col int) Piece {
	return b.grid.At(Square{row, col})
}

func (b Board) Grid() Grid {
	return b.grid
}

// LegalMoves returns the truly legal moves for a color in deterministic
// order: movers scanned row-major, destinations in template order. The slice
// is a copy; callers may reorder it freely.
func (b Board) LegalMoves(c Color) []Move {
	return append([]Move(nil), b.legal[colorIndex(c)]...)
}

func (b Board) InCheck(c Color) bool {
	return b.check[colorIndex(c)]
}

func (b Board) IsCheckmate(c Color) bool {
	return b.checkmate[colorIndex(c)]
}

func (b Board) IsStalemate(c Color) bool {
	return b.stalemate[colorIndex(c)]
}

// ThreatenedPieces lists the opposing pieces that at least one of c's legal
// moves captures, each counted once.
func (b Board) ThreatenedPieces(c Color) []Piece {
	return append([]Piece(nil), b.threatened[colorIndex(c)]...)
}

// ThreatScore is the summed material value of ThreatenedPieces(c).
func (b Board) ThreatScore(c Color) int {
	return b.threatScore[colorIndex(c)]
}

// ApplyMove clears the source square and places the moved piece on the
// destination, returning a brand-new fully derived Board. The move must come
// from LegalMoves; no legality check is performed here.
func (b Board) ApplyMove(m Move) Board {
	g := b.grid
	g.Set(m.From, Piece{})
	g.Set(m.To, m.Piece)
	return NewBoardFromGrid(g)
}

func (b *Board) computeDerived() {
	for _, color := range []Color{ColorWhite, ColorBlack} {
		i := colorIndex(color)
		b.legal[i] = legalMoves(b.grid, color)
		b.check[i] = inCheck(b.grid, color)
		noMoves := len(b.legal[i]) == 0
		b.checkmate[i] = b.check[i] && noMoves
		b.stalemate[i] = !b.check[i] && noMoves
		b.threatened[i], b.threatScore[i] = threatAccounting(b.legal[i])
	}
}

// threatAccounting collects the distinct capture targets of a legal-move
// list and sums their values.
func threatAccounting(moves []Move) ([]Piece, int) {
	var pieces []Piece
	score := 0
	var seen [BoardSize * BoardSize]bool
	for _, m := range moves {
		idx := m.To.Row*BoardSize + m.To.Col
		if !m.IsCapture() || seen[idx] {
			continue
		}
		seen[idx] = true
		pieces = append(pieces, m.Captured)
		score += m.Captured.Kind.Value()
	}
	return pieces, score
}

func (b Board) String() string {
	return b.Position()
}
