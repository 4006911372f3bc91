package main

import "fmt"

type Color int8

const (
	ColorNone Color = iota
	ColorWhite
	ColorBlack
)

func (c Color) Other() Color {
	switch c {
	case ColorWhite:
		return ColorBlack
	case ColorBlack:
		return ColorWhite
	default:
		return ColorNone
	}
}

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "None"
	}
}

type PieceKind int8

const (
	KindEmpty PieceKind = iota
	KindPawn
	KindRook
	KindQueen
	KindKing
)

// Value returns the material value used by the evaluator. The king value is
// large enough that no combination of the other pieces can outweigh it.
func (k PieceKind) Value() int {
	switch k {
	case KindPawn:
		return 1
	case KindRook:
		return 5
	case KindQueen:
		return 9
	case KindKing:
		return 1000
	default:
		return 0
	}
}

// SlidesAlongPath reports whether the kind needs a clear path between source
// and destination (rook and queen rays).
func (k PieceKind) SlidesAlongPath() bool {
	return k == KindRook || k == KindQueen
}

func (k PieceKind) String() string {
	switch k {
	case KindPawn:
		return "Pawn"
	case KindRook:
		return "Rook"
	case KindQueen:
		return "Queen"
	case KindKing:
		return "King"
	default:
		return "Empty"
	}
}

// Piece is an immutable (color, kind) pair. The zero value is the empty square.
type Piece struct {
	Color Color
	Kind  PieceKind
}

func (p Piece) IsEmpty() bool {
	return p.Kind == KindEmpty
}

// Letter returns the position-string letter: uppercase for White, lowercase
// for Black, '.' for an empty square.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	var ch byte
	switch p.Kind {
	case KindPawn:
		ch = 'P'
	case KindRook:
		ch = 'R'
	case KindQueen:
		ch = 'Q'
	case KindKing:
		ch = 'K'
	}
	if p.Color == ColorBlack {
		ch += 'a' - 'A'
	}
	return ch
}

func pieceFromLetter(ch byte) (Piece, error) {
	if ch == '.' {
		return Piece{}, nil
	}
	color := ColorWhite
	upper := ch
	if ch >= 'a' && ch <= 'z' {
		color = ColorBlack
		upper = ch - ('a' - 'A')
	}
	var kind PieceKind
	switch upper {
	case 'P':
		kind = KindPawn
	case 'R':
		kind = KindRook
	case 'Q':
		kind = KindQueen
	case 'K':
		kind = KindKing
	default:
		return Piece{}, fmt.Errorf("unknown piece letter %q", string(ch))
	}
	return Piece{Color: color, Kind: kind}, nil
}

type delta struct {
	dr, dc int
}

var kingSteps = []delta{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var rookDirections = []delta{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

var queenDirections = []delta{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, -1}, {1, -1}, {-1, 1},
}

var (
	rookTemplate  = rayTemplate(rookDirections)
	queenTemplate = rayTemplate(queenDirections)

	// White sits on the bottom ranks and pushes toward row 0.
	whitePawnTemplate = []delta{{-1, 0}, {-1, -1}, {-1, 1}}
	blackPawnTemplate = []delta{{1, 0}, {1, -1}, {1, 1}}
)

// rayTemplate expands sliding directions into concrete displacements, each
// direction walked out to the board edge, preserving direction order.
func rayTemplate(directions []delta) []delta {
	out := make([]delta, 0, len(directions)*(BoardSize-1))
	for _, d := range directions {
		for step := 1; step < BoardSize; step++ {
			out = append(out, delta{d.dr * step, d.dc * step})
		}
	}
	return out
}

// displacements returns the geometric movement template of a piece, in the
// fixed order the legality engine enumerates destinations.
func displacements(p Piece) []delta {
	switch p.Kind {
	case KindPawn:
		if p.Color == ColorWhite {
			return whitePawnTemplate
		}
		return blackPawnTemplate
	case KindRook:
		return rookTemplate
	case KindQueen:
		return queenTemplate
	case KindKing:
		return kingSteps
	default:
		return nil
	}
}

func pawnForward(c Color) int {
	if c == ColorWhite {
		return -1
	}
	return 1
}
