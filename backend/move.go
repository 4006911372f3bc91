package main

import "fmt"

// Move is a transient value produced by the legality engine. Captured holds
// the piece standing on the destination square, or the zero Piece for a
// quiet move.
type Move struct {
	Piece    Piece
	From     Square
	To       Square
	Captured Piece
}

func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

func (m Move) String() string {
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	return fmt.Sprintf("%c%s%s%s", m.Piece.Letter(), m.From.Algebraic(), sep, m.To.Algebraic())
}
