package main

import (
	"fmt"
	"strings"
)

// Position strings describe a grid one row per segment, top row first:
// '.' for empty squares, uppercase letters for White, lowercase for Black
// (K, Q, R, P). The canonical start is "rqkr/pppp/PPPP/RQKR".

// ParseGrid decodes a position string into a grid.
func ParseGrid(position string) (Grid, error) {
	var g Grid
	rows := strings.Split(strings.TrimSpace(position), "/")
	if len(rows) != BoardSize {
		return Grid{}, fmt.Errorf("position needs %d rows, got %d", BoardSize, len(rows))
	}
	for r, row := range rows {
		if len(row) != BoardSize {
			return Grid{}, fmt.Errorf("row %d needs %d squares, got %d", r, BoardSize, len(row))
		}
		for c := 0; c < BoardSize; c++ {
			p, err := pieceFromLetter(row[c])
			if err != nil {
				return Grid{}, fmt.Errorf("row %d: %w", r, err)
			}
			g.Set(Square{r, c}, p)
		}
	}
	return g, nil
}

// NewBoardFromPosition builds a fully derived Board from a position string.
func NewBoardFromPosition(position string) (Board, error) {
	g, err := ParseGrid(position)
	if err != nil {
		return Board{}, err
	}
	return NewBoardFromGrid(g), nil
}

// Position encodes the board back into the row-separated string format.
func (b Board) Position() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < BoardSize; c++ {
			sb.WriteByte(b.At(r, c).Letter())
		}
	}
	return sb.String()
}
