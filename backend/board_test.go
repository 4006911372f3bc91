package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustBoard(t *testing.T, position string) Board {
	t.Helper()
	b, err := NewBoardFromPosition(position)
	if err != nil {
		t.Fatalf("bad position %q: %v", position, err)
	}
	return b
}

func TestStartingPosition(t *testing.T) {
	b := NewBoard()
	if got, want := b.Position(), "rqkr/pppp/PPPP/RQKR"; got != want {
		t.Fatalf("starting position = %q, want %q", got, want)
	}
	for _, color := range []Color{ColorWhite, ColorBlack} {
		if b.InCheck(color) {
			t.Errorf("%s in check at start", color)
		}
		if b.IsCheckmate(color) || b.IsStalemate(color) {
			t.Errorf("%s has terminal flag at start", color)
		}
		if got := len(b.LegalMoves(color)); got != 6 {
			t.Errorf("%s has %d legal moves at start, want 6", color, got)
		}
	}
}

func TestStartingThreatScore(t *testing.T) {
	b := NewBoard()
	// Each side's six opening moves are pawn captures onto the four
	// opposing pawns.
	for _, color := range []Color{ColorWhite, ColorBlack} {
		if got := b.ThreatScore(color); got != 4 {
			t.Errorf("%s threat score = %d, want 4", color, got)
		}
		if got := len(b.ThreatenedPieces(color)); got != 4 {
			t.Errorf("%s threatens %d pieces, want 4", color, got)
		}
	}
}

func TestCheckmatePosition(t *testing.T) {
	// White king cornered by two rooks covering ranks 4 and 3.
	b := mustBoard(t, "K..r/...r/..../...k")
	if !b.InCheck(ColorWhite) {
		t.Fatal("white should be in check")
	}
	if !b.IsCheckmate(ColorWhite) {
		t.Fatal("white should be checkmated")
	}
	if b.IsStalemate(ColorWhite) {
		t.Fatal("checkmate must not double as stalemate")
	}
	if len(b.LegalMoves(ColorWhite)) != 0 {
		t.Fatalf("checkmated side has legal moves: %v", b.LegalMoves(ColorWhite))
	}
	if b.InCheck(ColorBlack) || b.IsCheckmate(ColorBlack) {
		t.Fatal("black should be unaffected")
	}
}

func TestStalematePosition(t *testing.T) {
	// White king not attacked, but every escape square is covered.
	b := mustBoard(t, "K.../...r/..../.r.k")
	if b.InCheck(ColorWhite) {
		t.Fatal("white should not be in check")
	}
	if !b.IsStalemate(ColorWhite) {
		t.Fatalf("white should be stalemated, moves: %v", b.LegalMoves(ColorWhite))
	}
	if b.IsCheckmate(ColorWhite) {
		t.Fatal("stalemate must not double as checkmate")
	}
}

func TestKinglessGridTolerated(t *testing.T) {
	b := mustBoard(t, "..../.R../..../....")
	if b.InCheck(ColorWhite) || b.InCheck(ColorBlack) {
		t.Fatal("no king means no check")
	}
	if len(b.LegalMoves(ColorWhite)) == 0 {
		t.Fatal("lone rook should still have moves")
	}
}

func TestApplyMoveLeavesOriginalIntact(t *testing.T) {
	b := NewBoard()
	before := b.Position()
	moves := b.LegalMoves(ColorWhite)
	next := b.ApplyMove(moves[0])
	if b.Position() != before {
		t.Fatalf("original board changed: %q -> %q", before, b.Position())
	}
	if next.Position() == before {
		t.Fatal("applied move produced an identical position")
	}
}

func TestLegalMovesDeterministic(t *testing.T) {
	first := NewBoard().LegalMoves(ColorWhite)
	second := NewBoard().LegalMoves(ColorWhite)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("legal move order not deterministic (-first +second):\n%s", diff)
	}
}

func TestLegalMovesReturnsCopy(t *testing.T) {
	b := NewBoard()
	moves := b.LegalMoves(ColorWhite)
	moves[0] = Move{}
	if diff := cmp.Diff(NewBoard().LegalMoves(ColorWhite), b.LegalMoves(ColorWhite)); diff != "" {
		t.Fatalf("caller mutation leaked into the board:\n%s", diff)
	}
}

func TestSquareAlgebraic(t *testing.T) {
	cases := []struct {
		sq   Square
		want string
	}{
		{Square{0, 0}, "a4"},
		{Square{3, 0}, "a1"},
		{Square{0, 3}, "d4"},
		{Square{3, 3}, "d1"},
		{Square{2, 1}, "b2"},
	}
	for _, tc := range cases {
		if got := tc.sq.Algebraic(); got != tc.want {
			t.Errorf("(%d,%d).Algebraic() = %q, want %q", tc.sq.Row, tc.sq.Col, got, tc.want)
		}
		back, err := squareFromAlgebraic(tc.want)
		if err != nil {
			t.Errorf("squareFromAlgebraic(%q): %v", tc.want, err)
		} else if back != tc.sq {
			t.Errorf("squareFromAlgebraic(%q) = %+v, want %+v", tc.want, back, tc.sq)
		}
	}
	for _, bad := range []string{"", "a", "e1", "a5", "a0", "11"} {
		if _, err := squareFromAlgebraic(bad); err == nil {
			t.Errorf("squareFromAlgebraic(%q) should fail", bad)
		}
	}
}
