package main

import "testing"

func movesFrom(b Board, color Color, from Square) []Move {
	var out []Move
	for _, m := range b.LegalMoves(color) {
		if m.From == from {
			out = append(out, m)
		}
	}
	return out
}

func TestPawnPushBlocked(t *testing.T) {
	b := mustBoard(t, "...k/.p../.P../K...")
	if got := movesFrom(b, ColorWhite, Square{2, 1}); len(got) != 0 {
		t.Fatalf("blocked pawn should have no moves, got %v", got)
	}
}

func TestPawnCapturesDiagonallyOnly(t *testing.T) {
	b := mustBoard(t, "...k/.pp./.P../K...")
	got := movesFrom(b, ColorWhite, Square{2, 1})
	if len(got) != 1 {
		t.Fatalf("pawn should have exactly the diagonal capture, got %v", got)
	}
	m := got[0]
	if m.To != (Square{1, 2}) || !m.IsCapture() || m.Captured.Kind != KindPawn {
		t.Fatalf("unexpected pawn move %v", m)
	}
}

func TestPawnDoesNotAttackStraightAhead(t *testing.T) {
	// White king directly in front of a black pawn: not check.
	b := mustBoard(t, "k.../.p../.K../....")
	if b.InCheck(ColorWhite) {
		t.Fatal("pawn must not give check straight ahead")
	}
	// On the forward diagonal it does.
	b = mustBoard(t, "k.../.p../K.../....")
	if !b.InCheck(ColorWhite) {
		t.Fatal("pawn should give check on the forward diagonal")
	}
}

func TestRookBlockedByOwnPiece(t *testing.T) {
	b := mustBoard(t, "k.../K.../...P/...R")
	got := movesFrom(b, ColorWhite, Square{3, 3})
	if len(got) != 3 {
		t.Fatalf("rook should have 3 moves along the back rank, got %v", got)
	}
	for _, m := range got {
		if m.To.Row != 3 {
			t.Fatalf("rook slid through its own pawn: %v", m)
		}
	}
}

func TestPinnedRookStaysOnFile(t *testing.T) {
	// The rook shields its king from the queen on the b-file. Leaving the
	// file would expose the king, so only file moves survive the filter.
	b := mustBoard(t, ".q.k/..../.R../.K..")
	got := movesFrom(b, ColorWhite, Square{2, 1})
	if len(got) != 2 {
		t.Fatalf("pinned rook should have 2 moves, got %v", got)
	}
	for _, m := range got {
		if m.To.Col != 1 {
			t.Fatalf("pinned rook left the file: %v", m)
		}
	}
}

func TestKingCannotMoveIntoAttack(t *testing.T) {
	b := mustBoard(t, ".r.k/..../..../K...")
	got := movesFrom(b, ColorWhite, Square{3, 0})
	if len(got) != 1 || got[0].To != (Square{2, 0}) {
		t.Fatalf("king should only have a2, got %v", got)
	}
}

func TestQueenCoversRaysAndDiagonals(t *testing.T) {
	b := mustBoard(t, "k.../..../.Q../...K")
	got := movesFrom(b, ColorWhite, Square{2, 1})
	seen := map[Square]bool{}
	for _, m := range got {
		seen[m.To] = true
	}
	for _, sq := range []Square{{3, 1}, {1, 1}, {0, 1}, {2, 0}, {2, 2}, {2, 3}, {1, 0}, {1, 2}, {0, 3}} {
		if !seen[sq] {
			t.Errorf("queen move to (%d,%d) missing", sq.Row, sq.Col)
		}
	}
}

func TestCaptureRecordsVictim(t *testing.T) {
	b := mustBoard(t, "k.../..../r.../R..K")
	got := movesFrom(b, ColorWhite, Square{3, 0})
	var capture *Move
	for i := range got {
		if got[i].IsCapture() {
			capture = &got[i]
		}
	}
	if capture == nil {
		t.Fatalf("expected a rook capture, got %v", got)
	}
	if capture.Captured != (Piece{ColorBlack, KindRook}) || capture.To != (Square{2, 0}) {
		t.Fatalf("unexpected capture %v", *capture)
	}
}
