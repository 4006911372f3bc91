package main

import (
	"math"
	"testing"
)

func TestEvaluateStartIsZero(t *testing.T) {
	b := NewBoard()
	if got := EvaluateBoard(b, ColorWhite, DefaultConfig()); got != 0 {
		t.Fatalf("symmetric start should score 0, got %f", got)
	}
}

func TestEvaluateZeroSum(t *testing.T) {
	b := mustBoard(t, "rq.r/pp../..PP/RQKR")
	config := DefaultConfig()
	white := EvaluateBoard(b, ColorWhite, config)
	black := EvaluateBoard(b, ColorBlack, config)
	if white != -black {
		t.Fatalf("scores must negate under color exchange: white=%f black=%f", white, black)
	}
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	b := mustBoard(t, "rq.r/pp../..PP/RQKR")
	mirrored := mustBoard(t, "rqkr/..pp/PP../RQ.R")
	config := DefaultConfig()
	white := EvaluateBoard(b, ColorWhite, config)
	black := EvaluateBoard(mirrored, ColorBlack, config)
	if white != black {
		t.Fatalf("mirrored position should score identically: %f vs %f", white, black)
	}
}

func TestEvaluateExactTerms(t *testing.T) {
	// Kings plus one white pawn on a center square, nothing threatened.
	// White: 1001 material + 0.5 center + 0.5*23 removed.
	// Black: 1000 material + 0.5*22 removed.
	b := mustBoard(t, "...k/..../.P../K...")
	got := EvaluateBoard(b, ColorWhite, DefaultConfig())
	if want := 2.0; got != want {
		t.Fatalf("eval = %f, want %f", got, want)
	}
}

func TestEvaluateCenterBonus(t *testing.T) {
	center := mustBoard(t, "...k/..../.P../K...")
	edge := mustBoard(t, "...k/..../..../KP..")
	config := DefaultConfig()
	diff := EvaluateBoard(center, ColorWhite, config) - EvaluateBoard(edge, ColorWhite, config)
	if math.Abs(diff-config.Heuristics.CenterBonus) > 1e-9 {
		t.Fatalf("center placement should be worth the center bonus, diff=%f", diff)
	}
}

func TestEvaluateMaterialDominates(t *testing.T) {
	b := mustBoard(t, "kq../..../..../...K")
	if got := EvaluateBoard(b, ColorWhite, DefaultConfig()); got >= 0 {
		t.Fatalf("queen-down position should score negative for white, got %f", got)
	}
}

func TestEvaluateZeroWeightsFallBack(t *testing.T) {
	b := mustBoard(t, "rq.r/pp../..PP/RQKR")
	withDefaults := EvaluateBoard(b, ColorWhite, DefaultConfig())
	withZero := EvaluateBoard(b, ColorWhite, Config{})
	if withDefaults != withZero {
		t.Fatalf("zero-value heuristics should resolve to defaults: %f vs %f", withDefaults, withZero)
	}
}
