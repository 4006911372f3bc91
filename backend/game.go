package main

import (
	"fmt"
	"time"
)

type Game struct {
	settings    GameSettings
	state       GameState
	history     MoveHistory
	whitePlayer IPlayer
	blackPlayer IPlayer
	turnStart   time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove resolves the requested from/to pair against the legal moves
// of the side to move and advances the game. The game status is derived
// from the resulting board's checkmate/stalemate flags.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()

	legal, ok := g.matchLegalMove(move)
	if !ok {
		g.state.LastMessage = fmt.Sprintf("Illegal move: %s to %s", move.From.Algebraic(), move.To.Algebraic())
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())

	mover := g.state.ToMove
	opponent := mover.Other()
	next := g.state.Board.ApplyMove(legal)

	g.state.Board = next
	g.state.LastMove = legal
	g.state.HasLastMove = true

	g.history.Push(HistoryEntry{
		Move:       legal,
		Player:     mover,
		ElapsedMs:  elapsedMs,
		IsAi:       isAiMove,
		GivesCheck: next.InCheck(opponent),
	})

	switch {
	case next.IsCheckmate(opponent):
		if mover == ColorWhite {
			g.state.Status = StatusWhiteWon
		} else {
			g.state.Status = StatusBlackWon
		}
	case next.IsStalemate(opponent):
		g.state.Status = StatusDraw
	default:
		g.state.ToMove = opponent
		g.turnStart = time.Now()
	}
	return true, ""
}

// matchLegalMove finds the legal move with the requested endpoints, so the
// applied move always carries the authoritative piece and capture fields.
func (g *Game) matchLegalMove(move Move) (Move, bool) {
	for _, candidate := range g.state.Board.LegalMoves(g.state.ToMove) {
		if candidate.From == move.From && candidate.To == move.To {
			return candidate, true
		}
	}
	return Move{}, false
}

// Tick advances one step of the play loop: collect a pending human move or
// drive the AI player's background search. Returns true when a move was
// applied.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingMove() {
			applied, _ := g.TryApplyMove(human.TakePendingMove())
			return applied
		}
		return false
	}
	ai, ok := player.(*AIPlayer)
	if !ok {
		move, found := player.ChooseMove(g.state)
		if !found {
			return false
		}
		applied, _ := g.TryApplyMove(move)
		return applied
	}
	if ai.HasMoveReady() {
		move, found := ai.TakeMove()
		if !found {
			// No legal moves for the AI: status flags already decided the game.
			return false
		}
		applied, _ := g.TryApplyMove(move)
		return applied
	}
	if !ai.IsThinking() {
		ai.StartThinking(g.state)
	}
	return false
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color Color) IPlayer {
	if color == ColorWhite {
		return g.whitePlayer
	}
	return g.blackPlayer
}

func (g *Game) createPlayers() {
	if g.settings.WhiteType == PlayerHuman {
		g.whitePlayer = NewHumanPlayer()
	} else {
		g.whitePlayer = NewAIPlayer(ColorWhite)
	}
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer(ColorBlack)
	}
}
