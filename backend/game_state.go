package main

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusWhiteWon
	StatusBlackWon
	StatusDraw
)

// GameState bundles the current position with the turn bookkeeping the
// service layer exposes. The Board itself is an immutable snapshot, so
// copying a GameState by value is a full clone.
type GameState struct {
	Board       Board
	ToMove      Color
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	LastMessage string
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard()
	if settings.StartPosition != "" {
		if board, err := NewBoardFromPosition(settings.StartPosition); err == nil {
			s.Board = board
		}
	}
	s.ToMove = ColorWhite
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = Move{}
	s.LastMessage = ""
}
