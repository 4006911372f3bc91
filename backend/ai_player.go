package main

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// AIPlayer runs the search agent, either synchronously through ChooseMove or
// on a background goroutine so the game loop can poll for the result.
type AIPlayer struct {
	color      Color
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	readyMove  Move
	readyOk    bool
}

func NewAIPlayer(color Color) *AIPlayer {
	return &AIPlayer{color: color}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) ChooseMove(state GameState) (Move, bool) {
	config := GetConfig()
	agent := NewSearchAgent(a.color, config.AiDepth, config)
	if config.AiShuffleMoves {
		seed := config.AiSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		agent.SetRand(rand.New(rand.NewSource(seed)))
	}
	return agent.GetBestMove(state.Board)
}

func (a *AIPlayer) StartThinking(state GameState) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		move, ok := a.ChooseMove(state)
		a.moveMutex.Lock()
		a.readyMove = move
		a.readyOk = ok
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() (Move, bool) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyOk
}
