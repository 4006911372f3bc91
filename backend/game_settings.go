package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	WhiteType     PlayerType `json:"-"`
	BlackType     PlayerType `json:"-"`
	StartPosition string     `json:"start_position"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		WhiteType:     PlayerHuman,
		BlackType:     PlayerAI,
		StartPosition: "",
	}
}
