package main

import "testing"

func TestSettingsDTORoundTrip(t *testing.T) {
	cases := []struct {
		dto   GameSettingsDTO
		white PlayerType
		black PlayerType
	}{
		{GameSettingsDTO{Mode: "human_vs_ai", HumanColor: "white"}, PlayerHuman, PlayerAI},
		{GameSettingsDTO{Mode: "human_vs_ai", HumanColor: "black"}, PlayerAI, PlayerHuman},
		{GameSettingsDTO{Mode: "ai_vs_ai"}, PlayerAI, PlayerAI},
		{GameSettingsDTO{Mode: "human_vs_human"}, PlayerHuman, PlayerHuman},
	}
	for _, tc := range cases {
		settings := settingsFromDTO(tc.dto, DefaultGameSettings())
		if settings.WhiteType != tc.white || settings.BlackType != tc.black {
			t.Errorf("%+v mapped to white=%v black=%v", tc.dto, settings.WhiteType, settings.BlackType)
		}
		back := settingsToDTO(settings)
		if back.Mode != tc.dto.Mode {
			t.Errorf("mode round trip %q -> %q", tc.dto.Mode, back.Mode)
		}
	}
}

func TestSettingsDTOCarriesStartPosition(t *testing.T) {
	dto := GameSettingsDTO{Mode: "human_vs_human", StartPosition: "k.../..../..K./.Q.r"}
	settings := settingsFromDTO(dto, DefaultGameSettings())
	if settings.StartPosition != dto.StartPosition {
		t.Fatalf("start position dropped: %+v", settings)
	}
}

func TestMoveToDTO(t *testing.T) {
	m := Move{
		Piece:    Piece{ColorWhite, KindQueen},
		From:     Square{3, 1},
		To:       Square{1, 1},
		Captured: Piece{ColorBlack, KindRook},
	}
	dto := moveToDTO(m, true)
	if dto.Piece != "Q" || dto.From != "b1" || dto.To != "b3" {
		t.Fatalf("unexpected move DTO %+v", dto)
	}
	if dto.Captured != "r" || !dto.GivesCheck {
		t.Fatalf("capture fields wrong: %+v", dto)
	}
	quiet := moveToDTO(Move{Piece: Piece{ColorBlack, KindKing}, From: Square{0, 2}, To: Square{1, 2}}, false)
	if quiet.Captured != "" || quiet.GivesCheck {
		t.Fatalf("quiet move should have empty capture fields: %+v", quiet)
	}
}

func TestStatusStrings(t *testing.T) {
	if got := statusToString(StatusNotStarted); got != "not_started" {
		t.Errorf("statusToString(NotStarted) = %q", got)
	}
	if got := statusToString(StatusDraw); got != "draw" {
		t.Errorf("statusToString(Draw) = %q", got)
	}
	if got := winnerFromStatus(StatusBlackWon); got != "black" {
		t.Errorf("winnerFromStatus(BlackWon) = %q", got)
	}
	if got := winnerFromStatus(StatusRunning); got != "" {
		t.Errorf("running game has winner %q", got)
	}
}

func TestColorFromString(t *testing.T) {
	if c, err := colorFromString("white"); err != nil || c != ColorWhite {
		t.Errorf("white mapping broken: %v %v", c, err)
	}
	if c, err := colorFromString("black"); err != nil || c != ColorBlack {
		t.Errorf("black mapping broken: %v %v", c, err)
	}
	if _, err := colorFromString("green"); err == nil {
		t.Error("unknown color should fail")
	}
}

func TestControllerStatusShape(t *testing.T) {
	gc := NewGameController(humanVsHuman(""))
	gc.StartGame(humanVsHuman(""))
	status := controllerStatus(gc)
	if status.BoardSize != BoardSize {
		t.Errorf("board size = %d", status.BoardSize)
	}
	if status.Position != "rqkr/pppp/PPPP/RQKR" {
		t.Errorf("position = %q", status.Position)
	}
	if status.NextPlayer != "white" || status.Status != "running" {
		t.Errorf("turn fields wrong: %+v", status)
	}
	if status.Check["white"] || status.Check["black"] {
		t.Error("no side is in check at the start")
	}
}
