package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Position        string            `json:"position"`
	NextPlayer      string            `json:"next_player"`
	Winner          string            `json:"winner"`
	BoardSize       int               `json:"board_size"`
	Status          string            `json:"status"`
	Check           map[string]bool   `json:"check"`
	AiThinking      bool              `json:"ai_thinking"`
	History         []historyEntryDTO `json:"history"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode          string `json:"mode"`
	HumanColor    string `json:"human_color"`
	StartPosition string `json:"start_position"`
}

type apiMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type moveDTO struct {
	Piece      string `json:"piece"`
	From       string `json:"from"`
	To         string `json:"to"`
	Captured   string `json:"captured,omitempty"`
	GivesCheck bool   `json:"gives_check,omitempty"`
}

type historyEntryDTO struct {
	moveDTO
	Player    string  `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
}

type analyzeRequest struct {
	Position string `json:"position"`
	Color    string `json:"color"`
	Depth    int    `json:"depth"`
}

type analyzeResponse struct {
	Found     bool    `json:"found"`
	Move      moveDTO `json:"move"`
	Checkmate bool    `json:"checkmate"`
	Stalemate bool    `json:"stalemate"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

func main() {
	config := GetConfig()
	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		if settings.StartPosition != "" {
			if _, err := ParseGrid(settings.StartPosition); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
		}
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			controller.UpdateSettings(settingsFromDTO(*payload.Settings, controller.Settings()))
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		from, err := squareFromAlgebraic(payload.From)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		to, err := squareFromAlgebraic(payload.To)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(Move{From: from, To: to})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/legal-moves", func(w http.ResponseWriter, r *http.Request) {
		state := controller.State()
		moves := state.Board.LegalMoves(state.ToMove)
		if raw := r.URL.Query().Get("from"); raw != "" {
			from, err := squareFromAlgebraic(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			filtered := moves[:0]
			for _, m := range moves {
				if m.From == from {
					filtered = append(filtered, m)
				}
			}
			moves = filtered
		}
		out := make([]moveDTO, 0, len(moves))
		for _, m := range moves {
			out = append(out, moveToDTO(m, false))
		}
		writeJSON(w, http.StatusOK, map[string]any{"moves": out})
	})

	r.Post("/api/position", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Position string `json:"position"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if err := controller.ImportPosition(payload.Position); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		var payload analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		writeAnalysis(w, payload)
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	server := &http.Server{
		Addr:    config.Addr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[backend] listening on %s", config.Addr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}

	cancel()
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
	}
}

// writeAnalysis runs a one-off search on an arbitrary position. Used by the
// tactics benchmark and by clients that want a hint.
func writeAnalysis(w http.ResponseWriter, payload analyzeRequest) {
	board, err := NewBoardFromPosition(payload.Position)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	color, err := colorFromString(payload.Color)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	config := GetConfig()
	depth := payload.Depth
	if depth <= 0 {
		depth = config.AiDepth
	}
	start := time.Now()
	agent := NewSearchAgent(color, depth, config)
	move, found := agent.GetBestMove(board)
	resp := analyzeResponse{
		Found:     found,
		Checkmate: board.IsCheckmate(color),
		Stalemate: board.IsStalemate(color),
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	if found {
		resp.Move = moveToDTO(move, board.ApplyMove(move).InCheck(color.Other()))
	}
	writeJSON(w, http.StatusOK, resp)
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:   settingsToDTO(controller.Settings()),
		Config:     GetConfig(),
		Position:   state.Board.Position(),
		NextPlayer: colorToString(state.ToMove),
		Winner:     winnerFromStatus(state.Status),
		BoardSize:  state.Board.Size(),
		Status:     statusToString(state.Status),
		Check: map[string]bool{
			"white": state.Board.InCheck(ColorWhite),
			"black": state.Board.InCheck(ColorBlack),
		},
		AiThinking:      controller.AiThinking(),
		History:         historyToDTO(controller.History()),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.WhiteType = PlayerAI
		settings.BlackType = PlayerAI
	case "human_vs_human":
		settings.WhiteType = PlayerHuman
		settings.BlackType = PlayerHuman
	case "human_vs_ai":
		if dto.HumanColor == "black" {
			settings.WhiteType = PlayerAI
			settings.BlackType = PlayerHuman
		} else {
			settings.WhiteType = PlayerHuman
			settings.BlackType = PlayerAI
		}
	}
	settings.StartPosition = dto.StartPosition
	return settings
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	mode := "human_vs_ai"
	humanColor := ""
	switch {
	case settings.WhiteType == PlayerAI && settings.BlackType == PlayerAI:
		mode = "ai_vs_ai"
	case settings.WhiteType == PlayerHuman && settings.BlackType == PlayerHuman:
		mode = "human_vs_human"
	case settings.WhiteType == PlayerHuman:
		humanColor = "white"
	default:
		humanColor = "black"
	}
	return GameSettingsDTO{Mode: mode, HumanColor: humanColor, StartPosition: settings.StartPosition}
}

func colorToString(c Color) string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return ""
	}
}

func colorFromString(s string) (Color, error) {
	switch s {
	case "white":
		return ColorWhite, nil
	case "black":
		return ColorBlack, nil
	default:
		return ColorNone, errors.New("color must be \"white\" or \"black\"")
	}
}

func winnerFromStatus(status GameStatus) string {
	switch status {
	case StatusWhiteWon:
		return "white"
	case StatusBlackWon:
		return "black"
	default:
		return ""
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusWhiteWon:
		return "white_won"
	case StatusBlackWon:
		return "black_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func moveToDTO(m Move, givesCheck bool) moveDTO {
	dto := moveDTO{
		Piece:      string(m.Piece.Letter()),
		From:       m.From.Algebraic(),
		To:         m.To.Algebraic(),
		GivesCheck: givesCheck,
	}
	if m.IsCapture() {
		dto.Captured = string(m.Captured.Letter())
	}
	return dto
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		moveDTO:   moveToDTO(entry.Move, entry.GivesCheck),
		Player:    colorToString(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		Position:        state.Board.Position(),
		NextPlayer:      colorToString(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		BoardSize:       state.Board.Size(),
		History:         historyToDTO(controller.History()),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
