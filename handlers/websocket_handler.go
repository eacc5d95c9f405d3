package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fastfour/schleifchen-system/engine"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the deployed frontend origin.
		return true
	},
}

type WebSocketHandler struct {
	hub *engine.Hub
}

func NewWebSocketHandler(hub *engine.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes the caller to live updates for one tournament.
// Clients connect to /ws/tournaments/{tournamentID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		http.Error(w, "invalid tournamentID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		slog.Warn("websocket upgrade failed",
			slog.Int("tournament", id), slog.Any("error", err))
		return
	}

	client := &engine.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: engine.TournamentRoom(id),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
