package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTournamentRoomNaming(t *testing.T) {
	assert.Equal(t, "tournament_7", TournamentRoom(7))
	assert.NotEqual(t, TournamentRoom(1), TournamentRoom(2))
}

func TestBroadcastReachesTournamentRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		Hub:  hub,
		Send: make(chan []byte, 1),
		Room: TournamentRoom(7),
	}
	hub.Register <- client

	message := WebSocketMessage{
		Type:    EventRankingUpdated,
		Payload: []string{"Anna", "Ben"},
		RoomID:  TournamentRoom(7),
	}

	// Registration completes asynchronously in the hub loop; retry the
	// broadcast until the client sees it.
	deadline := time.After(time.Second)
	for {
		hub.BroadcastToRoom(TournamentRoom(7), message)
		select {
		case raw := <-client.Send:
			assert.Contains(t, string(raw), EventRankingUpdated)
			assert.Contains(t, string(raw), "Anna")
			return
		case <-deadline:
			t.Fatal("broadcast never reached the room")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestBroadcastToOtherRoomIsNotDelivered(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		Hub:  hub,
		Send: make(chan []byte, 1),
		Room: TournamentRoom(1),
	}
	hub.Register <- client

	hub.BroadcastToRoom(TournamentRoom(2), WebSocketMessage{Type: EventDraftUpdated})

	select {
	case raw := <-client.Send:
		t.Fatalf("unexpected message for another room: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}
