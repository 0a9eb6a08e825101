package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/celadonapp/celadon-backend/internal/services"
)

// feedUpgrader is the shared upgrader for journal feed WebSocket connections.
var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// FeedClientMessage represents messages coming from the frontend over WebSocket.
type FeedClientMessage struct {
	Type string `json:"type"` // "location_input", "ping"
	Text string `json:"text,omitempty"`
}

// FeedWebSocket streams freshly saved journal entries to the client and
// accepts location typing, which is debounced server-side before asking
// the analysis backend for suggestions. Authentication uses the existing
// session token (Authorization: Bearer <token>).
func FeedWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		// Fallback: allow token via query parameter for browser WebSocket clients
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}

	userID, ok := services.ValidateSession(token)
	if !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}
	if _, exists := state.UserByID(userID); !exists {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	eventsCh, unsubscribe := services.FeedSubscribe(userID)
	defer unsubscribe()

	// Single writer goroutine. gorilla/websocket permits at most one
	// concurrent writer per connection, so the feed events, the debounced
	// suggestion results and the pong replies all funnel through here.
	writes := make(chan services.FeedEvent, 32)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			select {
			case evt, open := <-eventsCh:
				if !open {
					return
				}
				if err := conn.WriteJSON(evt); err != nil {
					return
				}
			case evt := <-writes:
				if err := conn.WriteJSON(evt); err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	// send queues an event for the writer. A dead or backed-up writer
	// drops the event rather than blocking the caller.
	send := func(evt services.FeedEvent) {
		select {
		case writes <- evt:
		default:
		}
	}

	suggester := services.NewLocationSuggester(analyzer, services.SuggestDebounce)
	defer suggester.Stop()

	deliver := func(input string, suggestions []string) {
		send(services.FeedEvent{
			Type:        services.FeedEventSuggestions,
			Input:       input,
			Suggestions: suggestions,
			Timestamp:   time.Now().UTC(),
		})
	}

	// Reader loop: handle client messages.
	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		var msg FeedClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "location_input":
			suggester.Input(msg.Text, deliver)
		case "ping":
			send(services.FeedEvent{Type: services.FeedEventPong, Timestamp: time.Now().UTC()})
		default:
			// Ignore unknown types
		}
	}
}
