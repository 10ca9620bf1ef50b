package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"collabcast/auth"
	"collabcast/domain"
	"collabcast/transport"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The handshake already authenticated the caller with a bearer token.
	CheckOrigin: func(*http.Request) bool { return true },
}

const (
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Websocket upgrades the connection and streams envelopes for every
// channel listed in the repeated "channel" query parameter. Each channel
// goes through the gate; a single denied channel fails the whole
// request so the client cannot probe channel by channel.
func (h *Handler) Websocket(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	names := r.URL.Query()["channel"]
	if len(names) == 0 {
		http.Error(w, "at least one channel is required", http.StatusBadRequest)
		return
	}

	channels := make([]domain.Channel, 0, len(names))
	profile := domain.Profile{ID: user.ID, Name: user.Name}
	for _, name := range names {
		decision := h.subscriptions.Authorize(r.Context(), user, name)
		if !decision.Allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if decision.Profile != nil {
			profile = *decision.Profile
		}
		channel, err := domain.ParseChannel(name)
		if err != nil {
			http.Error(w, "unknown channel", http.StatusForbidden)
			return
		}
		channels = append(channels, channel)
	}

	// Register before the upgrade completes so no envelope published
	// right after the 101 response can slip past the subscription.
	subscriberID := uuid.NewString()
	sink := transport.NewChannelSink(h.sinkBuffer)
	for _, channel := range channels {
		h.registry.Subscribe(subscriberID, channel, profile, sink)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		for _, channel := range channels {
			h.registry.Unsubscribe(subscriberID, channel)
		}
		h.log.Warn("Websocket upgrade failed", "user_id", user.ID, "error", err)
		return
	}
	h.log.Info("Subscriber connected", "subscriber_id", subscriberID,
		"user_id", user.ID, "channels", names)

	if err := h.notifier.StatusChanged(r.Context(), user.ID, domain.StatusOnline); err != nil {
		h.log.Warn("Failed to emit online status", "user_id", user.ID, "error", err)
	}

	defer func() {
		for _, channel := range channels {
			h.registry.Unsubscribe(subscriberID, channel)
		}
		_ = conn.Close()
		if err := h.notifier.StatusChanged(r.Context(), user.ID, domain.StatusOffline); err != nil {
			h.log.Warn("Failed to emit offline status", "user_id", user.ID, "error", err)
		}
		h.log.Info("Subscriber disconnected", "subscriber_id", subscriberID, "user_id", user.ID)
	}()

	// Reader goroutine: drain control frames and detect the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case env := <-sink.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(env); err != nil {
				h.log.Debug("Websocket write failed, closing",
					"subscriber_id", subscriberID, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
