package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"collabcast/auth"
	"collabcast/domain"
)

type broadcastingAuthRequest struct {
	ChannelName string `json:"channel_name"`
	SocketID    string `json:"socket_id"`
}

// broadcastingAuthResponse mirrors the handshake contract the browser
// client expects: presence channels get the subscriber's profile back
// as channel_data, other channels a bare acknowledgement.
type broadcastingAuthResponse struct {
	Channel     string          `json:"channel"`
	ChannelData *domain.Profile `json:"channel_data,omitempty"`
}

// BroadcastingAuth is the subscription handshake. A denied channel is a
// 403 with no detail: the caller learns nothing about why.
func (h *Handler) BroadcastingAuth(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req broadcastingAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	decision := h.subscriptions.Authorize(r.Context(), user, req.ChannelName)
	if !decision.Allowed {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, broadcastingAuthResponse{
		Channel:     req.ChannelName,
		ChannelData: decision.Profile,
	})
}

// Roster lists the profiles currently subscribed to a presence channel.
// Only members of the group may see who is in the room, so the request
// goes through the same gate as a subscription.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	name := chi.URLParam(r, "channel")
	channel, err := domain.ParseChannel(name)
	if err != nil || channel.Kind != domain.ChannelPresence {
		http.Error(w, "unknown presence channel", http.StatusNotFound)
		return
	}

	decision := h.subscriptions.Authorize(r.Context(), user, name)
	if !decision.Allowed {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	roster := h.registry.Roster(channel)
	if roster == nil {
		roster = []domain.Profile{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"channel": name, "users": roster})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
