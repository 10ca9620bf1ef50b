// Package httpapi exposes the subscription surface of the notification
// core: the channel authorization handshake and the websocket delivery
// endpoint. Domain actions (sending, deleting) are not routed here; the
// CRUD layer calls services.NotifierService directly.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"collabcast/auth"
	"collabcast/contract"
	"collabcast/services"
)

type Handler struct {
	log           *slog.Logger
	subscriptions services.ISubscriptionService
	notifier      services.INotifierService
	registry      contract.IRegistry
	sinkBuffer    int
}

func NewHandler(log *slog.Logger, subscriptions services.ISubscriptionService,
	notifier services.INotifierService, registry contract.IRegistry, sinkBuffer int) *Handler {
	return &Handler{
		log:           log,
		subscriptions: subscriptions,
		notifier:      notifier,
		registry:      registry,
		sinkBuffer:    sinkBuffer,
	}
}

// NewRouter wires the public endpoints and the token-protected
// subscription surface.
func NewRouter(log *slog.Logger, tokens *auth.TokenManager, h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens))

		r.Post("/broadcasting/auth", h.BroadcastingAuth)
		r.Get("/ws", h.Websocket)
		r.Get("/channels/{channel}/roster", h.Roster)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
