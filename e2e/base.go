// Package e2e runs whole-stack scenarios: badger-backed directories, the
// authorization gate, the supervised publish pipeline, the in-process
// hub and the HTTP/websocket surface, all wired exactly like cmd/server.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"collabcast/auth"
	"collabcast/authz"
	"collabcast/contract"
	"collabcast/domain/event"
	"collabcast/httpapi"
	"collabcast/observability"
	"collabcast/repositories"
	"collabcast/runtime"
	"collabcast/runtime/workers"
	"collabcast/services"
	"collabcast/transport"

	"github.com/dgraph-io/badger/v4"
)

type BaseSuite struct {
	suite.Suite
	Config Config

	DB          *badger.DB
	Memberships repositories.MembershipRepository
	Profiles    repositories.ProfileRepository
	Notifier    services.INotifierService

	tokens *auth.TokenManager
	server *httptest.Server
	cancel context.CancelFunc
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// SetupTest boots a fresh stack: every scenario gets its own store,
// registry and worker pool.
func (s *BaseSuite) SetupTest() {
	log := slog.Default()

	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).
		WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	s.DB = db

	s.Memberships = repositories.NewMembershipRepository(db, log)
	s.Profiles = repositories.NewProfileRepository(db, log)

	registry := runtime.NewRegistry()
	monitoring := observability.NewMonitoringManager(log)
	hub := transport.NewHub(log, registry, time.Second)
	orchestrator := runtime.NewOrchestrator(
		log, workers.NewSupervisor(log), registry,
		[]contract.Transport{hub}, monitoring,
		2, 64, time.Minute, 500*time.Millisecond,
	)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() { _ = orchestrator.Start(ctx) }()

	gate := authz.NewGate(log, s.Memberships, s.Profiles)
	subscriptions := services.NewSubscriptionService(log, gate, monitoring)
	s.Notifier = services.NewNotifierService(orchestrator)
	s.tokens = auth.NewTokenManager([]byte("e2e-signing-key"), time.Hour)

	handler := httpapi.NewHandler(log, subscriptions, s.Notifier, registry, 16)
	s.server = httptest.NewServer(httpapi.NewRouter(log, s.tokens, handler))
}

func (s *BaseSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
	s.Require().NoError(s.DB.Close())
}

// StepHeader prints a colorized banner for a scenario step in logs
func (s *BaseSuite) StepHeader(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Token signs a handshake token the same way the CRUD side would.
func (s *BaseSuite) Token(userID int64, userName string) string {
	token, err := s.tokens.Generate(userID, userName)
	s.Require().NoError(err)
	return token
}

// Handshake performs POST /broadcasting/auth and returns the response.
func (s *BaseSuite) Handshake(userID int64, userName, channel string) *http.Response {
	body := strings.NewReader(fmt.Sprintf(`{"channel_name":%q,"socket_id":"e2e"}`, channel))
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/broadcasting/auth", body)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+s.Token(userID, userName))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

// WithSubscriber dials the websocket endpoint for the given channels and
// runs fn with the live connection.
func (s *BaseSuite) WithSubscriber(name string, userID int64, userName string,
	channels []string, fn func(conn *websocket.Conn)) {
	s.StepHeader(name)

	query := "channel=" + strings.Join(channels, "&channel=")
	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws?" + query
	header := http.Header{"Authorization": []string{"Bearer " + s.Token(userID, userName)}}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	s.Require().NoError(err, "Failed to open websocket for "+userName)
	defer resp.Body.Close()
	defer conn.Close()

	fn(conn)
}

// NextEnvelope reads one envelope off the websocket, skipping the
// user.status noise emitted by connecting subscribers.
func (s *BaseSuite) NextEnvelope(conn *websocket.Conn) event.Envelope {
	deadline := time.Now().Add(s.Config.WaitTimeout)
	s.Require().NoError(conn.SetReadDeadline(deadline))

	for {
		var env event.Envelope
		err := conn.ReadJSON(&env)
		s.Require().NoError(err, "No envelope received within timeout")

		if s.Config.DebugJSON {
			raw, _ := json.MarshalIndent(env, "", "  ")
			s.T().Logf("ENVELOPE:\n%s", raw)
		}
		if env.Event == "user.status" {
			continue
		}
		return env
	}
}
