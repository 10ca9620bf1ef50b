package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"collabcast/domain"
)

type testGroupPresenceSuite struct {
	BaseSuite
}

func TestGroupPresenceSuite(t *testing.T) {
	suite.Run(t, &testGroupPresenceSuite{})
}

func (s *testGroupPresenceSuite) TestGroupPresenceFlow() {
	ctx := context.Background()

	// Seed: Alice (5) is a member of group 3 with a stored profile.
	s.Require().NoError(s.Memberships.AddMember(ctx, domain.Membership{
		GroupID: 3, UserID: 5, Role: "member",
	}))
	s.Require().NoError(s.Profiles.StoreProfile(ctx, domain.Profile{
		ID: 5, Name: "Alice", Avatar: "alice.png",
	}))

	// --- STEP 0: HANDSHAKE ---
	s.Run("Step 0: Member handshake returns the presence profile", func() {
		s.StepHeader("Handshake group.3 as Alice")
		resp := s.Handshake(5, "Alice", "group.3")
		defer resp.Body.Close()
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var parsed struct {
			Channel     string          `json:"channel"`
			ChannelData *domain.Profile `json:"channel_data"`
		}
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&parsed))
		s.Require().NotNil(parsed.ChannelData)
		s.Require().Equal("Alice", parsed.ChannelData.Name)
		s.Require().Equal("alice.png", parsed.ChannelData.Avatar)
	})

	s.Run("Step 1: Non-member is refused", func() {
		s.StepHeader("Handshake group.3 as Bob")
		resp := s.Handshake(9, "Bob", "group.3")
		defer resp.Body.Close()
		s.Require().Equal(http.StatusForbidden, resp.StatusCode)
	})

	// --- STEP 2: GROUP MESSAGE DELIVERY ---
	s.Run("Step 2: Group message reaches the presence channel", func() {
		s.WithSubscriber("Alice listens on group.3", 5, "Alice", []string{"group.3"}, func(conn *websocket.Conn) {
			err := s.Notifier.GroupMessageSent(ctx, domain.GroupMessage{
				ID:        202,
				GroupID:   3,
				SenderID:  7,
				Body:      "hello group",
				Sender:    domain.Profile{ID: 7, Name: "Carol"},
				CreatedAt: time.Now(),
			})
			s.Require().NoError(err)

			env := s.NextEnvelope(conn)
			s.Require().Equal("message.new", env.Event)
			s.Require().EqualValues(3, env.Data["group_id"])
			s.Require().Equal("group_3", env.Data["conversation_id"])
			s.Require().Equal("group", env.Data["message_type"])
		})
	})

	// --- STEP 3: GROUP DELETION ---
	s.Run("Step 3: Deletion carries who deleted and where", func() {
		s.WithSubscriber("Alice listens on group.3", 5, "Alice", []string{"group.3"}, func(conn *websocket.Conn) {
			err := s.Notifier.MessageDeleted(ctx, domain.MessageDeletion{
				MessageID: 42,
				Type:      domain.MessageGroup,
				GroupID:   3,
				DeletedBy: 5,
			})
			s.Require().NoError(err)

			env := s.NextEnvelope(conn)
			s.Require().Equal("message.deleted", env.Event)
			s.Require().EqualValues(42, env.Data["message_id"])
			s.Require().Equal("group", env.Data["message_type"])
			s.Require().EqualValues(3, env.Data["group_id"])
			s.Require().EqualValues(5, env.Data["deleted_by"])
			s.Require().NotEmpty(env.Data["deleted_at"])
		})
	})

	// --- STEP 4: MEMBERSHIP REVOCATION ---
	// Membership is checked live: once removed, the next handshake fails.
	s.Run("Step 4: Revoked member is refused on the next handshake", func() {
		s.Require().NoError(s.Memberships.RemoveMember(ctx, 5, 3))

		resp := s.Handshake(5, "Alice", "group.3")
		defer resp.Body.Close()
		s.Require().Equal(http.StatusForbidden, resp.StatusCode)
	})
}
