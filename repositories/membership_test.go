package repositories

import (
	"context"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"collabcast/domain"
)

func Test_Membership_Roundtrip(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewMembershipRepository(db, slog.Default())
	ctx := context.Background()

	member, err := repository.IsMember(ctx, 5, 7)
	req.NoError(err)
	req.False(member)

	req.NoError(repository.AddMember(ctx, domain.Membership{GroupID: 7, UserID: 5, Role: "admin"}))

	member, err = repository.IsMember(ctx, 5, 7)
	req.NoError(err)
	req.True(member)

	// Membership in one group says nothing about another
	member, err = repository.IsMember(ctx, 5, 8)
	req.NoError(err)
	req.False(member)
}

func Test_Removing_Member_Flips_Lookup(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewMembershipRepository(db, slog.Default())
	ctx := context.Background()

	req.NoError(repository.AddMember(ctx, domain.Membership{GroupID: 7, UserID: 5, Role: "member"}))
	member, err := repository.IsMember(ctx, 5, 7)
	req.NoError(err)
	req.True(member)

	req.NoError(repository.RemoveMember(ctx, 5, 7))
	member, err = repository.IsMember(ctx, 5, 7)
	req.NoError(err)
	req.False(member)
}

func Test_ListMembers_Scans_One_Group_Only(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewMembershipRepository(db, slog.Default())
	ctx := context.Background()

	memberships := []domain.Membership{
		{GroupID: 7, UserID: 5, Role: "admin"},
		{GroupID: 7, UserID: 9, Role: "member"},
		{GroupID: 8, UserID: 5, Role: "member"},
	}
	for _, m := range memberships {
		req.NoError(repository.AddMember(ctx, m))
	}

	members, err := repository.ListMembers(ctx, 7)
	req.NoError(err)
	req.Len(members, 2)
	for _, m := range members {
		req.Equal(domain.GroupID(7), m.GroupID)
	}
}
