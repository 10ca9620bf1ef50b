package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"

	"collabcast/domain"
)

type IMembershipRepository interface {
	IsMember(ctx context.Context, userID int64, groupID domain.GroupID) (bool, error)
	AddMember(ctx context.Context, m domain.Membership) error
	RemoveMember(ctx context.Context, userID int64, groupID domain.GroupID) error
	ListMembers(ctx context.Context, groupID domain.GroupID) ([]domain.Membership, error)
}

// MembershipRepository reads group membership from BadgerDB.
// The authorization gate queries it on every presence subscription; keys
// are written by the CRUD layer (and by tests/tools here).
type MembershipRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMembershipRepository(db *badger.DB, log *slog.Logger) MembershipRepository {
	return MembershipRepository{db: db, log: log}
}

// memberKey is formatted as "member:{group_id}:{user_id}" so a prefix scan
// on "member:{group_id}:" yields the whole roster of one group.
func memberKey(groupID domain.GroupID, userID int64) []byte {
	return []byte(fmt.Sprintf("member:%d:%d", groupID, userID))
}

func memberPrefix(groupID domain.GroupID) []byte {
	return []byte(fmt.Sprintf("member:%d:", groupID))
}

// IsMember answers the live membership question. A missing key is a plain
// "not a member", not an error; everything else propagates so the caller
// can log and deny.
func (r MembershipRepository) IsMember(_ context.Context, userID int64, groupID domain.GroupID) (bool, error) {
	member := false
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(memberKey(groupID, userID))
		switch err {
		case nil:
			member = true
			return nil
		case badger.ErrKeyNotFound:
			return nil
		default:
			return err
		}
	})
	return member, err
}

func (r MembershipRepository) AddMember(_ context.Context, m domain.Membership) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(memberKey(m.GroupID, m.UserID), []byte(m.Role))
	})
}

func (r MembershipRepository) RemoveMember(_ context.Context, userID int64, groupID domain.GroupID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(memberKey(groupID, userID))
	})
}

// ListMembers scans the group's roster. Used by tooling and the debug
// inspector, not by the authorization path.
func (r MembershipRepository) ListMembers(_ context.Context, groupID domain.GroupID) ([]domain.Membership, error) {
	type row struct {
		userID int64
		role   string
	}
	var rows []row

	prefix := memberPrefix(groupID)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			rawID := strings.TrimPrefix(string(item.Key()), string(prefix))
			userID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil {
				r.log.Warn("skipping malformed membership key", "key", string(item.Key()))
				continue
			}
			err = item.Value(func(val []byte) error {
				rows = append(rows, row{userID: userID, role: string(val)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(item row, _ int) domain.Membership {
		return domain.Membership{GroupID: groupID, UserID: item.userID, Role: item.role}
	}), nil
}
