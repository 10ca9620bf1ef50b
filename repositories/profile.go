package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"collabcast/domain"
	"collabcast/errors"
)

type IProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (domain.Profile, error)
	StoreProfile(ctx context.Context, p domain.Profile) error
}

// ProfileRepository reads displayable identities from BadgerDB, keyed
// "profile:{user_id}". Values are JSON; the wire contract is JSON anyway
// so there is no second serialization format to maintain.
type ProfileRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewProfileRepository(db *badger.DB, log *slog.Logger) ProfileRepository {
	return ProfileRepository{db: db, log: log}
}

func profileKey(userID int64) []byte {
	return []byte(fmt.Sprintf("profile:%d", userID))
}

func (r ProfileRepository) GetProfile(_ context.Context, userID int64) (domain.Profile, error) {
	var profile domain.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(userID))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: user %d", errors.ErrProfileNotFound, userID)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	return profile, err
}

func (r ProfileRepository) StoreProfile(_ context.Context, p domain.Profile) error {
	bytes, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(p.ID), bytes)
	})
}
