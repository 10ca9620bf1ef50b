package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"collabcast/domain"
	"collabcast/repositories"
)

// Seeds a local store with a few groups, members and profiles so the
// server and the inspector have something to show during development.
func main() {
	dbPath := flag.String("db", "/tmp/collabcast", "Path to badger DB")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	log := slog.Default()
	ctx := context.Background()
	memberships := repositories.NewMembershipRepository(db, log)
	profiles := repositories.NewProfileRepository(db, log)

	fmt.Println("Generating test data...")

	users := []domain.Profile{
		{ID: 1, Name: "Alice", Avatar: "avatars/alice.png"},
		{ID: 2, Name: "Bob", Avatar: "avatars/bob.png"},
		{ID: 3, Name: "Carol", Avatar: "avatars/carol.png"},
		{ID: 4, Name: "Dave", Avatar: "avatars/dave.png"},
	}
	for _, p := range users {
		if err := profiles.StoreProfile(ctx, p); err != nil {
			panic(fmt.Sprintf("Failed to store profile %d: %v", p.ID, err))
		}
	}

	members := []domain.Membership{
		{GroupID: 1, UserID: 1, Role: "owner"},
		{GroupID: 1, UserID: 2, Role: "member"},
		{GroupID: 1, UserID: 3, Role: "member"},
		{GroupID: 2, UserID: 2, Role: "owner"},
		{GroupID: 2, UserID: 4, Role: "member"},
	}
	for _, m := range members {
		if err := memberships.AddMember(ctx, m); err != nil {
			panic(fmt.Sprintf("Failed to add member %d to group %d: %v", m.UserID, m.GroupID, err))
		}
	}

	fmt.Printf("Done: %d profiles, %d memberships in %s\n", len(users), len(members), *dbPath)
}
