package domain

// GroupID identifies a collaboration group. Group CRUD lives outside this
// core; only membership lookups are consumed here.
type GroupID int64

type Group struct {
	ID   GroupID
	Name string
}

// Membership links a user to a group. Stored by the CRUD layer and
// re-read on every presence subscription attempt.
type Membership struct {
	GroupID GroupID
	UserID  int64
	Role    string
}
