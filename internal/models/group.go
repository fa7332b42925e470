package models

// Group is a read-only snapshot of a group in the ledger.
type Group struct {
	// Name uniquely identifies the group (case-sensitive, non-empty).
	Name string

	// Users is the number of members at the time of the snapshot.
	Users int

	// Transactions is the number of recorded payments at the time of the snapshot.
	Transactions int

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
