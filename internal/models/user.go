package models

// User is a member of a group.
//
// Users are ordered inside their group by ascending Balance, so the first
// user of a group is always one of the people who have paid the least.
type User struct {
	// Name identifies the user within its group.
	Name string

	// Balance is the sum of every payment recorded for this user.
	// It starts at 0.00 and only ever grows.
	Balance float64

	// CreatedAt is the Unix timestamp when the user was added.
	CreatedAt int64
}
