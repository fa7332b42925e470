package models

// Settlement is a suggested payment between group members to even out
// what everybody has paid.
type Settlement struct {
	// From is the member who has paid less than the fair share.
	From string

	// To is the member who has paid more than the fair share.
	To string

	// Amount is the payment that moves both members towards the fair share.
	Amount float64
}

// Summary is a report over one group.
type Summary struct {
	// Group is the group name.
	Group string

	// Total is the sum of every recorded payment.
	Total float64

	// FairShare is Total divided evenly among the members.
	FairShare float64

	// Members are the group's users in ascending balance order.
	Members []User

	// Settlements is the settle-up plan: who should pay whom so that
	// every member ends at FairShare.
	Settlements []Settlement
}
