package models

// Transaction is a payment made by one user of a group.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// User is the name of the paying user. It is a reference by value:
	// removing the user removes every transaction carrying this name.
	User string

	// Amount is the payment amount. Always positive.
	Amount float64

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64
}
