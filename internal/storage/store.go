// Package storage provides abstractions over the ledger backend.
package storage

import (
	"github.com/mmynk/splitledger/internal/models"
)

// Ledger defines the group, user and transaction operations that callers
// (RPC services, the REPL, fixture loading) run against a ledger.
// This abstraction allows the REPL to drive either the in-process ledger or
// a remote server without changing the command layer.
//
// Every method addresses a group by name. Implementations report failures
// with the sentinel errors of package ledger, wrapped.
type Ledger interface {
	// AddGroup appends a new, empty group.
	AddGroup(name string) (models.Group, error)

	// ListGroups returns group names in insertion order.
	ListGroups() ([]string, error)

	// AddUser adds a user with a zero balance to a group.
	AddUser(group, name string) (models.User, error)

	// RemoveUser removes a user and all of their transactions.
	// Returns how many transactions were removed.
	RemoveUser(group, name string) (int, error)

	// ListUsers returns a group's users in ascending balance order.
	ListUsers(group string) ([]models.User, error)

	// UserBalance returns one user's balance.
	UserBalance(group, name string) (float64, error)

	// UnderPaid returns the users tied for the lowest balance.
	UnderPaid(group string) ([]models.User, error)

	// AddTransaction records a positive payment by a user.
	AddTransaction(group, user string, amount float64) (models.Transaction, error)

	// RecentTransactions returns up to n transactions, newest first.
	RecentTransactions(group string, n int) ([]models.Transaction, error)

	// Summary reports totals and a settle-up plan for a group.
	Summary(group string) (models.Summary, error)
}
