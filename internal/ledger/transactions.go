package ledger

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

// AddTransaction records a payment by the named user: the transaction becomes
// the most recent one in the ledger, the amount is added to the user's
// balance and the user moves to its new sorted position.
//
// Returns ErrInvalidArgument for a non-positive (or non-finite) amount and
// ErrNotFound for an unknown user. Nothing is changed on error.
func (g *Group) AddTransaction(name string, amount float64) (models.Transaction, error) {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return models.Transaction{}, fmt.Errorf("amount %v must be positive: %w", amount, ErrInvalidArgument)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(name)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("user %q in group %q: %w", name, g.name, ErrNotFound)
	}

	xct := models.Transaction{
		ID:        uuid.New().String(),
		User:      name,
		Amount:    amount,
		CreatedAt: g.now().Unix(),
	}
	g.xcts = slices.Insert(g.xcts, 0, xct)
	g.credit(i, amount)

	return xct, nil
}

// RecentTransactions returns up to n transactions, newest first.
// n <= 0 yields an empty slice; a shorter ledger yields all of it.
func (g *Group) RecentTransactions(n int) []models.Transaction {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n = max(0, min(n, len(g.xcts)))
	recent := make([]models.Transaction, n)
	copy(recent, g.xcts[:n])
	return recent
}

// removeTransactions drops every transaction owned by name in a single pass,
// keeping the remaining ones in their original order. Callers hold mu.
func (g *Group) removeTransactions(name string) int {
	kept := g.xcts[:0]
	for _, xct := range g.xcts {
		if xct.User != name {
			kept = append(kept, xct)
		}
	}

	removed := len(g.xcts) - len(kept)
	clear(g.xcts[len(kept):])
	g.xcts = kept
	return removed
}
