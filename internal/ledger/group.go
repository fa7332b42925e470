package ledger

import (
	"sync"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

// Group owns one user registry and one transaction ledger.
//
// users is kept sorted by ascending balance; xcts is kept newest first.
// Both are guarded by mu, since recording a payment and removing a user
// touch both.
type Group struct {
	mu        sync.RWMutex
	name      string
	createdAt int64
	users     []models.User
	xcts      []models.Transaction
	now       func() time.Time
}

func newGroup(name string, now func() time.Time) *Group {
	return &Group{
		name:      name,
		createdAt: now().Unix(),
		now:       now,
	}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Info returns a snapshot of the group.
func (g *Group) Info() models.Group {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return models.Group{
		Name:         g.name,
		Users:        len(g.users),
		Transactions: len(g.xcts),
		CreatedAt:    g.createdAt,
	}
}

// Summary reports the group total, the fair share per member and who should
// pay whom to even things out.
func (g *Group) Summary() models.Summary {
	members := g.ListUsers()
	balances := calculator.CalculateGroupBalances(members)

	return models.Summary{
		Group:       g.name,
		Total:       balances.Total,
		FairShare:   balances.FairShare,
		Members:     members,
		Settlements: balances.Settlements,
	}
}
