package ledger

import (
	"fmt"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// AddUser inserts a user with a zero balance at its sorted position: after
// every user whose balance is not above zero, before the first one that is.
// Returns ErrDuplicateName if the group already has a user with this name.
func (g *Group) AddUser(name string) (models.User, error) {
	if err := validateName(name); err != nil {
		return models.User{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.indexOf(name) >= 0 {
		return models.User{}, fmt.Errorf("user %q in group %q: %w", name, g.name, ErrDuplicateName)
	}

	user := models.User{
		Name:      name,
		Balance:   0,
		CreatedAt: g.now().Unix(),
	}

	pos := 0
	for pos < len(g.users) && g.users[pos].Balance <= user.Balance {
		pos++
	}
	g.users = slices.Insert(g.users, pos, user)

	return user, nil
}

// RemoveUser removes the user and sweeps every transaction they own out of
// the ledger, under one lock so neither half is observable alone.
// It returns the number of transactions removed.
func (g *Group) RemoveUser(name string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("user %q in group %q: %w", name, g.name, ErrNotFound)
	}

	g.users = slices.Delete(g.users, i, i+1)
	return g.removeTransactions(name), nil
}

// ListUsers returns the users in ascending balance order.
// A group without users yields an empty, non-nil slice.
func (g *Group) ListUsers() []models.User {
	g.mu.RLock()
	defer g.mu.RUnlock()

	users := make([]models.User, len(g.users))
	copy(users, g.users)
	return users
}

// UserBalance returns the balance of the named user, or ErrNotFound.
func (g *Group) UserBalance(name string) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i := g.indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("user %q in group %q: %w", name, g.name, ErrNotFound)
	}
	return g.users[i].Balance, nil
}

// UnderPaid returns every user tied for the lowest balance. Since users are
// sorted, that is the longest prefix whose balance equals the first one.
// Returns ErrEmptyRegistry if the group has no users.
func (g *Group) UnderPaid() ([]models.User, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.users) == 0 {
		return nil, fmt.Errorf("group %q: %w", g.name, ErrEmptyRegistry)
	}

	lowest := g.users[0].Balance
	end := 1
	for end < len(g.users) && g.users[end].Balance == lowest {
		end++
	}

	under := make([]models.User, end)
	copy(under, g.users[:end])
	return under, nil
}

// credit adds amount to the balance of the user at index i and moves the
// user forward to keep users sorted. Balances only grow, so the user never
// moves earlier: the scan starts at its old position and stops before the
// first user with a strictly greater balance. Untouched users keep their
// relative order. Callers hold mu.
func (g *Group) credit(i int, amount float64) models.User {
	user := g.users[i]
	user.Balance += amount

	g.users = slices.Delete(g.users, i, i+1)

	pos := i
	for pos < len(g.users) && g.users[pos].Balance <= user.Balance {
		pos++
	}
	g.users = slices.Insert(g.users, pos, user)

	return user
}

// indexOf returns the position of the named user, or -1. Callers hold mu.
func (g *Group) indexOf(name string) int {
	for i := range g.users {
		if g.users[i].Name == name {
			return i
		}
	}
	return -1
}
