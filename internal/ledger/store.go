// Package ledger is the in-memory ledger of groups, their users and their
// transactions.
//
// Users of a group stay sorted by ascending balance and transactions stay
// ordered newest first; both orders are maintained incrementally on every
// mutation. A Store is safe for concurrent use: the group sequence has its
// own lock and every group has one lock covering its users and transactions.
package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure Store implements storage.Ledger
var _ storage.Ledger = (*Store)(nil)

// Store owns every group of the ledger, in insertion order.
type Store struct {
	mu     sync.RWMutex
	groups []*Group
	now    func() time.Time
}

// Stats counts what the store currently holds.
type Stats struct {
	Groups       int
	Users        int
	Transactions int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// AddGroup appends a new, empty group.
// Returns ErrDuplicateName if a group with this name already exists.
func (s *Store) AddGroup(name string) (models.Group, error) {
	if err := validateName(name); err != nil {
		return models.Group{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.name == name {
			return models.Group{}, fmt.Errorf("group %q: %w", name, ErrDuplicateName)
		}
	}

	g := newGroup(name, s.now)
	s.groups = append(s.groups, g)
	return g.Info(), nil
}

// FindGroup returns the group with the given name, or ErrNotFound.
func (s *Store) FindGroup(name string) (*Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("group %q: %w", name, ErrNotFound)
}

// ListGroups returns every group name in insertion order.
// An empty store yields an empty, non-nil slice.
func (s *Store) ListGroups() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = g.name
	}
	return names, nil
}

// Stats counts groups, users and transactions across the store.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	groups := make([]*Group, len(s.groups))
	copy(groups, s.groups)
	s.mu.RUnlock()

	stats := Stats{Groups: len(groups)}
	for _, g := range groups {
		info := g.Info()
		stats.Users += info.Users
		stats.Transactions += info.Transactions
	}
	return stats
}

// The methods below resolve a group by name and dispatch to it.

// AddUser adds a user to the named group.
func (s *Store) AddUser(group, name string) (models.User, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return models.User{}, err
	}
	return g.AddUser(name)
}

// RemoveUser removes a user and every transaction they made from the named
// group. It returns how many transactions were removed.
func (s *Store) RemoveUser(group, name string) (int, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return 0, err
	}
	return g.RemoveUser(name)
}

// ListUsers returns the users of the named group in ascending balance order.
func (s *Store) ListUsers(group string) ([]models.User, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return nil, err
	}
	return g.ListUsers(), nil
}

// UserBalance returns the balance of a user of the named group.
func (s *Store) UserBalance(group, name string) (float64, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return 0, err
	}
	return g.UserBalance(name)
}

// UnderPaid returns the users of the named group tied for the lowest balance.
func (s *Store) UnderPaid(group string) ([]models.User, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return nil, err
	}
	return g.UnderPaid()
}

// AddTransaction records a payment by a user of the named group.
func (s *Store) AddTransaction(group, user string, amount float64) (models.Transaction, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return models.Transaction{}, err
	}
	return g.AddTransaction(user, amount)
}

// RecentTransactions returns up to n of the named group's transactions,
// newest first.
func (s *Store) RecentTransactions(group string, n int) ([]models.Transaction, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return nil, err
	}
	return g.RecentTransactions(n), nil
}

// Summary reports totals and a settle-up plan for the named group.
func (s *Store) Summary(group string) (models.Summary, error) {
	g, err := s.FindGroup(group)
	if err != nil {
		return models.Summary{}, err
	}
	return g.Summary(), nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be empty: %w", ErrInvalidArgument)
	}
	return nil
}
