// Package seed replays YAML fixtures into a ledger. Fixtures are read once;
// the ledger never writes them back.
//
// Fixture format:
//
//	groups:
//	  - name: dorm
//	    users: [alice, bob]
//	    payments:
//	      - user: bob
//	        amount: 12.50
//
// Payments are applied in file order, so the last payment listed is the most
// recent transaction of its group.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/splitledger/internal/storage"
)

// File is a parsed fixture file.
type File struct {
	Groups []Group `yaml:"groups"`
}

// Group is one group with its members and payments.
type Group struct {
	Name     string    `yaml:"name"`
	Users    []string  `yaml:"users"`
	Payments []Payment `yaml:"payments"`
}

// Payment is one transaction to record.
type Payment struct {
	User   string  `yaml:"user"`
	Amount float64 `yaml:"amount"`
}

// Load reads and parses a fixture file. Unknown fields are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse parses fixture YAML.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Apply replays the fixtures into l: groups, then their users, then their
// payments. It stops at the first failing operation.
func Apply(l storage.Ledger, f *File) error {
	var users, payments int
	for _, g := range f.Groups {
		if _, err := l.AddGroup(g.Name); err != nil {
			return fmt.Errorf("seed group %q: %w", g.Name, err)
		}
		for _, name := range g.Users {
			if _, err := l.AddUser(g.Name, name); err != nil {
				return fmt.Errorf("seed user %q in group %q: %w", name, g.Name, err)
			}
			users++
		}
		for i, p := range g.Payments {
			if _, err := l.AddTransaction(g.Name, p.User, p.Amount); err != nil {
				return fmt.Errorf("seed payment %d in group %q: %w", i+1, g.Name, err)
			}
			payments++
		}
	}

	slog.Info("Seed applied",
		"groups", len(f.Groups),
		"users", users,
		"payments", payments,
	)
	return nil
}
