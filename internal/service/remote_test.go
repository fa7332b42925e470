package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/ledger"
)

func TestRemoteLedger(t *testing.T) {
	ts := setupTestServer(t, false)
	remote := NewRemoteLedger(ts.ledger, 5*time.Second)

	groups, err := remote.ListGroups()
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if groups == nil || len(groups) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", groups)
	}

	if _, err := remote.AddGroup("dorm"); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}
	remote.AddUser("dorm", "alice")
	remote.AddUser("dorm", "bob")

	xct, err := remote.AddTransaction("dorm", "bob", 12.5)
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if xct.User != "bob" || xct.Amount != 12.5 || xct.ID == "" {
		t.Errorf("unexpected transaction: %+v", xct)
	}

	users, err := remote.ListUsers("dorm")
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 || users[0].Name != "alice" || users[1].Balance != 12.5 {
		t.Errorf("unexpected users: %+v", users)
	}

	summary, err := remote.Summary("dorm")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(summary.Settlements) != 1 || summary.Settlements[0].From != "alice" {
		t.Errorf("unexpected summary: %+v", summary)
	}

	t.Run("errors map back to ledger sentinels", func(t *testing.T) {
		tests := []struct {
			name string
			call func() error
			want error
		}{
			{"duplicate group", func() error { _, err := remote.AddGroup("dorm"); return err }, ledger.ErrDuplicateName},
			{"unknown group", func() error { _, err := remote.ListUsers("nope"); return err }, ledger.ErrNotFound},
			{"unknown user", func() error { _, err := remote.UserBalance("dorm", "carol"); return err }, ledger.ErrNotFound},
			{"bad amount", func() error { _, err := remote.AddTransaction("dorm", "bob", 0); return err }, ledger.ErrInvalidArgument},
			{"empty registry", func() error {
				remote.AddGroup("empty")
				_, err := remote.UnderPaid("empty")
				return err
			}, ledger.ErrEmptyRegistry},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.call(); !errors.Is(err, tt.want) {
					t.Errorf("got %v, want %v", err, tt.want)
				}
			})
		}
	})

	removed, err := remote.RemoveUser("dorm", "bob")
	if err != nil || removed != 1 {
		t.Errorf("RemoveUser = %d, %v", removed, err)
	}
	recent, err := remote.RecentTransactions("dorm", 5)
	if err != nil || len(recent) != 0 {
		t.Errorf("RecentTransactions = %+v, %v", recent, err)
	}
}
