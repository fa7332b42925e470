package ledger

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func names(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func xctOwners(xcts []models.Transaction) []string {
	out := make([]string, len(xcts))
	for i, x := range xcts {
		out[i] = x.User
	}
	return out
}

func assertSorted(t *testing.T, users []models.User) {
	t.Helper()
	for i := 1; i < len(users); i++ {
		if users[i-1].Balance > users[i].Balance {
			t.Fatalf("users not sorted by balance at %d: %+v", i, users)
		}
	}
}

func mustGroup(t *testing.T, s *Store, name string) *Group {
	t.Helper()
	if _, err := s.AddGroup(name); err != nil {
		t.Fatalf("AddGroup(%q) failed: %v", name, err)
	}
	g, err := s.FindGroup(name)
	if err != nil {
		t.Fatalf("FindGroup(%q) failed: %v", name, err)
	}
	return g
}

func TestGroupRegistry(t *testing.T) {
	s := NewStore()

	t.Run("ListGroups on empty store", func(t *testing.T) {
		groups, err := s.ListGroups()
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if groups == nil || len(groups) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", groups)
		}
	})

	t.Run("AddGroup preserves insertion order", func(t *testing.T) {
		for _, name := range []string{"dorm", "Trip", "work"} {
			info, err := s.AddGroup(name)
			if err != nil {
				t.Fatalf("AddGroup(%q) failed: %v", name, err)
			}
			if info.Name != name || info.CreatedAt == 0 {
				t.Errorf("unexpected group info: %+v", info)
			}
		}
		got, _ := s.ListGroups()
		want := []string{"dorm", "Trip", "work"}
		if !slices.Equal(got, want) {
			t.Errorf("ListGroups = %v, want %v", got, want)
		}
	})

	t.Run("AddGroup rejects duplicates", func(t *testing.T) {
		_, err := s.AddGroup("dorm")
		if !errors.Is(err, ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}
		got, _ := s.ListGroups()
		if len(got) != 3 {
			t.Errorf("registry changed after duplicate: %v", got)
		}
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		if _, err := s.AddGroup("trip"); err != nil {
			t.Fatalf("AddGroup(trip) failed: %v", err)
		}
	})

	t.Run("AddGroup rejects empty name", func(t *testing.T) {
		_, err := s.AddGroup("  ")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("FindGroup", func(t *testing.T) {
		g, err := s.FindGroup("work")
		if err != nil {
			t.Fatalf("FindGroup failed: %v", err)
		}
		if g.Name() != "work" {
			t.Errorf("FindGroup returned %q", g.Name())
		}
		if _, err := s.FindGroup("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAddUser(t *testing.T) {
	s := NewStore()
	g := mustGroup(t, s, "dorm")

	t.Run("new users land among zero balances", func(t *testing.T) {
		for _, name := range []string{"alice", "bob"} {
			u, err := g.AddUser(name)
			if err != nil {
				t.Fatalf("AddUser(%q) failed: %v", name, err)
			}
			if u.Balance != 0 {
				t.Errorf("new user balance = %v, want 0", u.Balance)
			}
		}
		if _, err := g.AddTransaction("bob", 5); err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
		if _, err := g.AddUser("carol"); err != nil {
			t.Fatalf("AddUser(carol) failed: %v", err)
		}

		got := names(g.ListUsers())
		want := []string{"alice", "carol", "bob"}
		if !slices.Equal(got, want) {
			t.Errorf("ListUsers = %v, want %v", got, want)
		}
	})

	t.Run("new user goes before everyone when all have paid", func(t *testing.T) {
		g := mustGroup(t, s, "paid")
		g.AddUser("x")
		g.AddTransaction("x", 1)
		g.AddUser("y")

		got := names(g.ListUsers())
		if !slices.Equal(got, []string{"y", "x"}) {
			t.Errorf("ListUsers = %v, want [y x]", got)
		}
	})

	t.Run("duplicate user rejected", func(t *testing.T) {
		before := g.ListUsers()
		_, err := g.AddUser("alice")
		if !errors.Is(err, ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}
		if !slices.Equal(before, g.ListUsers()) {
			t.Errorf("registry changed after duplicate")
		}
	})

	t.Run("same name allowed in another group", func(t *testing.T) {
		if _, err := s.AddUser("paid", "alice"); err != nil {
			t.Errorf("AddUser in other group failed: %v", err)
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		if _, err := s.AddUser("nope", "alice"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAddTransaction(t *testing.T) {
	s := NewStore()
	g := mustGroup(t, s, "dorm")
	for _, name := range []string{"alice", "bob", "carol"} {
		g.AddUser(name)
	}

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err := g.AddTransaction("alice", amount)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("AddTransaction(%v): expected ErrInvalidArgument, got %v", amount, err)
			}
		}
		if len(g.RecentTransactions(10)) != 0 {
			t.Error("ledger changed after rejected amounts")
		}
	})

	t.Run("unknown user leaves no trace", func(t *testing.T) {
		_, err := g.AddTransaction("dave", 10)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(g.RecentTransactions(10)) != 0 {
			t.Error("ledger changed after unknown user")
		}
	})

	t.Run("user moves past lower balances only", func(t *testing.T) {
		// alice 0, bob 0, carol 0 -> alice pays 10 -> [bob carol alice]
		xct, err := g.AddTransaction("alice", 10)
		if err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
		if xct.ID == "" || xct.User != "alice" || xct.Amount != 10 {
			t.Errorf("unexpected transaction: %+v", xct)
		}
		if got := names(g.ListUsers()); !slices.Equal(got, []string{"bob", "carol", "alice"}) {
			t.Errorf("ListUsers = %v", got)
		}

		// carol pays 5 -> [bob carol alice]; carol stays before alice
		g.AddTransaction("carol", 5)
		if got := names(g.ListUsers()); !slices.Equal(got, []string{"bob", "carol", "alice"}) {
			t.Errorf("ListUsers = %v", got)
		}

		// carol pays 5 more -> ties alice, lands after her
		g.AddTransaction("carol", 5)
		if got := names(g.ListUsers()); !slices.Equal(got, []string{"bob", "alice", "carol"}) {
			t.Errorf("ListUsers = %v", got)
		}
	})

	t.Run("balance accumulates", func(t *testing.T) {
		bal, err := g.UserBalance("carol")
		if err != nil {
			t.Fatalf("UserBalance failed: %v", err)
		}
		if bal != 10 {
			t.Errorf("carol balance = %v, want 10", bal)
		}
		if _, err := g.UserBalance("dave"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSortInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewStore()
	g := mustGroup(t, s, "random")

	paid := make(map[string]float64)
	var members []string

	for step := 0; step < 500; step++ {
		if len(members) == 0 || rng.Intn(5) == 0 {
			name := string(rune('a'+len(members)%26)) + string(rune('a'+len(members)/26))
			if _, err := g.AddUser(name); err != nil {
				t.Fatalf("AddUser(%q) failed: %v", name, err)
			}
			members = append(members, name)
		} else {
			name := members[rng.Intn(len(members))]
			amount := float64(rng.Intn(4)+1) * 2.5
			if _, err := g.AddTransaction(name, amount); err != nil {
				t.Fatalf("AddTransaction failed: %v", err)
			}
			paid[name] += amount
		}
		assertSorted(t, g.ListUsers())
	}

	for _, u := range g.ListUsers() {
		if u.Balance != paid[u.Name] {
			t.Errorf("%s balance = %v, want %v", u.Name, u.Balance, paid[u.Name])
		}
	}
}

func TestUnderPaid(t *testing.T) {
	s := NewStore()
	g := mustGroup(t, s, "dorm")

	t.Run("empty registry", func(t *testing.T) {
		_, err := g.UnderPaid()
		if !errors.Is(err, ErrEmptyRegistry) {
			t.Errorf("expected ErrEmptyRegistry, got %v", err)
		}
	})

	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		g.AddUser(name)
	}

	t.Run("everyone tied at zero", func(t *testing.T) {
		under, err := g.UnderPaid()
		if err != nil {
			t.Fatalf("UnderPaid failed: %v", err)
		}
		if len(under) != 4 {
			t.Errorf("expected 4 under-paid users, got %v", names(under))
		}
	})

	t.Run("prefix tied with the minimum", func(t *testing.T) {
		g.AddTransaction("alice", 3)
		g.AddTransaction("bob", 3)
		g.AddTransaction("dave", 1)
		g.AddTransaction("carol", 1)
		// balances: dave 1, carol 1, alice 3, bob 3
		under, _ := g.UnderPaid()
		got := names(under)
		slices.Sort(got)
		if !slices.Equal(got, []string{"carol", "dave"}) {
			t.Errorf("UnderPaid = %v, want [carol dave]", got)
		}
	})

	t.Run("single lowest", func(t *testing.T) {
		g.AddTransaction("carol", 1)
		under, _ := g.UnderPaid()
		if got := names(under); !slices.Equal(got, []string{"dave"}) {
			t.Errorf("UnderPaid = %v, want [dave]", got)
		}
	})
}

func TestRemoveUser(t *testing.T) {
	s := NewStore()
	g := mustGroup(t, s, "dorm")
	for _, name := range []string{"alice", "bob", "carol"} {
		g.AddUser(name)
	}
	// newest first: bob, alice, carol, bob, alice, bob
	for _, p := range []struct {
		user   string
		amount float64
	}{
		{"bob", 1}, {"alice", 2}, {"bob", 3}, {"carol", 4}, {"alice", 5}, {"bob", 6},
	} {
		if _, err := g.AddTransaction(p.user, p.amount); err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
	}

	t.Run("unknown user", func(t *testing.T) {
		_, err := g.RemoveUser("dave")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if len(g.RecentTransactions(100)) != 6 {
			t.Error("ledger changed after failed removal")
		}
	})

	t.Run("sweeps head and non-contiguous records", func(t *testing.T) {
		before := g.RecentTransactions(100)

		removed, err := g.RemoveUser("bob")
		if err != nil {
			t.Fatalf("RemoveUser failed: %v", err)
		}
		if removed != 3 {
			t.Errorf("removed = %d, want 3", removed)
		}

		after := g.RecentTransactions(100)
		var want []models.Transaction
		for _, x := range before {
			if x.User != "bob" {
				want = append(want, x)
			}
		}
		if !slices.Equal(after, want) {
			t.Errorf("ledger after removal = %v, want %v", xctOwners(after), xctOwners(want))
		}
		if got := names(g.ListUsers()); slices.Contains(got, "bob") {
			t.Errorf("bob still listed: %v", got)
		}
		assertSorted(t, g.ListUsers())
	})

	t.Run("user without transactions", func(t *testing.T) {
		g.AddUser("erin")
		removed, err := g.RemoveUser("erin")
		if err != nil || removed != 0 {
			t.Errorf("RemoveUser(erin) = %d, %v", removed, err)
		}
		if len(g.RecentTransactions(100)) != 3 {
			t.Error("unrelated transactions removed")
		}
	})

	t.Run("re-added user starts fresh", func(t *testing.T) {
		g.AddUser("bob")
		bal, _ := g.UserBalance("bob")
		if bal != 0 {
			t.Errorf("bob balance = %v, want 0", bal)
		}
		if got := names(g.ListUsers()); got[0] != "bob" {
			t.Errorf("expected bob first, got %v", got)
		}
	})
}

func TestRecentTransactions(t *testing.T) {
	s := NewStore()
	g := mustGroup(t, s, "dorm")
	g.AddUser("alice")
	g.AddUser("bob")

	if got := g.RecentTransactions(5); got == nil || len(got) != 0 {
		t.Errorf("expected empty ledger, got %#v", got)
	}

	amounts := []float64{1, 2, 3, 4, 5}
	for i, a := range amounts {
		user := "alice"
		if i%2 == 1 {
			user = "bob"
		}
		g.AddTransaction(user, a)
	}

	tests := []struct {
		n    int
		want []float64
	}{
		{n: -3, want: []float64{}},
		{n: 0, want: []float64{}},
		{n: 2, want: []float64{5, 4}},
		{n: 5, want: []float64{5, 4, 3, 2, 1}},
		{n: 50, want: []float64{5, 4, 3, 2, 1}},
	}

	for _, tt := range tests {
		got := g.RecentTransactions(tt.n)
		gotAmounts := make([]float64, len(got))
		for i, x := range got {
			gotAmounts[i] = x.Amount
		}
		if !slices.Equal(gotAmounts, tt.want) {
			t.Errorf("RecentTransactions(%d) = %v, want %v", tt.n, gotAmounts, tt.want)
		}
	}

	t.Run("facade reports unknown group", func(t *testing.T) {
		if _, err := s.RecentTransactions("nope", 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDormScenario(t *testing.T) {
	s := NewStore()
	if _, err := s.AddGroup("dorm"); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}
	s.AddUser("dorm", "alice")
	s.AddUser("dorm", "bob")

	if _, err := s.AddTransaction("dorm", "bob", 12.50); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	bal, _ := s.UserBalance("dorm", "bob")
	if bal != 12.50 {
		t.Errorf("bob balance = %v, want 12.50", bal)
	}
	users, _ := s.ListUsers("dorm")
	if got := names(users); !slices.Equal(got, []string{"alice", "bob"}) {
		t.Errorf("ListUsers = %v, want [alice bob]", got)
	}

	s.AddTransaction("dorm", "alice", 12.50)
	under, err := s.UnderPaid("dorm")
	if err != nil {
		t.Fatalf("UnderPaid failed: %v", err)
	}
	got := names(under)
	slices.Sort(got)
	if !slices.Equal(got, []string{"alice", "bob"}) {
		t.Errorf("UnderPaid = %v, want both", got)
	}

	if _, err := s.RemoveUser("dorm", "bob"); err != nil {
		t.Fatalf("RemoveUser failed: %v", err)
	}
	users, _ = s.ListUsers("dorm")
	if got := names(users); !slices.Equal(got, []string{"alice"}) {
		t.Errorf("ListUsers = %v, want [alice]", got)
	}
	recent, _ := s.RecentTransactions("dorm", 5)
	if len(recent) != 1 || recent[0].User != "alice" || recent[0].Amount != 12.50 {
		t.Errorf("RecentTransactions = %+v, want only alice's payment", recent)
	}

	stats := s.Stats()
	if stats != (Stats{Groups: 1, Users: 1, Transactions: 1}) {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestSummary(t *testing.T) {
	s := NewStore()
	s.AddGroup("trip")
	for _, name := range []string{"alice", "bob", "carol"} {
		s.AddUser("trip", name)
	}
	s.AddTransaction("trip", "bob", 60)
	s.AddTransaction("trip", "alice", 30)

	sum, err := s.Summary("trip")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.Total != 90 || sum.FairShare != 30 {
		t.Errorf("Total/FairShare = %v/%v, want 90/30", sum.Total, sum.FairShare)
	}
	if got := names(sum.Members); !slices.Equal(got, []string{"carol", "alice", "bob"}) {
		t.Errorf("Members = %v", got)
	}
	want := []models.Settlement{{From: "carol", To: "bob", Amount: 30}}
	if !slices.Equal(sum.Settlements, want) {
		t.Errorf("Settlements = %+v, want %+v", sum.Settlements, want)
	}

	if _, err := s.Summary("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
