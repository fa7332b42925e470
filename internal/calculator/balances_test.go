package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func TestCalculateGroupBalances(t *testing.T) {
	tests := []struct {
		name         string
		users        []models.User
		validateFunc func(t *testing.T, got GroupBalances)
	}{
		{
			name:  "no members yields zero result",
			users: nil,
			validateFunc: func(t *testing.T, got GroupBalances) {
				if got.Total != 0 || got.FairShare != 0 {
					t.Errorf("expected zero totals, got total=%v share=%v", got.Total, got.FairShare)
				}
				if len(got.Members) != 0 || len(got.Settlements) != 0 {
					t.Errorf("expected no members or settlements, got %d/%d", len(got.Members), len(got.Settlements))
				}
			},
		},
		{
			name: "already even needs no settlements",
			users: []models.User{
				{Name: "alice", Balance: 12.5},
				{Name: "bob", Balance: 12.5},
			},
			validateFunc: func(t *testing.T, got GroupBalances) {
				if math.Abs(got.FairShare-12.5) > 0.01 {
					t.Errorf("FairShare = %v, want 12.5", got.FairShare)
				}
				if len(got.Settlements) != 0 {
					t.Errorf("expected no settlements, got %+v", got.Settlements)
				}
			},
		},
		{
			name: "two members, one paid everything",
			users: []models.User{
				{Name: "alice", Balance: 0},
				{Name: "bob", Balance: 30},
			},
			validateFunc: func(t *testing.T, got GroupBalances) {
				// Total = 30, share = 15: alice owes bob 15
				if len(got.Settlements) != 1 {
					t.Fatalf("expected 1 settlement, got %d", len(got.Settlements))
				}
				s := got.Settlements[0]
				if s.From != "alice" || s.To != "bob" {
					t.Errorf("settlement = %s -> %s, want alice -> bob", s.From, s.To)
				}
				if math.Abs(s.Amount-15) > 0.01 {
					t.Errorf("amount = %v, want 15", s.Amount)
				}
				if math.Abs(got.Members[0].NetBalance+15) > 0.01 {
					t.Errorf("alice net = %v, want -15", got.Members[0].NetBalance)
				}
			},
		},
		{
			name: "three members, largest debt matched first",
			users: []models.User{
				{Name: "carol", Balance: 0},
				{Name: "alice", Balance: 10},
				{Name: "bob", Balance: 50},
			},
			validateFunc: func(t *testing.T, got GroupBalances) {
				// Total = 60, share = 20: carol owes 20, alice owes 10, bob is owed 30
				if math.Abs(got.FairShare-20) > 0.01 {
					t.Errorf("FairShare = %v, want 20", got.FairShare)
				}
				want := []models.Settlement{
					{From: "carol", To: "bob", Amount: 20},
					{From: "alice", To: "bob", Amount: 10},
				}
				if len(got.Settlements) != len(want) {
					t.Fatalf("expected %d settlements, got %+v", len(want), got.Settlements)
				}
				for i, w := range want {
					g := got.Settlements[i]
					if g.From != w.From || g.To != w.To || math.Abs(g.Amount-w.Amount) > 0.01 {
						t.Errorf("settlement %d = %+v, want %+v", i, g, w)
					}
				}
			},
		},
		{
			name: "settlements zero out every net balance",
			users: []models.User{
				{Name: "a", Balance: 5},
				{Name: "b", Balance: 7.25},
				{Name: "c", Balance: 19.1},
				{Name: "d", Balance: 40},
			},
			validateFunc: func(t *testing.T, got GroupBalances) {
				net := make(map[string]float64)
				for _, m := range got.Members {
					net[m.MemberName] = m.NetBalance
				}
				for _, s := range got.Settlements {
					net[s.From] += s.Amount
					net[s.To] -= s.Amount
				}
				for name, v := range net {
					if math.Abs(v) > 0.02 {
						t.Errorf("%s still has net %v after settling", name, v)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, CalculateGroupBalances(tt.users))
		})
	}
}
