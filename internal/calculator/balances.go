// Package calculator computes settle-up plans from what group members have paid.
package calculator

import (
	"sort"

	"github.com/mmynk/splitledger/internal/models"
)

// settleEpsilon absorbs floating point noise when matching debts.
const settleEpsilon = 0.01

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberName string
	TotalPaid  float64 // Total amount paid across all transactions
	NetBalance float64 // Positive = owed money, Negative = owes money
}

// GroupBalances is the result of CalculateGroupBalances.
type GroupBalances struct {
	Total       float64
	FairShare   float64
	Members     []MemberBalance
	Settlements []models.Settlement
}

// CalculateGroupBalances computes net balances and a settle-up plan for the
// given members.
//
// Algorithm:
// - Fair share = sum of all payments / number of members
// - Net balance = total paid - fair share
// - Settlements: greedy matching of the largest debt with the largest credit
//
// Member order is preserved in the returned balances. An empty input yields
// a zero result.
func CalculateGroupBalances(users []models.User) GroupBalances {
	var result GroupBalances
	if len(users) == 0 {
		return result
	}

	for _, u := range users {
		result.Total += u.Balance
	}
	result.FairShare = result.Total / float64(len(users))

	result.Members = make([]MemberBalance, len(users))
	for i, u := range users {
		result.Members[i] = MemberBalance{
			MemberName: u.Name,
			TotalPaid:  u.Balance,
			NetBalance: u.Balance - result.FairShare,
		}
	}

	result.Settlements = settle(result.Members)
	return result
}

// settle matches debtors with creditors to minimize the number of payments.
func settle(members []MemberBalance) []models.Settlement {
	var creditors []MemberBalance
	var debtors []MemberBalance
	for _, m := range members {
		if m.NetBalance > settleEpsilon {
			creditors = append(creditors, m)
		} else if m.NetBalance < -settleEpsilon {
			debtors = append(debtors, m)
		}
	}

	// Largest debts and credits first; stable so equal balances keep member order.
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].NetBalance < debtors[j].NetBalance })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].NetBalance > creditors[j].NetBalance })

	debt := make([]float64, len(debtors))
	for i, d := range debtors {
		debt[i] = -d.NetBalance
	}
	credit := make([]float64, len(creditors))
	for j, c := range creditors {
		credit[j] = c.NetBalance
	}

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := debt[i]
		if credit[j] < amount {
			amount = credit[j]
		}

		if amount > settleEpsilon {
			settlements = append(settlements, models.Settlement{
				From:   debtors[i].MemberName,
				To:     creditors[j].MemberName,
				Amount: amount,
			})
		}

		debt[i] -= amount
		credit[j] -= amount

		if debt[i] < settleEpsilon {
			i++
		}
		if credit[j] < settleEpsilon {
			j++
		}
	}

	return settlements
}
