package ledger

import (
	"math"

	"github.com/pkordes/wanderplan/internal/domain"
)

// Epsilon is the magnitude below which a balance counts as settled.
const Epsilon = 1e-6

// Settle turns a balance vector into peer-to-peer transfers that drive every
// balance to zero.
//
// It matches greedily: take the traveler with the most negative balance and
// the one with the most positive balance, move min(debt, credit) from the
// first to the second, drop whoever reaches zero, repeat. This produces at
// most n-1 transfers and is often, but not always, the smallest possible
// number; finding the true minimum is NP-hard. Equal extremes are broken by
// ascending traveler ID, so the same balances always yield the same plan.
func Settle(balances []domain.Balance) []domain.Transfer {
	type party struct {
		id     string
		amount float64
	}
	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Balance < -Epsilon:
			debtors = append(debtors, party{b.TravelerID, -b.Balance})
		case b.Balance > Epsilon:
			creditors = append(creditors, party{b.TravelerID, b.Balance})
		}
	}

	// largest returns the index of the biggest amount, lowest ID on ties.
	largest := func(ps []party) int {
		best := 0
		for i := 1; i < len(ps); i++ {
			if ps[i].amount > ps[best].amount ||
				(ps[i].amount == ps[best].amount && ps[i].id < ps[best].id) {
				best = i
			}
		}
		return best
	}
	remove := func(ps []party, i int) []party {
		return append(ps[:i], ps[i+1:]...)
	}

	transfers := []domain.Transfer{}
	for len(debtors) > 0 && len(creditors) > 0 {
		d, c := largest(debtors), largest(creditors)
		amt := math.Min(debtors[d].amount, creditors[c].amount)
		transfers = append(transfers, domain.Transfer{
			From:   debtors[d].id,
			To:     creditors[c].id,
			Amount: amt,
		})
		debtors[d].amount -= amt
		creditors[c].amount -= amt
		if debtors[d].amount <= Epsilon {
			debtors = remove(debtors, d)
		}
		if creditors[c].amount <= Epsilon {
			creditors = remove(creditors, c)
		}
	}
	return transfers
}
