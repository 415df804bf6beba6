package settle

import (
	"math"
	"sort"
)

// epsilon is the residual below which an outstanding amount is considered settled
const epsilon = 0.01

// PaymentMethod is how a player prefers to be paid
type PaymentMethod string

// payment method constants
const (
	Cash    PaymentMethod = "cash"
	Digital PaymentMethod = "digital"
)

// PlayerBalance is a player's net result for a game
// A positive amount means the player is owed money; a negative amount means they owe
type PlayerBalance struct {
	Name   string        `json:"name"`
	Amount float64       `json:"amount"`
	Method PaymentMethod `json:"method"`
}

// Transfer is a manual payment entered by a user, applied before optimization
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Settlement is a single directed payment instruction
type Settlement struct {
	From               string  `json:"from"`
	To                 string  `json:"to"`
	Amount             float64 `json:"amount"`
	InvolvesCashPlayer bool    `json:"involvesCashPlayer"`
}

// Result is the outcome of a settlement computation
// Skipped holds manual transfers that referenced unknown players and were not applied.
// Imbalance is the sum of the input balances; callers should surface a non-zero
// value instead of trusting the settlements to reconcile.
type Result struct {
	Settlements []Settlement `json:"settlements"`
	Skipped     []Transfer   `json:"skipped,omitempty"`
	Imbalance   float64      `json:"imbalance"`
}

// Applied returns the manual transfers that were netted into the computation,
// in their original order, excluding the ones reported in Skipped
// Only applied transfers should be persisted as payment instructions.
func (r Result) Applied(manual []Transfer) []Transfer {
	skipped := make(map[Transfer]int, len(r.Skipped))
	for _, t := range r.Skipped {
		skipped[t]++
	}

	applied := make([]Transfer, 0, len(manual))
	for _, t := range manual {
		if skipped[t] > 0 {
			skipped[t]--
			continue
		}

		applied = append(applied, t)
	}

	return applied
}

// party is a winner or loser with an outstanding amount still to be matched
type party struct {
	name   string
	amount float64
	method PaymentMethod
}

// CalculateOptimized computes a minimal-ish set of transfers that zero out the
// balances, preferring same-payment-method transfers before falling back to
// cross-method ones. Manual transfers are netted out of the balances first.
func CalculateOptimized(balances []PlayerBalance, manual []Transfer) Result {
	adjusted, skipped := applyManualTransfers(balances, manual)
	winners, losers := partition(adjusted)

	settlements := make([]Settlement, 0)

	// phase 1: cash pool
	settleGroup(filterByMethod(winners, Cash), filterByMethod(losers, Cash), &settlements, false)

	// phase 2: digital pool (unset preference counts as digital)
	settleGroup(filterByMethod(winners, Digital), filterByMethod(losers, Digital), &settlements, false)

	// phase 3: whatever is left settles across pools
	settleGroup(remaining(winners), remaining(losers), &settlements, true)

	return Result{
		Settlements: settlements,
		Skipped:     skipped,
		Imbalance:   imbalance(balances),
	}
}

// CalculateStandard is the pool-agnostic variant: a single greedy match over
// the full winner and loser sets, ignoring payment preferences.
func CalculateStandard(balances []PlayerBalance, manual []Transfer) Result {
	adjusted, skipped := applyManualTransfers(balances, manual)
	winners, losers := partition(adjusted)

	settlements := make([]Settlement, 0)
	settleGroup(winners, losers, &settlements, false)

	return Result{
		Settlements: settlements,
		Skipped:     skipped,
		Imbalance:   imbalance(balances),
	}
}

// applyManualTransfers nets manual payments out of the balances
// A transfer from A to B reduces A's debt and B's credit. Transfers naming a
// player not present in the balances are skipped.
func applyManualTransfers(balances []PlayerBalance, manual []Transfer) ([]PlayerBalance, []Transfer) {
	adjusted := make([]PlayerBalance, len(balances))
	copy(adjusted, balances)

	index := make(map[string]int, len(adjusted))
	for i, b := range adjusted {
		index[b.Name] = i
	}

	var skipped []Transfer
	for _, t := range manual {
		fi, fromOK := index[t.From]
		ti, toOK := index[t.To]
		if !fromOK || !toOK {
			skipped = append(skipped, t)
			continue
		}

		adjusted[fi].Amount += t.Amount
		adjusted[ti].Amount -= t.Amount
	}

	return adjusted, skipped
}

func partition(balances []PlayerBalance) ([]*party, []*party) {
	winners := make([]*party, 0)
	losers := make([]*party, 0)

	for _, b := range balances {
		switch {
		case b.Amount > epsilon:
			winners = append(winners, &party{name: b.Name, amount: b.Amount, method: b.Method})
		case b.Amount < -epsilon:
			losers = append(losers, &party{name: b.Name, amount: -b.Amount, method: b.Method})
		}
	}

	return winners, losers
}

func filterByMethod(parties []*party, method PaymentMethod) []*party {
	filtered := make([]*party, 0, len(parties))
	for _, p := range parties {
		m := p.method
		if m == "" {
			m = Digital
		}

		if m == method {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// remaining returns the parties that still have an unsettled residual
func remaining(parties []*party) []*party {
	left := make([]*party, 0, len(parties))
	for _, p := range parties {
		if p.amount > epsilon {
			left = append(left, p)
		}
	}

	return left
}

// settleGroup greedily matches the largest outstanding creditor with the
// largest outstanding debtor until one side is exhausted. Amounts are rounded
// to the nearest whole unit at emission; residue that rounds to zero is
// dropped rather than emitted as a zero-amount settlement.
func settleGroup(winners, losers []*party, settlements *[]Settlement, involvesCash bool) {
	sort.SliceStable(winners, func(i, j int) bool { return winners[i].amount > winners[j].amount })
	sort.SliceStable(losers, func(i, j int) bool { return losers[i].amount > losers[j].amount })

	wi, li := 0, 0
	for wi < len(winners) && li < len(losers) {
		winner, loser := winners[wi], losers[li]

		amount := math.Min(winner.amount, loser.amount)
		if rounded := math.Round(amount); amount > epsilon && rounded > 0 {
			*settlements = append(*settlements, Settlement{
				From:               loser.name,
				To:                 winner.name,
				Amount:             rounded,
				InvolvesCashPlayer: involvesCash,
			})
		}

		winner.amount -= amount
		loser.amount -= amount

		if winner.amount <= epsilon {
			wi++
		}
		if loser.amount <= epsilon {
			li++
		}
	}
}

func imbalance(balances []PlayerBalance) float64 {
	sum := 0.0
	for _, b := range balances {
		sum += b.Amount
	}

	if math.Abs(sum) <= epsilon {
		return 0
	}

	return sum
}
