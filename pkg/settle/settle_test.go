package settle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// netFromSettlements replays the settlements and returns each player's net
func netFromSettlements(settlements []Settlement) map[string]float64 {
	nets := make(map[string]float64)
	for _, s := range settlements {
		nets[s.From] -= s.Amount
		nets[s.To] += s.Amount
	}

	return nets
}

func TestCalculateOptimized_ZeroSum(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -500, Method: Cash},
		{Name: "bob", Amount: 300, Method: Digital},
		{Name: "carol", Amount: 200, Method: Cash},
	}

	result := CalculateOptimized(balances, nil)
	a.Zero(result.Imbalance)
	a.Empty(result.Skipped)

	// cash phase pairs alice with carol; the rest crosses pools
	a.Equal([]Settlement{
		{From: "alice", To: "carol", Amount: 200},
		{From: "alice", To: "bob", Amount: 300, InvolvesCashPlayer: true},
	}, result.Settlements)

	nets := netFromSettlements(result.Settlements)
	for _, b := range balances {
		a.InDelta(b.Amount, nets[b.Name], 1, b.Name)
	}
}

func TestCalculateOptimized_CashOnlySettlesInCashPhase(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -100, Method: Cash},
		{Name: "bob", Amount: 60, Method: Cash},
		{Name: "carol", Amount: 40, Method: Cash},
	}

	result := CalculateOptimized(balances, nil)
	a.Len(result.Settlements, 2)
	for _, s := range result.Settlements {
		a.False(s.InvolvesCashPlayer, "a balanced cash-only group must not reach the cross-pool phase")
	}

	nets := netFromSettlements(result.Settlements)
	for _, b := range balances {
		a.InDelta(b.Amount, nets[b.Name], 1, b.Name)
	}
}

func TestCalculateOptimized_GreedyPairsLargestFirst(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: 70},
		{Name: "bob", Amount: 30},
		{Name: "carol", Amount: -50},
		{Name: "dave", Amount: -50},
	}

	result := CalculateOptimized(balances, nil)
	a.Equal([]Settlement{
		{From: "carol", To: "alice", Amount: 50},
		{From: "dave", To: "alice", Amount: 20},
		{From: "dave", To: "bob", Amount: 30},
	}, result.Settlements)
}

func TestCalculateOptimized_ManualTransferPreNetting(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -500, Method: Cash},
		{Name: "bob", Amount: 500, Method: Cash},
	}
	manual := []Transfer{{From: "alice", To: "bob", Amount: 100}}

	withManual := CalculateOptimized(balances, manual)

	// equivalent to adjusting the balances by hand before the greedy match
	adjusted := []PlayerBalance{
		{Name: "alice", Amount: -400, Method: Cash},
		{Name: "bob", Amount: 400, Method: Cash},
	}
	preAdjusted := CalculateOptimized(adjusted, nil)

	a.Equal(preAdjusted.Settlements, withManual.Settlements)
	a.Equal([]Settlement{{From: "alice", To: "bob", Amount: 400}}, withManual.Settlements)
}

func TestCalculateOptimized_ManualTransferFullySettles(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -100},
		{Name: "bob", Amount: 100},
	}
	manual := []Transfer{{From: "alice", To: "bob", Amount: 100}}

	result := CalculateOptimized(balances, manual)
	a.Empty(result.Settlements)
}

func TestCalculateOptimized_UnknownManualTransferNames(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -100},
		{Name: "bob", Amount: 100},
	}
	manual := []Transfer{
		{From: "mallory", To: "bob", Amount: 50},
		{From: "alice", To: "trent", Amount: 25},
	}

	result := CalculateOptimized(balances, manual)
	a.Equal(manual, result.Skipped)

	// the skipped transfers must not have changed anyone's balance
	a.Equal([]Settlement{{From: "alice", To: "bob", Amount: 100}}, result.Settlements)
}

func TestCalculateOptimized_Imbalance(t *testing.T) {
	a := assert.New(t)

	result := CalculateOptimized([]PlayerBalance{
		{Name: "alice", Amount: -100},
		{Name: "bob", Amount: 50},
	}, nil)

	a.InDelta(-50, result.Imbalance, 0.001)

	balanced := CalculateOptimized([]PlayerBalance{
		{Name: "alice", Amount: -100},
		{Name: "bob", Amount: 100},
	}, nil)
	a.Zero(balanced.Imbalance)
}

func TestCalculateOptimized_RoundsAtEmission(t *testing.T) {
	a := assert.New(t)

	result := CalculateOptimized([]PlayerBalance{
		{Name: "alice", Amount: -100.4},
		{Name: "bob", Amount: 100.4},
	}, nil)

	a.Equal([]Settlement{{From: "alice", To: "bob", Amount: 100}}, result.Settlements)
}

func TestCalculateOptimized_SubUnitResidualsIgnored(t *testing.T) {
	a := assert.New(t)

	result := CalculateOptimized([]PlayerBalance{
		{Name: "alice", Amount: -0.005},
		{Name: "bob", Amount: 0.005},
	}, nil)

	a.Empty(result.Settlements)
}

func TestResult_Applied(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -100},
		{Name: "bob", Amount: 100},
	}
	manual := []Transfer{
		{From: "alice", To: "bob", Amount: 10},
		{From: "mallory", To: "bob", Amount: 50},
		{From: "alice", To: "bob", Amount: 5},
		{From: "alice", To: "trent", Amount: 25},
	}

	result := CalculateOptimized(balances, manual)
	a.Len(result.Skipped, 2)

	// only the transfers that were netted in survive, in order
	a.Equal([]Transfer{
		{From: "alice", To: "bob", Amount: 10},
		{From: "alice", To: "bob", Amount: 5},
	}, result.Applied(manual))

	clean := CalculateOptimized(balances, nil)
	a.Empty(clean.Applied(nil))
}

func TestCalculateOptimized_ConfirmedPaymentsPreNetted(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -100},
		{Name: "bob", Amount: 100},
	}

	// a payment already made covers part of the debt; recomputing must only
	// emit the remainder, never the full amount again
	partial := CalculateOptimized(balances, []Transfer{{From: "alice", To: "bob", Amount: 60}})
	a.Equal([]Settlement{{From: "alice", To: "bob", Amount: 40}}, partial.Settlements)

	covered := CalculateOptimized(balances, []Transfer{{From: "alice", To: "bob", Amount: 100}})
	a.Empty(covered.Settlements)
}

func TestCalculateOptimized_TinyResidualNotEmitted(t *testing.T) {
	a := assert.New(t)

	// above the settled threshold but rounds to zero
	result := CalculateOptimized([]PlayerBalance{
		{Name: "alice", Amount: -0.3},
		{Name: "bob", Amount: 0.3},
	}, nil)

	a.Empty(result.Settlements)
	a.Zero(result.Imbalance)
}

func TestCalculateOptimized_EmptyBalances(t *testing.T) {
	a := assert.New(t)

	result := CalculateOptimized(nil, nil)
	a.Empty(result.Settlements)
	a.Empty(result.Skipped)
	a.Zero(result.Imbalance)
}

func TestCalculateStandard(t *testing.T) {
	a := assert.New(t)

	balances := []PlayerBalance{
		{Name: "alice", Amount: -500, Method: Cash},
		{Name: "bob", Amount: 300, Method: Digital},
		{Name: "carol", Amount: 200, Method: Cash},
	}

	result := CalculateStandard(balances, nil)

	// a single pool-agnostic pass: the largest creditor is paid first
	a.Equal([]Settlement{
		{From: "alice", To: "bob", Amount: 300},
		{From: "alice", To: "carol", Amount: 200},
	}, result.Settlements)

	nets := netFromSettlements(result.Settlements)
	for _, b := range balances {
		a.InDelta(b.Amount, nets[b.Name], 1, b.Name)
	}
}

func TestCalculateOptimized_ZeroSumProperty(t *testing.T) {
	a := assert.New(t)

	runTest := func(t *testing.T, balances []PlayerBalance) {
		t.Helper()

		result := CalculateOptimized(balances, nil)
		nets := netFromSettlements(result.Settlements)
		for _, b := range balances {
			a.InDelta(b.Amount, nets[b.Name], 1, b.Name)
		}
	}

	runTest(t, []PlayerBalance{
		{Name: "a", Amount: -250, Method: Cash},
		{Name: "b", Amount: -250, Method: Digital},
		{Name: "c", Amount: 100, Method: Cash},
		{Name: "d", Amount: 400, Method: Digital},
	})

	runTest(t, []PlayerBalance{
		{Name: "a", Amount: -33, Method: Cash},
		{Name: "b", Amount: -67, Method: Cash},
		{Name: "c", Amount: 100, Method: Digital},
	})

	runTest(t, []PlayerBalance{
		{Name: "a", Amount: -1000},
		{Name: "b", Amount: 999},
		{Name: "c", Amount: 1},
	})
}
