package ledger

import (
	"reflect"
	"testing"
)

// Build balances and a graph from a small history in one go.
func buildScenario(expenses []Expense, splits []ExpenseSplit, settlements []Settlement) (*Balances, *ParticipationGraph) {
	return AggregateBalances(expenses, splits, settlements), BuildParticipationGraph(splits)
}

func TestSuggestSettlements(t *testing.T) {
	// alice paid 90 split three ways: bob and carol each owe 30.
	expenses := []Expense{{ID: "e1", PayerID: "alice", Amount: 90}}
	splits := []ExpenseSplit{
		{ExpenseID: "e1", UserID: "alice", Amount: 30},
		{ExpenseID: "e1", UserID: "bob", Amount: 30},
		{ExpenseID: "e1", UserID: "carol", Amount: 30},
	}

	balances, graph := buildScenario(expenses, splits, nil)
	got := SuggestSettlements(balances, graph)

	want := []Suggestion{
		{FromUserID: "bob", ToUserID: "alice", Amount: 30},
		{FromUserID: "carol", ToUserID: "alice", Amount: 30},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %+v, want %+v", got, want)
	}
}

// A debtor is never matched with a creditor they share no expense history
// with, even when the amounts would line up. The unmatched debt simply stays
// unsuggested.
func TestSuggestSettlementsRespectsParticipation(t *testing.T) {
	// d owes 50 total: 30 to c1's expense, 20 to c2's expense -- but d only
	// co-participated with c1.
	expenses := []Expense{
		{ID: "e1", PayerID: "c1", Amount: 60},
		{ID: "e2", PayerID: "c2", Amount: 40},
	}
	splits := []ExpenseSplit{
		{ExpenseID: "e1", UserID: "c1", Amount: 30},
		{ExpenseID: "e1", UserID: "d", Amount: 30},
		{ExpenseID: "e2", UserID: "c2", Amount: 20},
		{ExpenseID: "e2", UserID: "x", Amount: 20},
	}

	balances, graph := buildScenario(expenses, splits, nil)
	// Sanity: d owes 30, x owes 20, c1 +30, c2 +20.
	if balances.Net("d") != -30 || balances.Net("x") != -20 {
		t.Fatalf("unexpected nets: d=%d x=%d", balances.Net("d"), balances.Net("x"))
	}

	got := SuggestSettlements(balances, graph)
	want := []Suggestion{
		{FromUserID: "d", ToUserID: "c1", Amount: 30},
		{FromUserID: "x", ToUserID: "c2", Amount: 20},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %+v, want %+v", got, want)
	}

	// Now sever x from c2's expense history by rebuilding the graph without
	// e2's co-participation: x's 20 of debt must remain unsuggested.
	isolated := BuildParticipationGraph(splits[:2])
	got = SuggestSettlements(balances, isolated)
	want = []Suggestion{{FromUserID: "d", ToUserID: "c1", Amount: 30}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %+v, want %+v", got, want)
	}
}

// One debtor spanning multiple creditors is split across them in balance
// order, exhausting each creditor before moving on.
func TestSuggestSettlementsSpansCreditors(t *testing.T) {
	expenses := []Expense{
		{ID: "e1", PayerID: "c1", Amount: 30},
		{ID: "e2", PayerID: "c2", Amount: 40},
	}
	splits := []ExpenseSplit{
		{ExpenseID: "e1", UserID: "c1", Amount: 10},
		{ExpenseID: "e1", UserID: "d", Amount: 20},
		{ExpenseID: "e2", UserID: "c2", Amount: 25},
		{ExpenseID: "e2", UserID: "d", Amount: 15},
	}

	balances, graph := buildScenario(expenses, splits, nil)
	got := SuggestSettlements(balances, graph)

	want := []Suggestion{
		{FromUserID: "d", ToUserID: "c1", Amount: 20},
		{FromUserID: "d", ToUserID: "c2", Amount: 15},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %+v, want %+v", got, want)
	}
}

func TestSuggestSettlementsSettledGroup(t *testing.T) {
	expenses := []Expense{{ID: "e1", PayerID: "a", Amount: 40}}
	splits := []ExpenseSplit{
		{ExpenseID: "e1", UserID: "a", Amount: 20},
		{ExpenseID: "e1", UserID: "b", Amount: 20},
	}
	settlements := []Settlement{{FromUserID: "b", ToUserID: "a", Amount: 20}}

	balances, graph := buildScenario(expenses, splits, settlements)
	if got := SuggestSettlements(balances, graph); len(got) != 0 {
		t.Errorf("settled group produced suggestions: %+v", got)
	}
}
