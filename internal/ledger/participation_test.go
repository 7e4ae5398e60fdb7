package ledger

import "testing"

func TestBuildParticipationGraph(t *testing.T) {
	splits := []ExpenseSplit{
		{ExpenseID: "e1", UserID: "alice", Amount: 10},
		{ExpenseID: "e1", UserID: "bob", Amount: 10},
		{ExpenseID: "e2", UserID: "bob", Amount: 5},
		{ExpenseID: "e2", UserID: "carol", Amount: 5},
		{ExpenseID: "e3", UserID: "dave", Amount: 7},
	}

	g := BuildParticipationGraph(splits)

	edges := []struct {
		a, b string
		want bool
	}{
		{"alice", "bob", true},
		{"bob", "carol", true},
		// alice and carol never shared an expense, even though both know bob
		{"alice", "carol", false},
		// dave was alone on e3
		{"dave", "alice", false},
		{"dave", "bob", false},
		// unknown users
		{"alice", "mallory", false},
	}
	for _, e := range edges {
		if got := g.HasEdge(e.a, e.b); got != e.want {
			t.Errorf("HasEdge(%s, %s) = %v, want %v", e.a, e.b, got, e.want)
		}
		if got := g.HasEdge(e.b, e.a); got != e.want {
			t.Errorf("HasEdge(%s, %s) = %v, want %v (symmetry)", e.b, e.a, got, e.want)
		}
	}

	for _, u := range []string{"alice", "bob", "carol", "dave"} {
		if g.HasEdge(u, u) {
			t.Errorf("HasEdge(%s, %s) = true, self-edges must not exist", u, u)
		}
	}
}

func TestBuildParticipationGraphEmpty(t *testing.T) {
	g := BuildParticipationGraph(nil)
	if g.HasEdge("a", "b") {
		t.Error("empty graph should have no edges")
	}
}
