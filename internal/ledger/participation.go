package ledger

// ParticipationGraph is the symmetric "shared an expense" relation over user
// ids. An edge exists between two users when they co-appear in at least one
// expense's splits. Rebuilt fresh from the split snapshot on every query;
// never persisted.
type ParticipationGraph struct {
	adj map[string]map[string]bool
}

// BuildParticipationGraph groups splits by expense and connects every pair of
// an expense's participants with a bidirectional edge. Users never get a
// self-edge, and a user who never shared an expense has no edges at all.
func BuildParticipationGraph(splits []ExpenseSplit) *ParticipationGraph {
	byExpense := make(map[string][]string)
	for _, s := range splits {
		byExpense[s.ExpenseID] = append(byExpense[s.ExpenseID], s.UserID)
	}

	g := &ParticipationGraph{adj: make(map[string]map[string]bool)}
	for _, users := range byExpense {
		for i := 0; i < len(users); i++ {
			for j := i + 1; j < len(users); j++ {
				g.addEdge(users[i], users[j])
				g.addEdge(users[j], users[i])
			}
		}
	}
	return g
}

func (g *ParticipationGraph) addEdge(a, b string) {
	if g.adj[a] == nil {
		g.adj[a] = make(map[string]bool)
	}
	g.adj[a][b] = true
}

// HasEdge reports whether a and b have co-participated in an expense.
// Symmetric by construction.
func (g *ParticipationGraph) HasEdge(a, b string) bool {
	return g.adj[a][b]
}
