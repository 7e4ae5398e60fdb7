package ledger

// Suggestion is a proposed transfer that would reduce outstanding debt.
// Suggestions are transient: computed per query, never persisted.
type Suggestion struct {
	FromUserID string
	ToUserID   string
	Amount     int64
}

// SuggestSettlements proposes transfers from debtors to creditors, walking
// both sides in balance order (first appearance in the group history). A
// debtor is only ever matched against creditors they share expense history
// with; debt toward strangers is skipped even when it would balance
// numerically. Because of that constraint some debt can legitimately remain
// unsuggested -- that is an expected outcome, not an error.
func SuggestSettlements(balances *Balances, graph *ParticipationGraph) []Suggestion {
	var creditors []Balance
	var debtors []Balance
	for _, b := range balances.Entries() {
		switch {
		case b.NetAmount > 0:
			creditors = append(creditors, b)
		case b.NetAmount < 0:
			debtors = append(debtors, b)
		}
	}

	remaining := make(map[string]int64, len(creditors))
	for _, c := range creditors {
		remaining[c.UserID] = c.NetAmount
	}

	var suggestions []Suggestion
	for _, debtor := range debtors {
		remainingDebt := -debtor.NetAmount
		for _, creditor := range creditors {
			if remainingDebt == 0 {
				break
			}
			credit := remaining[creditor.UserID]
			if credit == 0 {
				continue
			}
			if !graph.HasEdge(debtor.UserID, creditor.UserID) {
				continue
			}
			pay := min(remainingDebt, credit)
			suggestions = append(suggestions, Suggestion{
				FromUserID: debtor.UserID,
				ToUserID:   creditor.UserID,
				Amount:     pay,
			})
			remainingDebt -= pay
			remaining[creditor.UserID] -= pay
		}
	}
	return suggestions
}
