package ledger

// ValidateSettlement authorizes a proposed transfer against the group's
// current balances and participation history. Checks run in order and the
// first failure wins: the amount must be positive, a user cannot settle with
// themself, the from-user must currently owe money while the to-user is owed,
// the pair must share expense history, and the amount may not exceed the
// outstanding amount min(-fromNet, toNet).
//
// Identity resolution and membership checks are the caller's job; both users
// are assumed to be resolved, active members of the group.
func ValidateSettlement(balances *Balances, graph *ParticipationGraph, fromUserID, toUserID string, amount int64) error {
	if amount <= 0 {
		return &Error{Code: CodeInvalidSettlementAmount, Amount: amount}
	}
	if fromUserID == toUserID {
		return &Error{Code: CodeInvalidSettlementUsers, UserID: fromUserID}
	}

	fromNet := balances.Net(fromUserID)
	toNet := balances.Net(toUserID)
	if fromNet >= 0 || toNet <= 0 {
		return &Error{Code: CodeInvalidSettlementDirection, UserID: fromUserID}
	}
	if !graph.HasEdge(fromUserID, toUserID) {
		return &Error{Code: CodeNoSharedExpenseHistory, UserID: fromUserID}
	}

	outstanding := min(-fromNet, toNet)
	if amount > outstanding {
		return &Error{Code: CodeAmountExceedsOutstanding, Amount: outstanding}
	}
	return nil
}
