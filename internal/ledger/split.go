// Package ledger implements the group expense engine: exact integer split
// computation, net balance aggregation, the co-participation graph, and
// settlement suggestion/validation. Every function is a pure, deterministic
// computation over the snapshot it is handed; persistence, identity
// resolution, and membership checks belong to the caller.
//
// All amounts are int64 minor currency units. The engine never loses or
// invents a unit: splits for an expense always sum to the expense amount, and
// net balances across a group always sum to zero.
package ledger

// SplitKind selects the strategy for dividing an expense among participants.
type SplitKind string

const (
	SplitEqual      SplitKind = "EQUAL"
	SplitExact      SplitKind = "EXACT"
	SplitPercentage SplitKind = "PERCENTAGE"
)

// ParseSplitKind validates a wire-format split kind.
func ParseSplitKind(s string) (SplitKind, error) {
	switch SplitKind(s) {
	case SplitEqual, SplitExact, SplitPercentage:
		return SplitKind(s), nil
	}
	return "", &Error{Code: CodeInvalidSplit}
}

// Participant is one split entry as supplied by the caller. Value must be
// positive for every kind: a weight marker for EQUAL (conventionally 1), an
// exact amount for EXACT, a whole percentage (0-100) for PERCENTAGE.
type Participant struct {
	UserID string
	Value  int64
}

// Share is one participant's computed portion of an expense.
type Share struct {
	UserID string
	Amount int64
}

// ComputeSplits turns a total amount and per-participant weights into exact
// integer shares. Shares always sum to total; any rounding remainder goes to
// the payer. Preconditions are checked before any computation, first
// violation wins, in this order: total > 0, participants non-empty, every
// value > 0, no duplicate users, payer among the participants.
func ComputeSplits(total int64, kind SplitKind, payerID string, participants []Participant) ([]Share, error) {
	if total <= 0 {
		return nil, &Error{Code: CodeInvalidAmount, Amount: total}
	}
	if len(participants) == 0 {
		return nil, &Error{Code: CodeInvalidSplit}
	}
	for _, p := range participants {
		if p.Value <= 0 {
			return nil, &Error{Code: CodeZeroSplitNotAllowed, UserID: p.UserID, Amount: p.Value}
		}
	}
	seen := make(map[string]bool, len(participants))
	payerIncluded := false
	for _, p := range participants {
		if seen[p.UserID] {
			return nil, &Error{Code: CodeDuplicateSplitUser, UserID: p.UserID}
		}
		seen[p.UserID] = true
		if p.UserID == payerID {
			payerIncluded = true
		}
	}
	if !payerIncluded {
		return nil, &Error{Code: CodePayerMustBeParticipant, UserID: payerID}
	}

	var shares []Share
	switch kind {
	case SplitEqual:
		n := int64(len(participants))
		per := total / n
		remainder := total - per*n
		shares = make([]Share, len(participants))
		for i, p := range participants {
			amount := per
			if p.UserID == payerID {
				amount += remainder
			}
			shares[i] = Share{UserID: p.UserID, Amount: amount}
		}

	case SplitExact:
		var sum int64
		for _, p := range participants {
			sum += p.Value
		}
		if sum != total {
			return nil, &Error{Code: CodeInvalidSplitSum, Amount: sum}
		}
		shares = make([]Share, len(participants))
		for i, p := range participants {
			shares[i] = Share{UserID: p.UserID, Amount: p.Value}
		}

	case SplitPercentage:
		var pctSum int64
		for _, p := range participants {
			pctSum += p.Value
		}
		if pctSum != 100 {
			return nil, &Error{Code: CodeInvalidPercentageSum, Amount: pctSum}
		}
		var allocated int64
		shares = make([]Share, len(participants))
		for i, p := range participants {
			amount := total * p.Value / 100
			allocated += amount
			shares[i] = Share{UserID: p.UserID, Amount: amount}
		}
		// Floored percentages under-allocate; the payer absorbs the leftover.
		remainder := total - allocated
		for i := range shares {
			if shares[i].UserID == payerID {
				shares[i].Amount += remainder
			}
		}

	default:
		return nil, &Error{Code: CodeInvalidSplit}
	}

	// Shares must reproduce the total exactly. A mismatch here is a bug in
	// this function, not bad input.
	var check int64
	for _, s := range shares {
		check += s.Amount
	}
	if check != total {
		return nil, &Error{Code: CodeInternalSplitError, Amount: check}
	}

	return shares, nil
}
