package ledger

import (
	"errors"
	"fmt"
)

// Code identifies a ledger failure. The set is closed: callers switch over
// these constants to map failures to transport responses instead of matching
// on error text.
type Code string

const (
	// Input validation, correctable by the caller.
	CodeInvalidAmount           Code = "INVALID_AMOUNT"
	CodeInvalidSplit            Code = "INVALID_SPLIT"
	CodeZeroSplitNotAllowed     Code = "ZERO_SPLIT_NOT_ALLOWED"
	CodeDuplicateSplitUser      Code = "DUPLICATE_SPLIT_USER"
	CodePayerMustBeParticipant  Code = "PAYER_MUST_BE_PARTICIPANT"
	CodeInvalidSplitSum         Code = "INVALID_SPLIT_SUM"
	CodeInvalidPercentageSum    Code = "INVALID_PERCENTAGE_SUM"
	CodeInvalidSettlementAmount Code = "INVALID_SETTLEMENT_AMOUNT"
	CodeInvalidSettlementUsers  Code = "INVALID_SETTLEMENT_USERS"

	// Domain-state rejections: the input is well-formed but the group's
	// balance history does not permit the operation.
	CodeInvalidSettlementDirection Code = "INVALID_SETTLEMENT_DIRECTION"
	CodeNoSharedExpenseHistory     Code = "NO_SHARED_EXPENSE_HISTORY"
	CodeAmountExceedsOutstanding   Code = "AMOUNT_EXCEEDS_OUTSTANDING"

	// Internal invariant violation: computed shares did not sum to the
	// expense amount. Indicates a defect in the calculator, never bad input.
	CodeInternalSplitError Code = "INTERNAL_SPLIT_ERROR"
)

// Error carries a Code plus the offending identifiers/amounts where they are
// known. It is the only error type the engine returns.
type Error struct {
	Code   Code
	UserID string
	Amount int64
}

func (e *Error) Error() string {
	switch {
	case e.UserID != "" && e.Amount != 0:
		return fmt.Sprintf("%s: user %s, amount %d", e.Code, e.UserID, e.Amount)
	case e.UserID != "":
		return fmt.Sprintf("%s: user %s", e.Code, e.UserID)
	case e.Amount != 0:
		return fmt.Sprintf("%s: amount %d", e.Code, e.Amount)
	default:
		return string(e.Code)
	}
}

// CodeOf extracts the ledger code from err, unwrapping as needed.
// Returns "" if err carries no ledger code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
