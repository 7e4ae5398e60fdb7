package models

// Expense is an amount paid by one group member on behalf of a set of
// participants. Immutable after creation.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PayerID is the user who paid the full amount.
	PayerID string

	// Description is a short human-readable note ("Dinner", "Cab").
	Description string

	// Amount is the total paid, in minor currency units.
	Amount int64

	// SplitKind records how the amount was divided (EQUAL, EXACT,
	// PERCENTAGE). Informational after creation; the splits themselves are
	// stored normalized.
	SplitKind string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit is one participant's owed portion of an expense. For any
// expense the split amounts sum exactly to the expense amount.
type ExpenseSplit struct {
	ExpenseID string
	UserID    string
	Amount    int64
}
