package ledger

// Expense is the slice of an expense record the engine needs for balance
// aggregation. Callers supply expenses for one group in creation order.
type Expense struct {
	ID      string
	PayerID string
	Amount  int64
}

// ExpenseSplit is one user's owed portion of an expense.
type ExpenseSplit struct {
	ExpenseID string
	UserID    string
	Amount    int64
}

// Settlement is a recorded payment from a debtor to a creditor.
type Settlement struct {
	FromUserID string
	ToUserID   string
	Amount     int64
}

// Balance is one user's net position: positive means the group owes them,
// negative means they owe the group.
type Balance struct {
	UserID    string
	NetAmount int64
}

// Balances maps users to net amounts while preserving the order in which
// users first appeared in the history. The order is part of the contract:
// SuggestSettlements walks debtors and creditors in exactly this order, so
// it determines which creditor a debtor is matched against first.
type Balances struct {
	order []string
	net   map[string]int64
}

func newBalances() *Balances {
	return &Balances{net: make(map[string]int64)}
}

func (b *Balances) add(userID string, delta int64) {
	if _, ok := b.net[userID]; !ok {
		b.order = append(b.order, userID)
	}
	b.net[userID] += delta
}

// Net returns the user's net amount, zero for unknown users.
func (b *Balances) Net(userID string) int64 {
	return b.net[userID]
}

// Entries returns all balances in first-appearance order.
func (b *Balances) Entries() []Balance {
	entries := make([]Balance, len(b.order))
	for i, userID := range b.order {
		entries[i] = Balance{UserID: userID, NetAmount: b.net[userID]}
	}
	return entries
}

// AggregateBalances folds expenses, splits, and settlements into per-user net
// balances: the payer is credited each expense amount, each split user is
// debited their share, and a settlement credits the payer (from) and debits
// the receiver (to). Over a complete, internally consistent snapshot the net
// amounts always sum to zero.
func AggregateBalances(expenses []Expense, splits []ExpenseSplit, settlements []Settlement) *Balances {
	balances := newBalances()
	for _, e := range expenses {
		balances.add(e.PayerID, e.Amount)
	}
	for _, s := range splits {
		balances.add(s.UserID, -s.Amount)
	}
	for _, s := range settlements {
		balances.add(s.FromUserID, s.Amount)
		balances.add(s.ToUserID, -s.Amount)
	}
	return balances
}
