package service

import (
	"context"
	"fmt"

	"github.com/nkhatri/splitkaro/internal/ledger"
	"github.com/nkhatri/splitkaro/internal/storage"
)

// BalanceService answers balance and suggestion queries. Balances are never
// stored: every query recomputes from the group's full expense and
// settlement history, so they are always consistent with it.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// MemberBalance is one member's net position, enriched with identity for
// display.
type MemberBalance struct {
	UserID      string
	Email       string
	DisplayName string
	NetAmount   int64
}

// SettlementSuggestion is a proposed transfer, enriched with identity for
// display.
type SettlementSuggestion struct {
	FromUserID string
	FromEmail  string
	ToUserID   string
	ToEmail    string
	Amount     int64
}

// BalanceReport is the full answer to a balance query: every member's net
// position plus a set of suggested settling transfers.
type BalanceReport struct {
	Balances    []MemberBalance
	Suggestions []SettlementSuggestion
}

// loadSnapshot reads a group's complete expense and settlement history in
// engine form.
func loadSnapshot(ctx context.Context, store storage.Store, groupID string) ([]ledger.Expense, []ledger.ExpenseSplit, []ledger.Settlement, error) {
	storedExpenses, err := store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	storedSplits, err := store.ListSplitsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list splits: %w", err)
	}
	storedSettlements, err := store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	expenses := make([]ledger.Expense, len(storedExpenses))
	for i, e := range storedExpenses {
		expenses[i] = ledger.Expense{ID: e.ID, PayerID: e.PayerID, Amount: e.Amount}
	}
	splits := make([]ledger.ExpenseSplit, len(storedSplits))
	for i, s := range storedSplits {
		splits[i] = ledger.ExpenseSplit{ExpenseID: s.ExpenseID, UserID: s.UserID, Amount: s.Amount}
	}
	settlements := make([]ledger.Settlement, len(storedSettlements))
	for i, s := range storedSettlements {
		settlements[i] = ledger.Settlement{FromUserID: s.FromUserID, ToUserID: s.ToUserID, Amount: s.Amount}
	}
	return expenses, splits, settlements, nil
}

// GetGroupBalances computes every member's net balance and suggested
// settling transfers for the group. The caller must be an active member.
func (s *BalanceService) GetGroupBalances(ctx context.Context, userID, groupID string) (*BalanceReport, error) {
	if _, err := activeMember(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}

	expenses, splits, settlements, err := loadSnapshot(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}

	balances := ledger.AggregateBalances(expenses, splits, settlements)
	graph := ledger.BuildParticipationGraph(splits)
	suggestions := ledger.SuggestSettlements(balances, graph)

	entries := balances.Entries()
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.UserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up users: %w", err)
	}

	report := &BalanceReport{
		Balances:    make([]MemberBalance, len(entries)),
		Suggestions: make([]SettlementSuggestion, len(suggestions)),
	}
	for i, entry := range entries {
		mb := MemberBalance{UserID: entry.UserID, NetAmount: entry.NetAmount}
		if user := users[entry.UserID]; user != nil {
			mb.Email = user.Email
			mb.DisplayName = user.DisplayName
		}
		report.Balances[i] = mb
	}
	for i, sg := range suggestions {
		ss := SettlementSuggestion{
			FromUserID: sg.FromUserID,
			ToUserID:   sg.ToUserID,
			Amount:     sg.Amount,
		}
		if user := users[sg.FromUserID]; user != nil {
			ss.FromEmail = user.Email
		}
		if user := users[sg.ToUserID]; user != nil {
			ss.ToEmail = user.Email
		}
		report.Suggestions[i] = ss
	}
	return report, nil
}
