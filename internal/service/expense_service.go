package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nkhatri/splitkaro/internal/ledger"
	"github.com/nkhatri/splitkaro/internal/models"
	"github.com/nkhatri/splitkaro/internal/storage"
)

// ExpenseService records expenses and lists a group's expense history.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// SplitInput is one participant entry of a new expense, keyed by email.
// Value must be positive for every split kind: a weight marker for EQUAL
// (conventionally 1), an exact minor-unit amount for EXACT, a whole
// percentage for PERCENTAGE.
type SplitInput struct {
	Email string
	Value int64
}

// ExpenseInput describes a new expense to record.
type ExpenseInput struct {
	Description string
	Amount      int64
	SplitKind   string
	PayerEmail  string
	Splits      []SplitInput
}

// ExpenseRecord is a stored expense together with its normalized splits.
type ExpenseRecord struct {
	Expense *models.Expense
	Splits  []*models.ExpenseSplit
}

// AddExpense validates and records an expense on behalf of actorUserID.
// Amount and split-shape errors surface as ledger errors; identity and
// membership errors surface as service errors. Checks run in a fixed order
// so a request with several problems always reports the same one.
func (s *ExpenseService) AddExpense(ctx context.Context, actorUserID, groupID string, input ExpenseInput) (*ExpenseRecord, error) {
	if input.Amount <= 0 {
		return nil, &ledger.Error{Code: ledger.CodeInvalidAmount, Amount: input.Amount}
	}
	if len(input.Splits) == 0 {
		return nil, &ledger.Error{Code: ledger.CodeInvalidSplit}
	}

	if _, err := activeMember(ctx, s.store, groupID, actorUserID); err != nil {
		return nil, err
	}

	payer, err := s.store.GetUserByEmail(ctx, input.PayerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to look up payer: %w", err)
	}
	if payer == nil {
		return nil, &Error{Code: CodePayerNotFound, Detail: input.PayerEmail}
	}
	payerMember, err := s.store.GetMember(ctx, groupID, payer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check payer membership: %w", err)
	}
	if !payerMember.Active() {
		return nil, &Error{Code: CodePayerNotMember, Detail: input.PayerEmail}
	}

	participants := make([]ledger.Participant, 0, len(input.Splits))
	for _, split := range input.Splits {
		user, err := s.store.GetUserByEmail(ctx, split.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up split user: %w", err)
		}
		if user == nil {
			return nil, &Error{Code: CodeInvalidSplitUser, Detail: split.Email}
		}
		member, err := s.store.GetMember(ctx, groupID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check split user membership: %w", err)
		}
		if !member.Active() {
			return nil, &Error{Code: CodeInvalidSplitUser, Detail: split.Email}
		}
		participants = append(participants, ledger.Participant{UserID: user.ID, Value: split.Value})
	}

	kind, err := ledger.ParseSplitKind(input.SplitKind)
	if err != nil {
		return nil, err
	}

	shares, err := ledger.ComputeSplits(input.Amount, kind, payer.ID, participants)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     groupID,
		PayerID:     payer.ID,
		Description: input.Description,
		Amount:      input.Amount,
		SplitKind:   string(kind),
	}
	splits := make([]*models.ExpenseSplit, len(shares))
	for i, share := range shares {
		splits[i] = &models.ExpenseSplit{
			UserID: share.UserID,
			Amount: share.Amount,
		}
	}

	if err := s.store.CreateExpense(ctx, expense, splits); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Info("Expense recorded",
		"group_id", groupID,
		"expense_id", expense.ID,
		"payer_id", payer.ID,
		"amount", expense.Amount,
		"split_kind", expense.SplitKind,
		"created_by", actorUserID,
	)
	return &ExpenseRecord{Expense: expense, Splits: splits}, nil
}

// ListGroupExpenses returns the group's expenses with their splits, ordered
// by creation time ascending. The caller must be an active member.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, userID, groupID string) ([]*ExpenseRecord, error) {
	if _, err := activeMember(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	splits, err := s.store.ListSplitsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	byExpense := make(map[string][]*models.ExpenseSplit, len(expenses))
	for _, split := range splits {
		byExpense[split.ExpenseID] = append(byExpense[split.ExpenseID], split)
	}

	records := make([]*ExpenseRecord, len(expenses))
	for i, expense := range expenses {
		records[i] = &ExpenseRecord{Expense: expense, Splits: byExpense[expense.ID]}
	}
	return records, nil
}
