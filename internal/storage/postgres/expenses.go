package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkhatri/splitkaro/internal/models"
)

// CreateExpense persists an expense and its splits in a single transaction.
func (s *PostgresStore) CreateExpense(ctx context.Context, expense *models.Expense, splits []*models.ExpenseSplit) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO expenses (id, group_id, payer_id, description, amount, split_kind, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		expense.ID, expense.GroupID, expense.PayerID, expense.Description,
		expense.Amount, expense.SplitKind, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range splits {
		split.ExpenseID = expense.ID
		_, err = tx.Exec(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount, position) VALUES ($1, $2, $3, $4)",
			split.ExpenseID, split.UserID, split.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpensesByGroup retrieves all expenses for a group, oldest first.
func (s *PostgresStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, group_id, payer_id, description, amount, split_kind, created_at
		 FROM expenses WHERE group_id = $1 ORDER BY created_at ASC, seq ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.PayerID,
			&expense.Description, &expense.Amount, &expense.SplitKind, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// ListSplitsByGroup retrieves the splits of every expense in a group,
// ordered by the owning expense's creation time.
func (s *PostgresStore) ListSplitsByGroup(ctx context.Context, groupID string) ([]*models.ExpenseSplit, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT es.expense_id, es.user_id, es.amount
		 FROM expense_splits es
		 JOIN expenses e ON e.id = es.expense_id
		 WHERE e.group_id = $1
		 ORDER BY e.created_at ASC, e.seq ASC, es.position ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer rows.Close()

	var splits []*models.ExpenseSplit
	for rows.Next() {
		split := &models.ExpenseSplit{}
		if err := rows.Scan(&split.ExpenseID, &split.UserID, &split.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}
