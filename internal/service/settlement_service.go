package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nkhatri/splitkaro/internal/ledger"
	"github.com/nkhatri/splitkaro/internal/models"
	"github.com/nkhatri/splitkaro/internal/storage"
)

// SettlementService records settlements and lists a group's settlement
// history. A settlement is only accepted when the group's current balances
// and shared expense history permit it.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// SettlementInput describes a settlement to record, keyed by email.
type SettlementInput struct {
	FromEmail string
	ToEmail   string
	Amount    int64
	Note      string
}

// AddSettlement validates and records a settlement on behalf of actorUserID.
// Checks run in a fixed order: amount, distinct users, actor membership,
// user resolution and membership, then the ledger checks (direction, shared
// history, outstanding debt) against a fresh snapshot.
func (s *SettlementService) AddSettlement(ctx context.Context, actorUserID, groupID string, input SettlementInput) (*models.Settlement, error) {
	if input.Amount <= 0 {
		return nil, &ledger.Error{Code: ledger.CodeInvalidSettlementAmount, Amount: input.Amount}
	}
	if input.FromEmail == input.ToEmail {
		return nil, &ledger.Error{Code: ledger.CodeInvalidSettlementUsers}
	}

	if _, err := activeMember(ctx, s.store, groupID, actorUserID); err != nil {
		return nil, err
	}

	from, err := s.resolveMember(ctx, groupID, input.FromEmail)
	if err != nil {
		return nil, err
	}
	to, err := s.resolveMember(ctx, groupID, input.ToEmail)
	if err != nil {
		return nil, err
	}

	expenses, splits, settlements, err := loadSnapshot(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	balances := ledger.AggregateBalances(expenses, splits, settlements)
	graph := ledger.BuildParticipationGraph(splits)

	if err := ledger.ValidateSettlement(balances, graph, from.ID, to.ID, input.Amount); err != nil {
		return nil, err
	}

	settlement := &models.Settlement{
		GroupID:    groupID,
		FromUserID: from.ID,
		ToUserID:   to.ID,
		Amount:     input.Amount,
		CreatedBy:  actorUserID,
		Note:       input.Note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	slog.Info("Settlement recorded",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"from", from.ID,
		"to", to.ID,
		"amount", settlement.Amount,
		"created_by", actorUserID,
	)
	return settlement, nil
}

// resolveMember looks up a user by email and confirms active membership.
// Either failure is reported as invalid settlement users, not as a lookup
// error: the settlement itself names someone who cannot take part in it.
func (s *SettlementService) resolveMember(ctx context.Context, groupID, email string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, &ledger.Error{Code: ledger.CodeInvalidSettlementUsers}
	}
	member, err := s.store.GetMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member.Active() {
		return nil, &ledger.Error{Code: ledger.CodeInvalidSettlementUsers}
	}
	return user, nil
}

// ListGroupSettlements returns the group's settlements ordered by creation
// time ascending. The caller must be an active member.
func (s *SettlementService) ListGroupSettlements(ctx context.Context, userID, groupID string) ([]*models.Settlement, error) {
	if _, err := activeMember(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}
