package service

import (
	"context"
	"testing"

	"github.com/nkhatri/splitkaro/internal/ledger"
)

func TestAddSettlement(t *testing.T) {
	store := newTestStore(t)
	expenseSvc := NewExpenseService(store)
	svc := NewSettlementService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	carol := seedUser(t, store, "carol@example.com", "Carol")
	outsider := seedUser(t, store, "mallory@example.com", "Mallory")
	group := seedGroup(t, store, "Trip", alice, bob, carol)

	// Alice pays 60 split with Bob; Bob pays 40 split with Carol. Nets:
	// Alice +30, Bob -10, Carol -20. Carol and Alice never shared an
	// expense.
	if _, err := expenseSvc.AddExpense(ctx, alice.ID, group.ID, ExpenseInput{
		Description: "Tickets", Amount: 60, SplitKind: "EQUAL", PayerEmail: alice.Email,
		Splits: []SplitInput{{Email: alice.Email, Value: 1}, {Email: bob.Email, Value: 1}},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := expenseSvc.AddExpense(ctx, bob.ID, group.ID, ExpenseInput{
		Description: "Groceries", Amount: 40, SplitKind: "EQUAL", PayerEmail: bob.Email,
		Splits: []SplitInput{{Email: bob.Email, Value: 1}, {Email: carol.Email, Value: 1}},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	tests := []struct {
		name        string
		actor       string
		input       SettlementInput
		wantLedger  ledger.Code
		wantService Code
	}{
		{
			name:       "non-positive amount",
			actor:      bob.ID,
			input:      SettlementInput{FromEmail: bob.Email, ToEmail: alice.Email, Amount: 0},
			wantLedger: ledger.CodeInvalidSettlementAmount,
		},
		{
			name:       "payer and recipient identical",
			actor:      bob.ID,
			input:      SettlementInput{FromEmail: bob.Email, ToEmail: bob.Email, Amount: 10},
			wantLedger: ledger.CodeInvalidSettlementUsers,
		},
		{
			name:        "actor not a member",
			actor:       outsider.ID,
			input:       SettlementInput{FromEmail: bob.Email, ToEmail: alice.Email, Amount: 10},
			wantService: CodeNotGroupMember,
		},
		{
			name:       "unknown payer",
			actor:      bob.ID,
			input:      SettlementInput{FromEmail: "nobody@example.com", ToEmail: alice.Email, Amount: 10},
			wantLedger: ledger.CodeInvalidSettlementUsers,
		},
		{
			name:       "recipient outside the group",
			actor:      bob.ID,
			input:      SettlementInput{FromEmail: bob.Email, ToEmail: outsider.Email, Amount: 10},
			wantLedger: ledger.CodeInvalidSettlementUsers,
		},
		{
			name:       "wrong direction",
			actor:      bob.ID,
			input:      SettlementInput{FromEmail: alice.Email, ToEmail: bob.Email, Amount: 10},
			wantLedger: ledger.CodeInvalidSettlementDirection,
		},
		{
			name:       "no shared expense history",
			actor:      bob.ID,
			input:      SettlementInput{FromEmail: carol.Email, ToEmail: alice.Email, Amount: 10},
			wantLedger: ledger.CodeNoSharedExpenseHistory,
		},
		{
			name:       "amount exceeds outstanding debt",
			actor:      bob.ID,
			input:      SettlementInput{FromEmail: bob.Email, ToEmail: alice.Email, Amount: 11},
			wantLedger: ledger.CodeAmountExceedsOutstanding,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddSettlement(ctx, tt.actor, group.ID, tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantLedger != "" {
				if got := ledger.CodeOf(err); got != tt.wantLedger {
					t.Errorf("ledger code = %q, want %q", got, tt.wantLedger)
				}
			}
			if tt.wantService != "" {
				if got := CodeOf(err); got != tt.wantService {
					t.Errorf("service code = %q, want %q", got, tt.wantService)
				}
			}
		})
	}

	t.Run("full settlement accepted at the boundary", func(t *testing.T) {
		settlement, err := svc.AddSettlement(ctx, bob.ID, group.ID, SettlementInput{
			FromEmail: bob.Email, ToEmail: alice.Email, Amount: 10, Note: "paid in cash",
		})
		if err != nil {
			t.Fatalf("AddSettlement failed: %v", err)
		}
		if settlement.ID == "" {
			t.Fatal("expected settlement ID to be generated")
		}
		if settlement.CreatedBy != bob.ID {
			t.Errorf("CreatedBy = %s, want %s", settlement.CreatedBy, bob.ID)
		}
	})

	t.Run("settled debt cannot be settled again", func(t *testing.T) {
		_, err := svc.AddSettlement(ctx, bob.ID, group.ID, SettlementInput{
			FromEmail: bob.Email, ToEmail: alice.Email, Amount: 1,
		})
		if got := ledger.CodeOf(err); got != ledger.CodeInvalidSettlementDirection {
			t.Errorf("code = %q, want %q", got, ledger.CodeInvalidSettlementDirection)
		}
	})
}

func TestListGroupSettlements(t *testing.T) {
	store := newTestStore(t)
	expenseSvc := NewExpenseService(store)
	svc := NewSettlementService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	outsider := seedUser(t, store, "mallory@example.com", "Mallory")
	group := seedGroup(t, store, "Flat", alice, bob)

	if _, err := expenseSvc.AddExpense(ctx, alice.ID, group.ID, ExpenseInput{
		Description: "Rent", Amount: 100, SplitKind: "EQUAL", PayerEmail: alice.Email,
		Splits: []SplitInput{{Email: alice.Email, Value: 1}, {Email: bob.Email, Value: 1}},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	for _, amount := range []int64{20, 30} {
		if _, err := svc.AddSettlement(ctx, bob.ID, group.ID, SettlementInput{
			FromEmail: bob.Email, ToEmail: alice.Email, Amount: amount,
		}); err != nil {
			t.Fatalf("AddSettlement(%d) failed: %v", amount, err)
		}
	}

	settlements, err := svc.ListGroupSettlements(ctx, alice.ID, group.ID)
	if err != nil {
		t.Fatalf("ListGroupSettlements failed: %v", err)
	}
	if len(settlements) != 2 {
		t.Fatalf("settlements = %d, want 2", len(settlements))
	}
	if settlements[0].Amount != 20 || settlements[1].Amount != 30 {
		t.Errorf("order = [%d, %d], want [20, 30]", settlements[0].Amount, settlements[1].Amount)
	}

	_, err = svc.ListGroupSettlements(ctx, outsider.ID, group.ID)
	if got := CodeOf(err); got != CodeNotGroupMember {
		t.Errorf("code = %q, want %q", got, CodeNotGroupMember)
	}
}
