package service

import (
	"context"
	"testing"
)

func TestGetGroupBalances(t *testing.T) {
	store := newTestStore(t)
	expenseSvc := NewExpenseService(store)
	svc := NewBalanceService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	carol := seedUser(t, store, "carol@example.com", "Carol")
	outsider := seedUser(t, store, "mallory@example.com", "Mallory")
	group := seedGroup(t, store, "Trip", alice, bob, carol)

	// Alice pays 90 split three ways; Bob pays 30 split with Carol.
	if _, err := expenseSvc.AddExpense(ctx, alice.ID, group.ID, ExpenseInput{
		Description: "Dinner", Amount: 90, SplitKind: "EQUAL", PayerEmail: alice.Email,
		Splits: []SplitInput{{Email: alice.Email, Value: 1}, {Email: bob.Email, Value: 1}, {Email: carol.Email, Value: 1}},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := expenseSvc.AddExpense(ctx, bob.ID, group.ID, ExpenseInput{
		Description: "Cab", Amount: 30, SplitKind: "EQUAL", PayerEmail: bob.Email,
		Splits: []SplitInput{{Email: bob.Email, Value: 1}, {Email: carol.Email, Value: 1}},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	report, err := svc.GetGroupBalances(ctx, carol.ID, group.ID)
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}

	// Alice +60, Bob -30+15=-15, Carol -30-15=-45.
	want := map[string]int64{alice.ID: 60, bob.ID: -15, carol.ID: -45}
	if len(report.Balances) != len(want) {
		t.Fatalf("balances = %d entries, want %d", len(report.Balances), len(want))
	}
	var sum int64
	for _, mb := range report.Balances {
		if mb.NetAmount != want[mb.UserID] {
			t.Errorf("net for %s = %d, want %d", mb.Email, mb.NetAmount, want[mb.UserID])
		}
		if mb.Email == "" || mb.DisplayName == "" {
			t.Errorf("balance entry for %s missing identity", mb.UserID)
		}
		sum += mb.NetAmount
	}
	if sum != 0 {
		t.Errorf("balances sum = %d, want 0", sum)
	}

	// Both debtors share history with Alice, so every unit of debt is
	// suggested toward her.
	suggested := make(map[string]int64)
	for _, sg := range report.Suggestions {
		if sg.ToUserID != alice.ID {
			t.Errorf("suggestion to %s, want all toward %s", sg.ToEmail, alice.Email)
		}
		suggested[sg.FromUserID] += sg.Amount
	}
	if suggested[bob.ID] != 15 || suggested[carol.ID] != 45 {
		t.Errorf("suggested = bob:%d carol:%d, want bob:15 carol:45",
			suggested[bob.ID], suggested[carol.ID])
	}

	t.Run("non-member denied", func(t *testing.T) {
		_, err := svc.GetGroupBalances(ctx, outsider.ID, group.ID)
		if got := CodeOf(err); got != CodeNotGroupMember {
			t.Errorf("code = %q, want %q", got, CodeNotGroupMember)
		}
	})

	t.Run("empty group reports no balances", func(t *testing.T) {
		quiet := seedGroup(t, store, "Quiet", alice)
		report, err := svc.GetGroupBalances(ctx, alice.ID, quiet.ID)
		if err != nil {
			t.Fatalf("GetGroupBalances failed: %v", err)
		}
		if len(report.Balances) != 0 || len(report.Suggestions) != 0 {
			t.Errorf("report = %d balances, %d suggestions, want 0, 0",
				len(report.Balances), len(report.Suggestions))
		}
	})
}

func TestGetGroupBalancesReflectsSettlements(t *testing.T) {
	store := newTestStore(t)
	expenseSvc := NewExpenseService(store)
	settlementSvc := NewSettlementService(store)
	svc := NewBalanceService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	group := seedGroup(t, store, "Flat", alice, bob)

	if _, err := expenseSvc.AddExpense(ctx, alice.ID, group.ID, ExpenseInput{
		Description: "Rent", Amount: 100, SplitKind: "EQUAL", PayerEmail: alice.Email,
		Splits: []SplitInput{{Email: alice.Email, Value: 1}, {Email: bob.Email, Value: 1}},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := settlementSvc.AddSettlement(ctx, bob.ID, group.ID, SettlementInput{
		FromEmail: bob.Email, ToEmail: alice.Email, Amount: 50,
	}); err != nil {
		t.Fatalf("AddSettlement failed: %v", err)
	}

	report, err := svc.GetGroupBalances(ctx, alice.ID, group.ID)
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}
	for _, mb := range report.Balances {
		if mb.NetAmount != 0 {
			t.Errorf("net for %s = %d, want 0", mb.Email, mb.NetAmount)
		}
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want 0 for a settled group", len(report.Suggestions))
	}
}
