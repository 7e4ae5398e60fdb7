package httpapi

import (
	"net/http"

	"github.com/nkhatri/splitkaro/internal/middleware"
	"github.com/nkhatri/splitkaro/internal/service"
)

type splitEntry struct {
	Email string `json:"email"`
	Value int64  `json:"value,omitempty"`
}

type expenseRequest struct {
	Description string       `json:"description"`
	Amount      int64        `json:"amount"`
	SplitKind   string       `json:"splitKind"`
	PaidBy      string       `json:"paidBy"`
	Splits      []splitEntry `json:"splits"`
}

type expenseSplitResponse struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

type expenseResponse struct {
	ID          string                 `json:"id"`
	GroupID     string                 `json:"groupId"`
	PayerID     string                 `json:"payerId"`
	Description string                 `json:"description"`
	Amount      int64                  `json:"amount"`
	SplitKind   string                 `json:"splitKind"`
	CreatedAt   int64                  `json:"createdAt"`
	Splits      []expenseSplitResponse `json:"splits"`
}

func toExpenseResponse(record *service.ExpenseRecord) expenseResponse {
	resp := expenseResponse{
		ID:          record.Expense.ID,
		GroupID:     record.Expense.GroupID,
		PayerID:     record.Expense.PayerID,
		Description: record.Expense.Description,
		Amount:      record.Expense.Amount,
		SplitKind:   record.Expense.SplitKind,
		CreatedAt:   record.Expense.CreatedAt,
		Splits:      make([]expenseSplitResponse, len(record.Splits)),
	}
	for i, split := range record.Splits {
		resp.Splits[i] = expenseSplitResponse{UserID: split.UserID, Amount: split.Amount}
	}
	return resp
}

func (a *API) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decode(w, r, &req) {
		return
	}

	input := service.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		SplitKind:   req.SplitKind,
		PayerEmail:  req.PaidBy,
		Splits:      make([]service.SplitInput, len(req.Splits)),
	}
	for i, split := range req.Splits {
		input.Splits[i] = service.SplitInput{Email: split.Email, Value: split.Value}
	}

	record, err := a.expenses.AddExpense(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(record))
}

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records, err := a.expenses.ListGroupExpenses(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]expenseResponse, len(records))
	for i, record := range records {
		resp[i] = toExpenseResponse(record)
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": resp})
}
