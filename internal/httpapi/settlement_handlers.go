package httpapi

import (
	"net/http"

	"github.com/nkhatri/splitkaro/internal/middleware"
	"github.com/nkhatri/splitkaro/internal/models"
	"github.com/nkhatri/splitkaro/internal/service"
)

type balanceEntry struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	NetAmount   int64  `json:"netAmount"`
}

type suggestionEntry struct {
	FromUserID string `json:"fromUserId"`
	FromEmail  string `json:"fromEmail"`
	ToUserID   string `json:"toUserId"`
	ToEmail    string `json:"toEmail"`
	Amount     int64  `json:"amount"`
}

type balanceResponse struct {
	Balances    []balanceEntry    `json:"balances"`
	Suggestions []suggestionEntry `json:"suggestions"`
}

func (a *API) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	report, err := a.balances.GetGroupBalances(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := balanceResponse{
		Balances:    make([]balanceEntry, len(report.Balances)),
		Suggestions: make([]suggestionEntry, len(report.Suggestions)),
	}
	for i, mb := range report.Balances {
		resp.Balances[i] = balanceEntry{
			UserID:      mb.UserID,
			Email:       mb.Email,
			DisplayName: mb.DisplayName,
			NetAmount:   mb.NetAmount,
		}
	}
	for i, sg := range report.Suggestions {
		resp.Suggestions[i] = suggestionEntry{
			FromUserID: sg.FromUserID,
			FromEmail:  sg.FromEmail,
			ToUserID:   sg.ToUserID,
			ToEmail:    sg.ToEmail,
			Amount:     sg.Amount,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type settlementRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type settlementResponse struct {
	ID         string `json:"id"`
	GroupID    string `json:"groupId"`
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note,omitempty"`
	CreatedBy  string `json:"createdBy"`
	CreatedAt  int64  `json:"createdAt"`
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:         s.ID,
		GroupID:    s.GroupID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount,
		Note:       s.Note,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt,
	}
}

func (a *API) handleAddSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if !decode(w, r, &req) {
		return
	}

	settlement, err := a.settlements.AddSettlement(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), service.SettlementInput{
		FromEmail: req.From,
		ToEmail:   req.To,
		Amount:    req.Amount,
		Note:      req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (a *API) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := a.settlements.ListGroupSettlements(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		resp[i] = toSettlementResponse(s)
	}
	writeJSON(w, http.StatusOK, map[string]any{"settlements": resp})
}
