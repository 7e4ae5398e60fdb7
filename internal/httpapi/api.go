// Package httpapi exposes the services as a JSON REST API under /api/v1.
// Handlers decode requests, call one service method, and encode the result;
// every error is translated to a status code by its typed code, never by
// matching message text.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/nkhatri/splitkaro/internal/auth"
	"github.com/nkhatri/splitkaro/internal/middleware"
	"github.com/nkhatri/splitkaro/internal/service"
)

// API holds the services the handlers dispatch to.
type API struct {
	auth        *service.AuthService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	balances    *service.BalanceService
	settlements *service.SettlementService
}

// New creates the API over the given services.
func New(
	authSvc *service.AuthService,
	groupSvc *service.GroupService,
	expenseSvc *service.ExpenseService,
	balanceSvc *service.BalanceService,
	settlementSvc *service.SettlementService,
) *API {
	return &API{
		auth:        authSvc,
		groups:      groupSvc,
		expenses:    expenseSvc,
		balances:    balanceSvc,
		settlements: settlementSvc,
	}
}

// Routes registers every endpoint on a new mux. Auth endpoints and /health
// are public; everything else requires a valid Bearer token.
func (a *API) Routes(jwtManager *auth.JWTManager) *http.ServeMux {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(jwtManager)

	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("POST /api/v1/auth/register", a.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", a.handleLogin)
	mux.Handle("GET /api/v1/auth/me", authed(http.HandlerFunc(a.handleCurrentUser)))

	mux.Handle("POST /api/v1/groups", authed(http.HandlerFunc(a.handleCreateGroup)))
	mux.Handle("GET /api/v1/groups/{groupID}", authed(http.HandlerFunc(a.handleGetGroup)))
	mux.Handle("POST /api/v1/groups/{groupID}/members", authed(http.HandlerFunc(a.handleAddMember)))
	mux.Handle("DELETE /api/v1/groups/{groupID}/members", authed(http.HandlerFunc(a.handleRemoveMember)))
	mux.Handle("POST /api/v1/groups/{groupID}/members/promote", authed(http.HandlerFunc(a.handlePromoteMember)))
	mux.Handle("POST /api/v1/groups/{groupID}/leave", authed(http.HandlerFunc(a.handleLeaveGroup)))

	mux.Handle("POST /api/v1/groups/{groupID}/expenses", authed(http.HandlerFunc(a.handleAddExpense)))
	mux.Handle("GET /api/v1/groups/{groupID}/expenses", authed(http.HandlerFunc(a.handleListExpenses)))
	mux.Handle("GET /api/v1/groups/{groupID}/balances", authed(http.HandlerFunc(a.handleGetBalances)))
	mux.Handle("POST /api/v1/groups/{groupID}/settlements", authed(http.HandlerFunc(a.handleAddSettlement)))
	mux.Handle("GET /api/v1/groups/{groupID}/settlements", authed(http.HandlerFunc(a.handleListSettlements)))

	return mux
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode parses a JSON request body into dst. A malformed body is the
// caller's fault, reported as 400 INVALID_REQUEST_BODY.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST_BODY")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
