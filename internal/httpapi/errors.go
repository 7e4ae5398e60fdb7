package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nkhatri/splitkaro/internal/auth"
	"github.com/nkhatri/splitkaro/internal/ledger"
	"github.com/nkhatri/splitkaro/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeErrorCode(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorBody{Error: code})
}

// writeError maps a typed failure to an HTTP status and error code.
// Authorization failures are 403, missing entities 404, credential problems
// 401/409, every other known code 400. Anything untyped is a 500 and gets
// logged; its detail never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	if code := service.CodeOf(err); code != "" {
		writeErrorCode(w, serviceStatus(code), string(code))
		return
	}
	if code := ledger.CodeOf(err); code != "" {
		if code == ledger.CodeInternalSplitError {
			slog.Error("Split invariant violated", "error", err)
			writeErrorCode(w, http.StatusInternalServerError, string(code))
			return
		}
		writeErrorCode(w, http.StatusBadRequest, string(code))
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorCode(w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
	case errors.Is(err, auth.ErrEmailExists):
		writeErrorCode(w, http.StatusConflict, "EMAIL_EXISTS")
	case errors.Is(err, auth.ErrWeakPassword):
		writeErrorCode(w, http.StatusBadRequest, "WEAK_PASSWORD")
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		writeErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED")
	default:
		slog.Error("Request failed", "error", err)
		writeErrorCode(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR")
	}
}

func serviceStatus(code service.Code) int {
	switch code {
	case service.CodeNotGroupMember, service.CodeNotGroupAdmin, service.CodePayerNotMember:
		return http.StatusForbidden
	case service.CodeUserNotFound, service.CodeGroupNotFound:
		return http.StatusNotFound
	default:
		// Includes PAYER_NOT_FOUND: the payer is part of the request body,
		// so a bad payer is a bad request, not a missing resource.
		return http.StatusBadRequest
	}
}
