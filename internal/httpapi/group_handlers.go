package httpapi

import (
	"net/http"

	"github.com/nkhatri/splitkaro/internal/middleware"
	"github.com/nkhatri/splitkaro/internal/models"
)

type groupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
}

type memberResponse struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
	Role    string `json:"role"`
}

func toMemberResponse(m *models.GroupMember) memberResponse {
	return memberResponse{GroupID: m.GroupID, UserID: m.UserID, Role: string(m.Role)}
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_GROUP_NAME")
		return
	}

	group, err := a.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (a *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := a.groups.GetGroup(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

type memberRequest struct {
	Email string `json:"email"`
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decode(w, r, &req) {
		return
	}

	member, err := a.groups.AddMember(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

func (a *API) handlePromoteMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decode(w, r, &req) {
		return
	}

	member, err := a.groups.PromoteToAdmin(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

func (a *API) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decode(w, r, &req) {
		return
	}

	if err := a.groups.RemoveMember(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), req.Email); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	if err := a.groups.LeaveGroup(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
