package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/group"
)

type createGroupRequest struct {
	Name        string               `json:"name"`
	Handle      string               `json:"handle"`
	Description string               `json:"description"`
	Privacy     dbmysql.GroupPrivacy `json:"privacy"`
}

type updateGroupRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	CoverMedia  *string               `json:"cover_media"`
	Privacy     *dbmysql.GroupPrivacy `json:"privacy"`
	Settings    *dbmysql.JSONMap      `json:"settings"`
}

type memberRoleRequest struct {
	Role dbmysql.GroupRole `json:"role"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Privacy == "" {
		req.Privacy = dbmysql.GroupPublic
	}
	created, err := s.groups.CreateGroup(r.Context(), CallerID(r.Context()), req.Name, req.Handle, req.Description, req.Privacy)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	g, err := s.groups.GetGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, g)
}

func (s *Server) handleMyGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.UserGroups(r.Context(), CallerID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, groups)
}

func (s *Server) handleGroupMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.groups.Members(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, members)
}

func (s *Server) handleSearchGroups(w http.ResponseWriter, r *http.Request) {
	page, err := s.groups.SearchGroups(r.Context(), r.URL.Query().Get("q"), pageFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req updateGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := s.groups.UpdateGroup(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], group.GroupUpdate{
		Name:        req.Name,
		Description: req.Description,
		CoverMedia:  req.CoverMedia,
		Privacy:     req.Privacy,
		Settings:    req.Settings,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.JoinGroup(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.LeaveGroup(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req memberRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	err := s.groups.UpdateMemberRole(r.Context(), CallerID(r.Context()), vars["id"], vars["userID"], req.Role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := s.groups.RemoveMember(r.Context(), CallerID(r.Context()), vars["id"], vars["userID"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
