package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"connectrealm/internal/user"
)

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	u, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, u)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.users.GetStats(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, stats)
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 20
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 && n <= 50 {
		limit = n
	}
	users, err := s.users.Search(r.Context(), query, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, users)
}

type profileUpdateRequest struct {
	DisplayName *string  `json:"display_name"`
	Handle      *string  `json:"handle"`
	AvatarURL   *string  `json:"avatar_url"`
	Headline    *string  `json:"headline"`
	Bio         *string  `json:"bio"`
	Location    *string  `json:"location"`
	Website     *string  `json:"website"`
	Skills      []string `json:"skills"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	callerID := CallerID(r.Context())
	updated, err := s.users.UpdateProfile(r.Context(), callerID, callerID, user.ProfileUpdate{
		DisplayName: req.DisplayName,
		Handle:      req.Handle,
		AvatarURL:   req.AvatarURL,
		Headline:    req.Headline,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
		Skills:      req.Skills,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	if err := s.socials.Follow(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	if err := s.socials.Unfollow(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request) {
	ids, err := s.socials.Followers(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, ids)
}

func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	ids, err := s.socials.Following(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, ids)
}
