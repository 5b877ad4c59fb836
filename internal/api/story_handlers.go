package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/dbmysql"
)

type createStoryRequest struct {
	MediaID string          `json:"media_id"`
	Privacy dbmysql.JSONMap `json:"privacy"`
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.stories.CreateStory(r.Context(), CallerID(r.Context()), req.MediaID, req.Privacy)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleActiveStories(w http.ResponseWriter, r *http.Request) {
	stories, err := s.stories.ActiveStories(r.Context(), CallerID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, stories)
}

func (s *Server) handleViewStory(w http.ResponseWriter, r *http.Request) {
	if err := s.stories.ViewStory(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	if err := s.stories.DeleteStory(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
