package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/post"
)

type createPostRequest struct {
	Caption    string                 `json:"caption"`
	Content    dbmysql.PostContent    `json:"content"`
	Visibility dbmysql.PostVisibility `json:"visibility"`
}

type updatePostRequest struct {
	Caption    *string                 `json:"caption"`
	Content    *dbmysql.PostContent    `json:"content"`
	Visibility *dbmysql.PostVisibility `json:"visibility"`
}

type togglePinRequest struct {
	Pinned bool `json:"pinned"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Visibility == "" {
		req.Visibility = dbmysql.VisibilityPublic
	}
	created, err := s.posts.CreatePost(r.Context(), CallerID(r.Context()), req.Caption, req.Content, req.Visibility)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	view, err := s.posts.GetPost(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.posts.Feed(r.Context(), CallerID(r.Context()), pageFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, feed)
}

func (s *Server) handleUserPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := s.posts.UserPosts(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], pageFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, feed)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req updatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := s.posts.UpdatePost(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], post.PostUpdate{
		Caption:    req.Caption,
		Content:    req.Content,
		Visibility: req.Visibility,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.posts.DeletePost(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	var req togglePinRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.posts.TogglePin(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], req.Pinned); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
