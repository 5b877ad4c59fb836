package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/social"
)

type addCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	err := s.socials.Like(r.Context(), CallerID(r.Context()), social.TargetPost, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnlikePost(w http.ResponseWriter, r *http.Request) {
	err := s.socials.Unlike(r.Context(), CallerID(r.Context()), social.TargetPost, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	comment, err := s.socials.AddComment(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], req.Content, req.ParentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, comment)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.socials.DeleteComment(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	// threaded=true returns the reply tree instead of the flat list.
	if r.URL.Query().Get("threaded") == "true" {
		tree, err := s.socials.CommentTree(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respond(w, http.StatusOK, tree)
		return
	}
	comments, err := s.socials.Comments(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, comments)
}
