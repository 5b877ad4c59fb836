package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/verse"
)

type createVerseRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
}

type updateVerseRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
}

func (s *Server) handleCreateVerse(w http.ResponseWriter, r *http.Request) {
	var req createVerseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.verses.CreateVerse(r.Context(), CallerID(r.Context()), req.Title, req.Content, req.IsPublic)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleGetVerse(w http.ResponseWriter, r *http.Request) {
	v, err := s.verses.GetVerse(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, v)
}

func (s *Server) handleListVerses(w http.ResponseWriter, r *http.Request) {
	page, err := s.verses.ListVerses(r.Context(), CallerID(r.Context()), pageFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

func (s *Server) handleUserVerses(w http.ResponseWriter, r *http.Request) {
	verses, err := s.verses.UserVerses(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, verses)
}

func (s *Server) handleUpdateVerse(w http.ResponseWriter, r *http.Request) {
	var req updateVerseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.verses.UpdateVerse(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], verse.VerseUpdate{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteVerse(w http.ResponseWriter, r *http.Request) {
	if err := s.verses.DeleteVerse(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
