package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/dbmysql"
)

type createThreadRequest struct {
	MemberIDs []string `json:"member_ids"`
	IsGroup   bool     `json:"is_group"`
	Name      string   `json:"name"`
}

type sendMessageRequest struct {
	Content dbmysql.MessageContent `json:"content"`
}

type editMessageRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	var req createThreadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	thread, err := s.chats.CreateThread(r.Context(), CallerID(r.Context()), req.MemberIDs, req.IsGroup, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, thread)
}

func (s *Server) handleUserThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := s.chats.UserThreads(r.Context(), CallerID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, threads)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	page, err := s.chats.Messages(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], pageFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, err := s.chats.SendMessage(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, msg)
}

func (s *Server) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	var req editMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, err := s.chats.EditMessage(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, msg)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := s.chats.MarkRead(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
