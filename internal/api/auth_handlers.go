package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type signUpRequest struct {
	Handle      string `json:"handle"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type signInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	creds, err := s.auth.SignUp(r.Context(), req.Handle, req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	log.Info().Str("user_id", creds.User.ID).Str("handle", creds.User.Handle).Msg("User signed up")
	respond(w, http.StatusCreated, creds)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeBody(w, r, &req) {
		return
	}
	creds, err := s.auth.SignIn(r.Context(), req.Login, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, creds)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.SignOut(r.Context(), CallerID(r.Context())); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByID(r.Context(), CallerID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, u)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.auth.UpdatePassword(r.Context(), CallerID(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.auth.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
