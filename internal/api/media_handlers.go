package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/media"
)

// Uploads are multipart so clients can stream file bytes alongside metadata.
const maxMultipartMemory = 32 << 20

type attachMediaRequest struct {
	PostID string `json:"post_id"`
}

func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondError(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, "file field required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	uploaded, err := s.medias.Upload(r.Context(), CallerID(r.Context()), media.UploadInput{
		Filename: header.Filename,
		MimeType: mimeType,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, uploaded)
}

func (s *Server) handleAttachMedia(w http.ResponseWriter, r *http.Request) {
	var req attachMediaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := s.medias.AttachToPost(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"], req.PostID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := s.medias.Delete(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
