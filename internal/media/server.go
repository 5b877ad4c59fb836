package media

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"connectrealm/internal/dbmongo"
)

// FileServer streams stored blobs over HTTP. Keys look like
// "media/<objectid>", so the route captures bucket and id.
type FileServer struct {
	blobs *dbmongo.BlobStorage
}

func NewFileServer(blobs *dbmongo.BlobStorage) *FileServer {
	return &FileServer{blobs: blobs}
}

func (s *FileServer) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/media/{bucket}/{fileID}", s.serveFile).Methods(http.MethodGet)
	router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	return router
}

func (s *FileServer) serveFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["bucket"] + "/" + vars["fileID"]

	reader, info, err := s.blobs.Download(r.Context(), key)
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	contentType := info.MimeType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(info.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size))

	if _, err := io.Copy(w, reader); err != nil {
		log.Error().Err(err).Str("key", key).Msg("streaming file failed")
	}
}

func (s *FileServer) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
