package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectrealm/internal/common"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/post"
	"connectrealm/internal/store"
	"connectrealm/internal/verse"
)

type stubVerses struct {
	verse.VerseService
	verses map[string]*dbmysql.Verse
	err    error
}

func (s *stubVerses) GetVerse(_ context.Context, _, verseID string) (*dbmysql.Verse, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.verses[verseID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

type stubPosts struct {
	post.PostService
	created *dbmysql.Post
	callers []string
}

func (s *stubPosts) CreatePost(_ context.Context, userID, caption string, content dbmysql.PostContent, visibility dbmysql.PostVisibility) (*dbmysql.Post, error) {
	s.callers = append(s.callers, userID)
	return s.created, nil
}

func newTestServer(verses verse.VerseService, posts post.PostService) (*Server, *common.TokenManager) {
	tokens := common.NewTokenManager("test-secret", time.Hour)
	return NewServer(tokens, nil, nil, posts, nil, nil, nil, nil, verses, nil, nil, nil), tokens
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetVerseStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		stub       *stubVerses
		wantStatus int
	}{
		{
			name:       "found",
			stub:       &stubVerses{verses: map[string]*dbmysql.Verse{"v1": {ID: "v1", Title: "hello"}}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing is 404",
			stub:       &stubVerses{verses: map[string]*dbmysql.Verse{}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "private is 403",
			stub:       &stubVerses{err: fmt.Errorf("%w: verse is private", store.ErrAccessDenied)},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(tt.stub, nil)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/verses/v1", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				var body ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestCreatePostRequiresToken(t *testing.T) {
	posts := &stubPosts{created: &dbmysql.Post{ID: "p1"}}
	srv, tokens := newTestServer(nil, posts)
	router := srv.Router()

	body := func() *bytes.Buffer {
		return bytes.NewBufferString(`{"caption":"hi","content":{"text":"hi"}}`)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/posts", body()))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, posts.callers)

	token, err := tokens.Generate("u1", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body())
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, []string{"u1"}, posts.callers)
}

func TestMalformedBearerIsAnonymousOnPublicRoutes(t *testing.T) {
	stub := &stubVerses{verses: map[string]*dbmysql.Verse{"v1": {ID: "v1"}}}
	srv, _ := newTestServer(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verses/v1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
