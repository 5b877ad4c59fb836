package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"connectrealm/internal/auth"
	"connectrealm/internal/chat"
	"connectrealm/internal/common"
	"connectrealm/internal/group"
	"connectrealm/internal/job"
	"connectrealm/internal/media"
	"connectrealm/internal/post"
	"connectrealm/internal/realtime"
	"connectrealm/internal/social"
	"connectrealm/internal/story"
	"connectrealm/internal/user"
	"connectrealm/internal/verse"
)

// Server wires every service behind one HTTP surface.
type Server struct {
	tokens  *common.TokenManager
	auth    auth.Service
	users   user.UserService
	posts   post.PostService
	socials social.SocialService
	stories story.StoryService
	groups  group.GroupService
	chats   chat.ChatService
	verses  verse.VerseService
	medias  media.MediaService
	jobs    job.JobService
	hub     *realtime.Hub
}

func NewServer(
	tokens *common.TokenManager,
	authSvc auth.Service,
	users user.UserService,
	posts post.PostService,
	socials social.SocialService,
	stories story.StoryService,
	groups group.GroupService,
	chats chat.ChatService,
	verses verse.VerseService,
	medias media.MediaService,
	jobs job.JobService,
	hub *realtime.Hub,
) *Server {
	return &Server{
		tokens:  tokens,
		auth:    authSvc,
		users:   users,
		posts:   posts,
		socials: socials,
		stories: stories,
		groups:  groups,
		chats:   chats,
		verses:  verses,
		medias:  medias,
		jobs:    jobs,
		hub:     hub,
	}
}

// Router builds the full route table. Routes under the authed subrouter
// require a bearer token; the public subrouter resolves one when present.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", s.handleSignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", s.handleSignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", s.handleResetPassword).Methods(http.MethodPost)

	public := api.NewRoute().Subrouter()
	public.Use(MaybeAuthenticate(s.tokens))
	public.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)
	public.HandleFunc("/users/{id}/stats", s.handleUserStats).Methods(http.MethodGet)
	public.HandleFunc("/users/{id}/posts", s.handleUserPosts).Methods(http.MethodGet)
	public.HandleFunc("/users/{id}/verses", s.handleUserVerses).Methods(http.MethodGet)
	public.HandleFunc("/users/{id}/followers", s.handleFollowers).Methods(http.MethodGet)
	public.HandleFunc("/users/{id}/following", s.handleFollowing).Methods(http.MethodGet)
	public.HandleFunc("/users", s.handleSearchUsers).Methods(http.MethodGet)
	public.HandleFunc("/posts/{id}", s.handleGetPost).Methods(http.MethodGet)
	public.HandleFunc("/posts/{id}/comments", s.handleComments).Methods(http.MethodGet)
	public.HandleFunc("/verses", s.handleListVerses).Methods(http.MethodGet)
	public.HandleFunc("/verses/{id}", s.handleGetVerse).Methods(http.MethodGet)
	public.HandleFunc("/groups", s.handleSearchGroups).Methods(http.MethodGet)
	public.HandleFunc("/groups/{id}", s.handleGetGroup).Methods(http.MethodGet)
	public.HandleFunc("/groups/{id}/members", s.handleGroupMembers).Methods(http.MethodGet)
	public.HandleFunc("/jobs", s.handleListJobs).Methods(http.MethodGet)
	public.HandleFunc("/jobs/{id}", s.handleGetJob).Methods(http.MethodGet)
	public.HandleFunc("/companies/{id}", s.handleGetCompany).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(s.tokens))
	authed.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/auth/signout", s.handleSignOut).Methods(http.MethodPost)
	authed.HandleFunc("/auth/password", s.handleUpdatePassword).Methods(http.MethodPut)

	authed.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/feed", s.handleFeed).Methods(http.MethodGet)
	authed.HandleFunc("/posts", s.handleCreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/posts/{id}", s.handleUpdatePost).Methods(http.MethodPut)
	authed.HandleFunc("/posts/{id}", s.handleDeletePost).Methods(http.MethodDelete)
	authed.HandleFunc("/posts/{id}/pin", s.handleTogglePin).Methods(http.MethodPut)
	authed.HandleFunc("/posts/{id}/like", s.handleLikePost).Methods(http.MethodPost)
	authed.HandleFunc("/posts/{id}/like", s.handleUnlikePost).Methods(http.MethodDelete)
	authed.HandleFunc("/posts/{id}/comments", s.handleAddComment).Methods(http.MethodPost)
	authed.HandleFunc("/comments/{id}", s.handleDeleteComment).Methods(http.MethodDelete)

	authed.HandleFunc("/users/{id}/follow", s.handleFollow).Methods(http.MethodPost)
	authed.HandleFunc("/users/{id}/follow", s.handleUnfollow).Methods(http.MethodDelete)

	authed.HandleFunc("/stories", s.handleCreateStory).Methods(http.MethodPost)
	authed.HandleFunc("/stories", s.handleActiveStories).Methods(http.MethodGet)
	authed.HandleFunc("/stories/{id}/view", s.handleViewStory).Methods(http.MethodPost)
	authed.HandleFunc("/stories/{id}", s.handleDeleteStory).Methods(http.MethodDelete)

	authed.HandleFunc("/groups", s.handleCreateGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups/mine", s.handleMyGroups).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{id}", s.handleUpdateGroup).Methods(http.MethodPut)
	authed.HandleFunc("/groups/{id}", s.handleDeleteGroup).Methods(http.MethodDelete)
	authed.HandleFunc("/groups/{id}/join", s.handleJoinGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{id}/leave", s.handleLeaveGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{id}/members/{userID}/role", s.handleUpdateMemberRole).Methods(http.MethodPut)
	authed.HandleFunc("/groups/{id}/members/{userID}", s.handleRemoveMember).Methods(http.MethodDelete)

	authed.HandleFunc("/threads", s.handleCreateThread).Methods(http.MethodPost)
	authed.HandleFunc("/threads", s.handleUserThreads).Methods(http.MethodGet)
	authed.HandleFunc("/threads/{id}/messages", s.handleMessages).Methods(http.MethodGet)
	authed.HandleFunc("/threads/{id}/messages", s.handleSendMessage).Methods(http.MethodPost)
	authed.HandleFunc("/threads/{id}/read", s.handleMarkRead).Methods(http.MethodPost)
	authed.HandleFunc("/messages/{id}", s.handleEditMessage).Methods(http.MethodPut)

	authed.HandleFunc("/verses", s.handleCreateVerse).Methods(http.MethodPost)
	authed.HandleFunc("/verses/{id}", s.handleUpdateVerse).Methods(http.MethodPut)
	authed.HandleFunc("/verses/{id}", s.handleDeleteVerse).Methods(http.MethodDelete)

	authed.HandleFunc("/media", s.handleUploadMedia).Methods(http.MethodPost)
	authed.HandleFunc("/media/{id}/attach", s.handleAttachMedia).Methods(http.MethodPut)
	authed.HandleFunc("/media/{id}", s.handleDeleteMedia).Methods(http.MethodDelete)

	authed.HandleFunc("/companies", s.handleCreateCompany).Methods(http.MethodPost)
	authed.HandleFunc("/jobs", s.handleCreateJob).Methods(http.MethodPost)
	authed.HandleFunc("/jobs/{id}", s.handleDeleteJob).Methods(http.MethodDelete)

	// The websocket endpoint authenticates via query parameter because
	// browsers cannot set headers on websocket dials.
	api.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)

	return r
}
