//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"connectrealm/internal/api"
	"connectrealm/internal/auth"
	"connectrealm/internal/chat"
	"connectrealm/internal/config"
	"connectrealm/internal/dbmongo"
	"connectrealm/internal/dbmysql"
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

func InitializeApplication(cfg *config.Config) (*Application, error) {
	wire.Build(
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		provideBlobStorage,
		provideTokenManager,
		realtime.NewBroker,
		realtime.NewHub,
		user.NewUserRepository,
		user.NewProfileRepository,
		user.NewUserService,
		social.NewFollowRepository,
		social.NewLikeRepository,
		social.NewCommentRepository,
		social.NewCounterRepository,
		social.NewSocialService,
		post.NewPostRepository,
		post.NewPostService,
		story.NewStoryRepository,
		story.NewStoryService,
		group.NewGroupRepository,
		group.NewMemberRepository,
		group.NewGroupService,
		chat.NewThreadRepository,
		chat.NewMemberRepository,
		chat.NewMessageRepository,
		chat.NewChatService,
		verse.NewVerseRepository,
		verse.NewVerseService,
		media.NewMediaRepository,
		media.NewMediaService,
		job.NewJobRepository,
		job.NewJobService,
		auth.NewService,
		api.NewServer,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
