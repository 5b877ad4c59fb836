package story

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/social"
	"connectrealm/internal/store"
)

// storyTTL is the lifetime of a story. Expiry is computed here and nowhere
// else; callers never supply their own expires_at.
const storyTTL = 24 * time.Hour

const cleanerInterval = 10 * time.Minute

type StoryService interface {
	CreateStory(ctx context.Context, userID, mediaID string, privacy dbmysql.JSONMap) (*dbmysql.Story, error)
	// ActiveStories returns unexpired stories from the viewer and everyone
	// they follow.
	ActiveStories(ctx context.Context, viewerID string) ([]*dbmysql.Story, error)
	UserStories(ctx context.Context, userID string) ([]*dbmysql.Story, error)
	ViewStory(ctx context.Context, viewerID, storyID string) error
	DeleteStory(ctx context.Context, userID, storyID string) error
	PurgeExpired(ctx context.Context) (int64, error)
	// StartCleaner runs the expiry sweep every ten minutes until ctx is done.
	StartCleaner(ctx context.Context)
}

type storyService struct {
	stories StoryRepository
	follows social.FollowRepository
	now     func() time.Time
}

func NewStoryService(stories StoryRepository, follows social.FollowRepository) StoryService {
	return &storyService{
		stories: stories,
		follows: follows,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *storyService) CreateStory(ctx context.Context, userID, mediaID string, privacy dbmysql.JSONMap) (*dbmysql.Story, error) {
	if userID == "" {
		return nil, store.ErrAuthRequired
	}

	created := s.now()
	story := &dbmysql.Story{
		ID:        uuid.New().String(),
		UserID:    userID,
		MediaID:   mediaID,
		CreatedAt: created,
		ExpiresAt: created.Add(storyTTL),
		Privacy:   privacy,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, store.Classify(err)
	}
	return story, nil
}

func (s *storyService) ActiveStories(ctx context.Context, viewerID string) ([]*dbmysql.Story, error) {
	if viewerID == "" {
		return nil, store.ErrAuthRequired
	}

	userIDs, err := s.follows.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, store.Classify(err)
	}
	userIDs = append(userIDs, viewerID)

	stories, err := s.stories.ActiveByUsers(ctx, userIDs, s.now())
	if err != nil {
		return nil, store.Classify(err)
	}
	if stories == nil {
		stories = []*dbmysql.Story{}
	}
	return stories, nil
}

func (s *storyService) UserStories(ctx context.Context, userID string) ([]*dbmysql.Story, error) {
	stories, err := s.stories.ByUser(ctx, userID, s.now())
	if err != nil {
		return nil, store.Classify(err)
	}
	if stories == nil {
		stories = []*dbmysql.Story{}
	}
	return stories, nil
}

func (s *storyService) ViewStory(ctx context.Context, viewerID, storyID string) error {
	if viewerID == "" {
		return store.ErrAuthRequired
	}

	story, err := s.stories.ByID(ctx, storyID)
	if err != nil {
		return store.Classify(err)
	}
	if !story.ExpiresAt.After(s.now()) {
		return store.ErrNotFound
	}
	// The owner opening their own story does not count as a view.
	if story.UserID == viewerID {
		return nil
	}
	return store.Classify(s.stories.IncrementViews(ctx, storyID))
}

func (s *storyService) DeleteStory(ctx context.Context, userID, storyID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	deleted, err := s.stories.DeleteOwned(ctx, storyID, userID)
	if err != nil {
		return store.Classify(err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *storyService) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.stories.DeleteExpired(ctx, s.now())
	return purged, store.Classify(err)
}

func (s *storyService) StartCleaner(ctx context.Context) {
	ticker := time.NewTicker(cleanerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := s.PurgeExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("expired story sweep failed")
				continue
			}
			if purged > 0 {
				log.Info().Int64("purged", purged).Msg("removed expired stories")
			}
		}
	}
}
