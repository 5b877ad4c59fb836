package sync

import (
	"context"
	"fmt"
	stdsync "sync"

	"connectrealm/internal/post"
	"connectrealm/internal/social"
	"connectrealm/internal/store"
	"connectrealm/internal/sync/optimistic"
)

// FeedView is a viewer's paginated feed with optimistic like toggling. The
// predicted counter change is shown immediately, rolled back if the write
// fails, and reconciled against the store once it settles.
type FeedView struct {
	posts    post.PostService
	socials  social.SocialService
	viewerID string
	pager    *Pager[*post.PostView]
	cache    *Cache

	mu       stdsync.Mutex
	inflight map[string]struct{}
}

func NewFeedView(posts post.PostService, socials social.SocialService, cache *Cache, viewerID string, pageSize int) *FeedView {
	v := &FeedView{
		posts:    posts,
		socials:  socials,
		viewerID: viewerID,
		cache:    cache,
		inflight: make(map[string]struct{}),
	}
	v.pager = NewPager(v.fetch, func(p *post.PostView) string { return p.ID }, pageSize)
	return v
}

func (v *FeedView) fetch(ctx context.Context, page store.Page) ([]*post.PostView, int64, error) {
	version := v.cache.NextVersion()
	feed, err := v.posts.Feed(ctx, v.viewerID, page)
	if err != nil {
		return nil, 0, err
	}
	key := CacheKey("feed", map[string]interface{}{"viewer": v.viewerID, "page": page.Number})
	v.cache.PutIfNewer(key, feed, version)
	return feed.Posts, feed.Total, nil
}

func (v *FeedView) Load(ctx context.Context) error     { return v.pager.LoadFirst(ctx) }
func (v *FeedView) LoadMore(ctx context.Context) error { return v.pager.LoadNext(ctx) }
func (v *FeedView) Posts() []*post.PostView            { return v.pager.Items() }
func (v *FeedView) State() State                       { return v.pager.State() }
func (v *FeedView) HasMore() bool                      { return v.pager.HasNext() }

// ToggleLike flips the viewer's like on a post. A second toggle for the
// same post while the first is settling is rejected, so a double click can
// never move the counter twice.
func (v *FeedView) ToggleLike(ctx context.Context, postID string) error {
	if v.viewerID == "" {
		return store.ErrAuthRequired
	}

	v.mu.Lock()
	if _, busy := v.inflight[postID]; busy {
		v.mu.Unlock()
		return fmt.Errorf("%w: like already settling for this post", store.ErrInvalidOperation)
	}
	v.inflight[postID] = struct{}{}
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		delete(v.inflight, postID)
		v.mu.Unlock()
	}()

	current, ok := v.pager.Find(postID)
	if !ok {
		return store.ErrNotFound
	}
	liking := !current.UserHasLiked

	err := optimistic.Apply(
		func() *post.PostView { row, _ := v.pager.Find(postID); return row },
		func(row *post.PostView) { v.pager.Update(row) },
		func(row *post.PostView) *post.PostView {
			predicted := *row
			if liking {
				predicted.UserHasLiked = true
				predicted.LikesCount++
			} else {
				predicted.UserHasLiked = false
				if predicted.LikesCount > 0 {
					predicted.LikesCount--
				}
			}
			return &predicted
		},
		func() error {
			if liking {
				return v.socials.Like(ctx, v.viewerID, social.TargetPost, postID)
			}
			return v.socials.Unlike(ctx, v.viewerID, social.TargetPost, postID)
		},
	)

	// Reconcile whether the commit landed or rolled back: either way the
	// cached row may have drifted from the store's counters.
	v.reconcile(ctx, postID)
	return err
}

// reconcile refetches one post so the view converges on the store's
// counters rather than the local prediction.
func (v *FeedView) reconcile(ctx context.Context, postID string) {
	fresh, err := v.posts.GetPost(ctx, v.viewerID, postID)
	if err != nil {
		return
	}
	v.pager.Update(fresh)
	v.cache.InvalidateEntity("feed")
}
