package sync

import (
	"context"
	stdsync "sync"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/realtime"
	"connectrealm/internal/store"
	"connectrealm/internal/verse"
)

// VerseView is the live verse listing: paged visible verses with broker
// inserts and updates merged in, plus passthrough mutations.
type VerseView struct {
	verses   verse.VerseService
	viewerID string
	pager    *Pager[*dbmysql.Verse]

	sub       *realtime.Subscription
	done      chan struct{}
	closeOnce stdsync.Once
	wg        stdsync.WaitGroup
}

func NewVerseView(verses verse.VerseService, broker *realtime.Broker, viewerID string, pageSize int) *VerseView {
	v := &VerseView{
		verses:   verses,
		viewerID: viewerID,
		done:     make(chan struct{}),
	}
	v.pager = NewPager(v.fetch, func(vs *dbmysql.Verse) string { return vs.ID }, pageSize)

	v.sub = broker.Subscribe(verse.VersesCollection, func(ev realtime.Event) bool {
		vs, ok := ev.Row.(*dbmysql.Verse)
		return ok && (vs.IsPublic || vs.UserID == viewerID)
	})
	v.wg.Add(1)
	go v.consume()
	return v
}

func (v *VerseView) fetch(ctx context.Context, page store.Page) ([]*dbmysql.Verse, int64, error) {
	vp, err := v.verses.ListVerses(ctx, v.viewerID, page)
	if err != nil {
		return nil, 0, err
	}
	return vp.Verses, vp.Total, nil
}

func (v *VerseView) consume() {
	defer v.wg.Done()
	for {
		select {
		case <-v.done:
			return
		case ev, ok := <-v.sub.C:
			if !ok {
				return
			}
			vs, isVerse := ev.Row.(*dbmysql.Verse)
			if !isVerse {
				continue
			}
			switch ev.Kind {
			case realtime.EventInsert:
				v.pager.MergeAppend(vs)
			case realtime.EventUpdate:
				v.pager.Update(vs)
			}
		}
	}
}

func (v *VerseView) Load(ctx context.Context) error     { return v.pager.LoadFirst(ctx) }
func (v *VerseView) LoadMore(ctx context.Context) error { return v.pager.LoadNext(ctx) }
func (v *VerseView) Verses() []*dbmysql.Verse           { return v.pager.Items() }
func (v *VerseView) State() State                       { return v.pager.State() }
func (v *VerseView) HasMore() bool                      { return v.pager.HasNext() }

func (v *VerseView) Create(ctx context.Context, title, content string, isPublic bool) (*dbmysql.Verse, error) {
	created, err := v.verses.CreateVerse(ctx, v.viewerID, title, content, isPublic)
	if err != nil {
		return nil, err
	}
	v.pager.MergeAppend(created)
	return created, nil
}

func (v *VerseView) Update(ctx context.Context, verseID string, update verse.VerseUpdate) (*dbmysql.Verse, error) {
	updated, err := v.verses.UpdateVerse(ctx, v.viewerID, verseID, update)
	if err != nil {
		return nil, err
	}
	v.pager.Update(updated)
	return updated, nil
}

func (v *VerseView) Delete(ctx context.Context, verseID string) error {
	return v.verses.DeleteVerse(ctx, v.viewerID, verseID)
}

// Close tears the subscription down. Idempotent.
func (v *VerseView) Close() {
	v.closeOnce.Do(func() {
		close(v.done)
		v.sub.Close()
		v.wg.Wait()
	})
}
