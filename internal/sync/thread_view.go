package sync

import (
	"context"
	stdsync "sync"

	"connectrealm/internal/chat"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/realtime"
	"connectrealm/internal/store"
)

// ThreadView is one open conversation: paged history plus live messages
// merged in as they arrive. The broker may deliver a message the pager
// already fetched, or deliver it twice; merging by id keeps the transcript
// free of duplicates either way.
type ThreadView struct {
	chats    chat.ChatService
	userID   string
	threadID string
	pager    *Pager[*dbmysql.Message]

	sub       *realtime.Subscription
	done      chan struct{}
	closeOnce stdsync.Once
	wg        stdsync.WaitGroup
}

func NewThreadView(chats chat.ChatService, broker *realtime.Broker, userID, threadID string, pageSize int) *ThreadView {
	v := &ThreadView{
		chats:    chats,
		userID:   userID,
		threadID: threadID,
		done:     make(chan struct{}),
	}
	v.pager = NewPager(v.fetch, func(m *dbmysql.Message) string { return m.ID }, pageSize)

	v.sub = broker.Subscribe(chat.MessagesCollection, func(ev realtime.Event) bool {
		m, ok := ev.Row.(*dbmysql.Message)
		return ok && m.ThreadID == threadID
	})
	v.wg.Add(1)
	go v.consume()
	return v
}

func (v *ThreadView) fetch(ctx context.Context, page store.Page) ([]*dbmysql.Message, int64, error) {
	mp, err := v.chats.Messages(ctx, v.userID, v.threadID, page)
	if err != nil {
		return nil, 0, err
	}
	return mp.Messages, mp.Total, nil
}

func (v *ThreadView) consume() {
	defer v.wg.Done()
	for {
		select {
		case <-v.done:
			return
		case ev, ok := <-v.sub.C:
			if !ok {
				return
			}
			m, isMsg := ev.Row.(*dbmysql.Message)
			if !isMsg {
				continue
			}
			switch ev.Kind {
			case realtime.EventInsert:
				v.pager.MergeAppend(m)
			case realtime.EventUpdate:
				v.pager.Update(m)
			}
		}
	}
}

func (v *ThreadView) Load(ctx context.Context) error     { return v.pager.LoadFirst(ctx) }
func (v *ThreadView) LoadMore(ctx context.Context) error { return v.pager.LoadNext(ctx) }
func (v *ThreadView) Messages() []*dbmysql.Message       { return v.pager.Items() }
func (v *ThreadView) State() State                       { return v.pager.State() }

func (v *ThreadView) Send(ctx context.Context, content dbmysql.MessageContent) (*dbmysql.Message, error) {
	sent, err := v.chats.SendMessage(ctx, v.userID, v.threadID, content)
	if err != nil {
		return nil, err
	}
	// The broker will redeliver this message; MergeAppend makes showing it
	// immediately safe.
	v.pager.MergeAppend(sent)
	return sent, nil
}

func (v *ThreadView) MarkRead(ctx context.Context) error {
	return v.chats.MarkRead(ctx, v.userID, v.threadID)
}

func (v *ThreadView) UnreadCount(ctx context.Context) (int64, error) {
	return v.chats.UnreadCount(ctx, v.userID, v.threadID)
}

// Close tears the subscription down deterministically. Idempotent.
func (v *ThreadView) Close() {
	v.closeOnce.Do(func() {
		close(v.done)
		v.sub.Close()
		v.wg.Wait()
	})
}
