package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"connectrealm/internal/chat"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/realtime"
	"connectrealm/internal/store"
)

type stubChat struct {
	chat.ChatService
	history []*dbmysql.Message
	sent    []*dbmysql.Message
}

func (s *stubChat) Messages(_ context.Context, _, _ string, page store.Page) (*chat.MessagePage, error) {
	return &chat.MessagePage{
		Messages: s.history,
		Total:    int64(len(s.history)),
		HasMore:  page.HasMore(int64(len(s.history))),
	}, nil
}

func (s *stubChat) SendMessage(_ context.Context, senderID, threadID string, content dbmysql.MessageContent) (*dbmysql.Message, error) {
	m := &dbmysql.Message{ID: "sent-1", ThreadID: threadID, SenderID: senderID, Content: content}
	s.sent = append(s.sent, m)
	return m, nil
}

func msg(id, threadID string) *dbmysql.Message {
	return &dbmysql.Message{ID: id, ThreadID: threadID, CreatedAt: time.Now().UTC()}
}

func waitForMessages(t *testing.T, v *ThreadView, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(v.Messages()) == want
	}, waitTimeout, pollInterval)
}

func TestThreadViewMergesRealtimeInserts(t *testing.T) {
	ctx := context.Background()
	broker := realtime.NewBroker()
	chats := &stubChat{history: []*dbmysql.Message{msg("m1", "t1")}}

	v := NewThreadView(chats, broker, "u1", "t1", 20)
	defer v.Close()
	require.NoError(t, v.Load(ctx))
	require.Len(t, v.Messages(), 1)

	broker.Publish(realtime.Event{
		Collection: chat.MessagesCollection,
		Kind:       realtime.EventInsert,
		Row:        msg("m2", "t1"),
	})
	waitForMessages(t, v, 2)
}

func TestThreadViewDuplicateDeliveryIsOneRow(t *testing.T) {
	ctx := context.Background()
	broker := realtime.NewBroker()
	chats := &stubChat{history: []*dbmysql.Message{msg("m1", "t1")}}

	v := NewThreadView(chats, broker, "u1", "t1", 20)
	defer v.Close()
	require.NoError(t, v.Load(ctx))

	m2 := msg("m2", "t1")
	for i := 0; i < 3; i++ {
		broker.Publish(realtime.Event{
			Collection: chat.MessagesCollection,
			Kind:       realtime.EventInsert,
			Row:        m2,
		})
	}
	waitForMessages(t, v, 2)

	// Give any duplicate time to land, then confirm it did not.
	time.Sleep(50 * time.Millisecond)
	require.Len(t, v.Messages(), 2)
}

func TestThreadViewIgnoresOtherThreads(t *testing.T) {
	ctx := context.Background()
	broker := realtime.NewBroker()
	chats := &stubChat{history: []*dbmysql.Message{msg("m1", "t1")}}

	v := NewThreadView(chats, broker, "u1", "t1", 20)
	defer v.Close()
	require.NoError(t, v.Load(ctx))

	broker.Publish(realtime.Event{
		Collection: chat.MessagesCollection,
		Kind:       realtime.EventInsert,
		Row:        msg("other", "t2"),
	})
	broker.Publish(realtime.Event{
		Collection: chat.MessagesCollection,
		Kind:       realtime.EventInsert,
		Row:        msg("m2", "t1"),
	})
	waitForMessages(t, v, 2)

	for _, m := range v.Messages() {
		require.Equal(t, "t1", m.ThreadID)
	}
}

func TestThreadViewSendShowsImmediately(t *testing.T) {
	ctx := context.Background()
	broker := realtime.NewBroker()
	chats := &stubChat{}

	v := NewThreadView(chats, broker, "u1", "t1", 20)
	defer v.Close()
	require.NoError(t, v.Load(ctx))

	sent, err := v.Send(ctx, dbmysql.MessageContent{Text: "hello"})
	require.NoError(t, err)
	require.Len(t, v.Messages(), 1)

	// Broker redelivery of the same message must not duplicate it.
	broker.Publish(realtime.Event{
		Collection: chat.MessagesCollection,
		Kind:       realtime.EventInsert,
		Row:        sent,
	})
	time.Sleep(50 * time.Millisecond)
	require.Len(t, v.Messages(), 1)
}

func TestThreadViewCloseIdempotent(t *testing.T) {
	broker := realtime.NewBroker()
	v := NewThreadView(&stubChat{}, broker, "u1", "t1", 20)

	v.Close()
	v.Close()
	require.Equal(t, 0, broker.SubscriberCount(chat.MessagesCollection))
}
