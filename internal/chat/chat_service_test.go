package chat

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/realtime"
	"connectrealm/internal/store"
)

func newChatFixture(t *testing.T) (*gomock.Controller, *MockThreadRepository, *MockMemberRepository, *MockMessageRepository, *realtime.Broker, ChatService) {
	ctrl := gomock.NewController(t)
	threads := NewMockThreadRepository(ctrl)
	members := NewMockMemberRepository(ctrl)
	messages := NewMockMessageRepository(ctrl)
	broker := realtime.NewBroker()
	svc := NewChatService(threads, members, messages, broker)
	return ctrl, threads, members, messages, broker, svc
}

func TestCreateThread(t *testing.T) {
	ctx := context.Background()

	t.Run("direct thread reuses the existing pair thread", func(t *testing.T) {
		ctrl, threads, _, _, _, svc := newChatFixture(t)
		defer ctrl.Finish()

		existing := &dbmysql.Thread{ID: "t1", IsGroup: false}
		threads.EXPECT().DirectBetween(ctx, "u1", "u2").Return(existing, nil)

		thread, err := svc.CreateThread(ctx, "u1", []string{"u2"}, false, "")
		require.NoError(t, err)
		require.Equal(t, "t1", thread.ID)
	})

	t.Run("direct thread is created when none exists", func(t *testing.T) {
		ctrl, threads, _, _, _, svc := newChatFixture(t)
		defer ctrl.Finish()

		threads.EXPECT().DirectBetween(ctx, "u1", "u2").Return(nil, gorm.ErrRecordNotFound)
		threads.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, thread *dbmysql.Thread, members []*dbmysql.ThreadMember) error {
				require.False(t, thread.IsGroup)
				require.Len(t, members, 2)
				return nil
			})

		_, err := svc.CreateThread(ctx, "u1", []string{"u2"}, false, "")
		require.NoError(t, err)
	})

	t.Run("direct thread with three members rejected", func(t *testing.T) {
		ctrl, _, _, _, _, svc := newChatFixture(t)
		defer ctrl.Finish()

		_, err := svc.CreateThread(ctx, "u1", []string{"u2", "u3"}, false, "")
		require.ErrorIs(t, err, store.ErrInvalidOperation)
	})

	t.Run("duplicate member ids collapse", func(t *testing.T) {
		ctrl, threads, _, _, _, svc := newChatFixture(t)
		defer ctrl.Finish()

		threads.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, thread *dbmysql.Thread, members []*dbmysql.ThreadMember) error {
				require.Len(t, members, 3)
				require.NotNil(t, thread.Name)
				require.Equal(t, "trio", *thread.Name)
				return nil
			})

		_, err := svc.CreateThread(ctx, "u1", []string{"u2", "u2", "u3", "u1"}, true, "trio")
		require.NoError(t, err)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a realtime event", func(t *testing.T) {
		ctrl, _, members, messages, broker, svc := newChatFixture(t)
		defer ctrl.Finish()

		sub := broker.Subscribe(MessagesCollection, nil)
		defer sub.Close()

		members.EXPECT().Get(ctx, "t1", "u1").
			Return(&dbmysql.ThreadMember{ThreadID: "t1", UserID: "u1"}, nil)
		messages.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		sent, err := svc.SendMessage(ctx, "u1", "t1", dbmysql.MessageContent{Text: "hello"})
		require.NoError(t, err)

		select {
		case ev := <-sub.C:
			require.Equal(t, realtime.EventInsert, ev.Kind)
			require.Equal(t, sent, ev.Row)
		case <-time.After(time.Second):
			t.Fatal("no realtime event received")
		}
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		ctrl, _, members, _, _, svc := newChatFixture(t)
		defer ctrl.Finish()

		members.EXPECT().Get(ctx, "t1", "intruder").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.SendMessage(ctx, "intruder", "t1", dbmysql.MessageContent{Text: "hi"})
		require.ErrorIs(t, err, store.ErrUnauthorized)
	})
}

func TestEditMessageSenderOnly(t *testing.T) {
	ctx := context.Background()
	ctrl, _, _, messages, _, svc := newChatFixture(t)
	defer ctrl.Finish()

	messages.EXPECT().ByID(ctx, "m1").
		Return(&dbmysql.Message{ID: "m1", ThreadID: "t1", SenderID: "someone-else"}, nil)
	messages.EXPECT().UpdateOwned(ctx, "m1", "u1", gomock.Any()).Return(int64(0), nil)

	_, err := svc.EditMessage(ctx, "u1", "m1", "edited")
	require.ErrorIs(t, err, store.ErrUnauthorized)
}

func TestUnreadCountDerived(t *testing.T) {
	ctx := context.Background()

	t.Run("counts after last read", func(t *testing.T) {
		ctrl, _, members, messages, _, svc := newChatFixture(t)
		defer ctrl.Finish()

		lastRead := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		members.EXPECT().Get(ctx, "t1", "u1").
			Return(&dbmysql.ThreadMember{ThreadID: "t1", UserID: "u1", LastReadAt: &lastRead}, nil)
		messages.EXPECT().CountAfter(ctx, "t1", &lastRead).Return(int64(4), nil)

		count, err := svc.UnreadCount(ctx, "u1", "t1")
		require.NoError(t, err)
		require.Equal(t, int64(4), count)
	})

	t.Run("never-read member counts everything", func(t *testing.T) {
		ctrl, _, members, messages, _, svc := newChatFixture(t)
		defer ctrl.Finish()

		members.EXPECT().Get(ctx, "t1", "u1").
			Return(&dbmysql.ThreadMember{ThreadID: "t1", UserID: "u1"}, nil)
		messages.EXPECT().CountAfter(ctx, "t1", (*time.Time)(nil)).Return(int64(9), nil)

		count, err := svc.UnreadCount(ctx, "u1", "t1")
		require.NoError(t, err)
		require.Equal(t, int64(9), count)
	})
}

func TestUserThreadsSummaries(t *testing.T) {
	ctx := context.Background()
	ctrl, threads, members, messages, _, svc := newChatFixture(t)
	defer ctrl.Finish()

	threads.EXPECT().ByUser(ctx, "u1").
		Return([]*dbmysql.Thread{{ID: "t1"}, {ID: "t2"}}, nil)

	last := &dbmysql.Message{ID: "m9", ThreadID: "t1"}
	messages.EXPECT().LastInThread(ctx, "t1").Return(last, nil)
	members.EXPECT().Get(ctx, "t1", "u1").Return(&dbmysql.ThreadMember{ThreadID: "t1", UserID: "u1"}, nil)
	messages.EXPECT().CountAfter(ctx, "t1", (*time.Time)(nil)).Return(int64(2), nil)

	messages.EXPECT().LastInThread(ctx, "t2").Return(nil, gorm.ErrRecordNotFound)
	members.EXPECT().Get(ctx, "t2", "u1").Return(&dbmysql.ThreadMember{ThreadID: "t2", UserID: "u1"}, nil)
	messages.EXPECT().CountAfter(ctx, "t2", (*time.Time)(nil)).Return(int64(0), nil)

	summaries, err := svc.UserThreads(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, last, summaries[0].LastMessage)
	require.Equal(t, int64(2), summaries[0].UnreadCount)
	require.Nil(t, summaries[1].LastMessage)
}
