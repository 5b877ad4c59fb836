package verse

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

func newVerseFixture(t *testing.T) (*gomock.Controller, *MockVerseRepository, *realtime.Broker, VerseService) {
	ctrl := gomock.NewController(t)
	verses := NewMockVerseRepository(ctrl)
	broker := realtime.NewBroker()
	svc := NewVerseService(verses, broker)
	return ctrl, verses, broker, svc
}

func TestGetVerseAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("missing verse is not found", func(t *testing.T) {
		ctrl, verses, _, svc := newVerseFixture(t)
		defer ctrl.Finish()

		verses.EXPECT().ByID(ctx, "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetVerse(ctx, "u1", "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("private verse for a stranger is access denied, not not-found", func(t *testing.T) {
		ctrl, verses, _, svc := newVerseFixture(t)
		defer ctrl.Finish()

		verses.EXPECT().ByID(ctx, "v1").
			Return(&dbmysql.Verse{ID: "v1", UserID: "owner", IsPublic: false}, nil)

		_, err := svc.GetVerse(ctx, "stranger", "v1")
		require.ErrorIs(t, err, store.ErrAccessDenied)
		require.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("owner reads their private verse", func(t *testing.T) {
		ctrl, verses, _, svc := newVerseFixture(t)
		defer ctrl.Finish()

		verses.EXPECT().ByID(ctx, "v1").
			Return(&dbmysql.Verse{ID: "v1", UserID: "owner", IsPublic: false}, nil)

		verse, err := svc.GetVerse(ctx, "owner", "v1")
		require.NoError(t, err)
		require.Equal(t, "v1", verse.ID)
	})
}

func TestCreateVersePublishesInsert(t *testing.T) {
	ctx := context.Background()
	ctrl, verses, broker, svc := newVerseFixture(t)
	defer ctrl.Finish()

	sub := broker.Subscribe(VersesCollection, nil)
	defer sub.Close()

	verses.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	created, err := svc.CreateVerse(ctx, "u1", "first verse", "once upon a time", true)
	require.NoError(t, err)

	select {
	case ev := <-sub.C:
		require.Equal(t, realtime.EventInsert, ev.Kind)
		require.Equal(t, created, ev.Row)
	case <-time.After(time.Second):
		t.Fatal("no realtime event received")
	}
}

func TestUpdateVersePublishesUpdate(t *testing.T) {
	ctx := context.Background()
	ctrl, verses, broker, svc := newVerseFixture(t)
	defer ctrl.Finish()

	sub := broker.Subscribe(VersesCollection, nil)
	defer sub.Close()

	title := "renamed"
	verses.EXPECT().UpdateOwned(ctx, "v1", "u1", gomock.Any()).Return(int64(1), nil)
	verses.EXPECT().ByID(ctx, "v1").
		Return(&dbmysql.Verse{ID: "v1", UserID: "u1", Title: title, IsPublic: true}, nil)

	updated, err := svc.UpdateVerse(ctx, "u1", "v1", VerseUpdate{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)

	select {
	case ev := <-sub.C:
		require.Equal(t, realtime.EventUpdate, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("no realtime event received")
	}
}

func TestUpdateVerseForeignOwner(t *testing.T) {
	ctx := context.Background()
	ctrl, verses, _, svc := newVerseFixture(t)
	defer ctrl.Finish()

	title := "hijack"
	verses.EXPECT().UpdateOwned(ctx, "v1", "intruder", gomock.Any()).Return(int64(0), nil)

	_, err := svc.UpdateVerse(ctx, "intruder", "v1", VerseUpdate{Title: &title})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserVersesFiltersPrivate(t *testing.T) {
	ctx := context.Background()
	ctrl, verses, _, svc := newVerseFixture(t)
	defer ctrl.Finish()

	verses.EXPECT().ByUser(ctx, "owner").Return([]*dbmysql.Verse{
		{ID: "v1", UserID: "owner", IsPublic: true},
		{ID: "v2", UserID: "owner", IsPublic: false},
	}, nil)

	visible, err := svc.UserVerses(ctx, "stranger", "owner")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, "v1", visible[0].ID)
}
