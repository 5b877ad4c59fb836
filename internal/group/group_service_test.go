package group

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

func newGroupFixture(t *testing.T) (*gomock.Controller, *MockGroupRepository, *MockMemberRepository, GroupService) {
	ctrl := gomock.NewController(t)
	groups := NewMockGroupRepository(ctrl)
	members := NewMockMemberRepository(ctrl)
	svc := NewGroupService(groups, members)
	return ctrl, groups, members, svc
}

func TestCreateGroupSeedsOwner(t *testing.T) {
	ctx := context.Background()
	ctrl, groups, _, svc := newGroupFixture(t)
	defer ctrl.Finish()

	groups.EXPECT().
		Create(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g *dbmysql.Group, owner *dbmysql.GroupMember) error {
			require.Equal(t, "u1", g.OwnerID)
			require.NotNil(t, g.Handle)
			require.Equal(t, "gophers", *g.Handle)
			require.NotNil(t, g.Description)
			require.Equal(t, "a burrow", *g.Description)
			require.Equal(t, g.ID, owner.GroupID)
			require.Equal(t, "u1", owner.UserID)
			require.Equal(t, dbmysql.RoleOwner, owner.Role)
			return nil
		})

	group, err := svc.CreateGroup(ctx, "u1", "Gophers", "gophers", "a burrow", dbmysql.GroupPublic)
	require.NoError(t, err)
	require.Equal(t, "Gophers", group.Name)
}

func TestJoinGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate join is a no-op", func(t *testing.T) {
		ctrl, groups, members, svc := newGroupFixture(t)
		defer ctrl.Finish()

		groups.EXPECT().ByID(ctx, "g1").Return(&dbmysql.Group{ID: "g1"}, nil)
		members.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		require.NoError(t, svc.JoinGroup(ctx, "u1", "g1"))
	})

	t.Run("missing group", func(t *testing.T) {
		ctrl, groups, _, svc := newGroupFixture(t)
		defer ctrl.Finish()

		groups.EXPECT().ByID(ctx, "nope").Return(nil, store.ErrNotFound)

		require.ErrorIs(t, svc.JoinGroup(ctx, "u1", "nope"), store.ErrNotFound)
	})
}

func TestLeaveGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cannot leave", func(t *testing.T) {
		ctrl, _, members, svc := newGroupFixture(t)
		defer ctrl.Finish()

		members.EXPECT().Get(ctx, "g1", "u1").
			Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "u1", Role: dbmysql.RoleOwner}, nil)

		require.ErrorIs(t, svc.LeaveGroup(ctx, "u1", "g1"), store.ErrInvalidOperation)
	})

	t.Run("member leaves", func(t *testing.T) {
		ctrl, _, members, svc := newGroupFixture(t)
		defer ctrl.Finish()

		members.EXPECT().Get(ctx, "g1", "u2").
			Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "u2", Role: dbmysql.RoleMember}, nil)
		members.EXPECT().Delete(ctx, "g1", "u2").Return(int64(1), nil)

		require.NoError(t, svc.LeaveGroup(ctx, "u2", "g1"))
	})
}

func TestUpdateMemberRole(t *testing.T) {
	ctx := context.Background()

	t.Run("owner role is never assignable", func(t *testing.T) {
		ctrl, _, _, svc := newGroupFixture(t)
		defer ctrl.Finish()

		err := svc.UpdateMemberRole(ctx, "u1", "g1", "u2", dbmysql.RoleOwner)
		require.ErrorIs(t, err, store.ErrInvalidOperation)
	})

	t.Run("plain member cannot manage", func(t *testing.T) {
		ctrl, _, members, svc := newGroupFixture(t)
		defer ctrl.Finish()

		members.EXPECT().Get(ctx, "g1", "u3").
			Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "u3", Role: dbmysql.RoleMember}, nil)

		err := svc.UpdateMemberRole(ctx, "u3", "g1", "u2", dbmysql.RoleModerator)
		require.ErrorIs(t, err, store.ErrUnauthorized)
	})

	t.Run("admin cannot touch the owner row", func(t *testing.T) {
		ctrl, _, members, svc := newGroupFixture(t)
		defer ctrl.Finish()

		members.EXPECT().Get(ctx, "g1", "admin").
			Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "admin", Role: dbmysql.RoleAdmin}, nil)
		members.EXPECT().Get(ctx, "g1", "owner").
			Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "owner", Role: dbmysql.RoleOwner}, nil)

		err := svc.UpdateMemberRole(ctx, "admin", "g1", "owner", dbmysql.RoleMember)
		require.ErrorIs(t, err, store.ErrInvalidOperation)
	})

	t.Run("admin promotes a member", func(t *testing.T) {
		ctrl, _, members, svc := newGroupFixture(t)
		defer ctrl.Finish()

		members.EXPECT().Get(ctx, "g1", "admin").
			Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "admin", Role: dbmysql.RoleAdmin}, nil)
		members.EXPECT().Get(ctx, "g1", "u2").
			Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "u2", Role: dbmysql.RoleMember}, nil)
		members.EXPECT().UpdateRole(ctx, "g1", "u2", dbmysql.RoleModerator).Return(int64(1), nil)

		require.NoError(t, svc.UpdateMemberRole(ctx, "admin", "g1", "u2", dbmysql.RoleModerator))
	})
}

func TestRemoveMemberProtectsOwner(t *testing.T) {
	ctx := context.Background()
	ctrl, _, members, svc := newGroupFixture(t)
	defer ctrl.Finish()

	members.EXPECT().Get(ctx, "g1", "admin").
		Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "admin", Role: dbmysql.RoleAdmin}, nil)
	members.EXPECT().Get(ctx, "g1", "owner").
		Return(&dbmysql.GroupMember{GroupID: "g1", UserID: "owner", Role: dbmysql.RoleOwner}, nil)

	require.ErrorIs(t, svc.RemoveMember(ctx, "admin", "g1", "owner"), store.ErrInvalidOperation)
}

func TestDeleteGroupOwnerOnly(t *testing.T) {
	ctx := context.Background()
	ctrl, groups, _, svc := newGroupFixture(t)
	defer ctrl.Finish()

	groups.EXPECT().ByID(ctx, "g1").Return(&dbmysql.Group{ID: "g1", OwnerID: "owner"}, nil)

	require.ErrorIs(t, svc.DeleteGroup(ctx, "intruder", "g1"), store.ErrUnauthorized)
}

func TestSearchGroupsBlankQuery(t *testing.T) {
	ctx := context.Background()
	ctrl, _, _, svc := newGroupFixture(t)
	defer ctrl.Finish()

	page, err := svc.SearchGroups(ctx, "   ", store.Page{Number: 0, Size: 20})
	require.NoError(t, err)
	require.NotNil(t, page.Groups)
	require.Empty(t, page.Groups)
}
