package group

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"connectrealm/internal/common"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

// GroupPage is one page of search results with the exact total.
type GroupPage struct {
	Groups  []*dbmysql.Group `json:"groups"`
	Total   int64            `json:"total"`
	HasMore bool             `json:"has_more"`
}

type GroupUpdate struct {
	Name        *string
	Description *string
	CoverMedia  *string
	Privacy     *dbmysql.GroupPrivacy
	Settings    *dbmysql.JSONMap
}

type GroupService interface {
	CreateGroup(ctx context.Context, ownerID, name, handle, description string, privacy dbmysql.GroupPrivacy) (*dbmysql.Group, error)
	GetGroup(ctx context.Context, groupID string) (*dbmysql.Group, error)
	UserGroups(ctx context.Context, userID string) ([]*dbmysql.Group, error)
	Members(ctx context.Context, groupID string) ([]*dbmysql.GroupMember, error)
	UpdateGroup(ctx context.Context, actorID, groupID string, update GroupUpdate) error
	DeleteGroup(ctx context.Context, actorID, groupID string) error
	JoinGroup(ctx context.Context, userID, groupID string) error
	LeaveGroup(ctx context.Context, userID, groupID string) error
	UpdateMemberRole(ctx context.Context, actorID, groupID, userID string, role dbmysql.GroupRole) error
	RemoveMember(ctx context.Context, actorID, groupID, userID string) error
	SearchGroups(ctx context.Context, query string, page store.Page) (*GroupPage, error)
}

type groupService struct {
	groups  GroupRepository
	members MemberRepository
}

func NewGroupService(groups GroupRepository, members MemberRepository) GroupService {
	return &groupService{groups: groups, members: members}
}

// CreateGroup makes the creator the sole owner member.
func (s *groupService) CreateGroup(ctx context.Context, ownerID, name, handle, description string, privacy dbmysql.GroupPrivacy) (*dbmysql.Group, error) {
	if ownerID == "" {
		return nil, store.ErrAuthRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("group name cannot be empty")
	}
	if err := common.ValidateHandle(handle); err != nil {
		return nil, err
	}
	if privacy == "" {
		privacy = dbmysql.GroupPublic
	}

	now := time.Now().UTC()
	group := &dbmysql.Group{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Handle:    &handle,
		Privacy:   privacy,
		CreatedAt: now,
	}
	if description != "" {
		group.Description = &description
	}
	owner := &dbmysql.GroupMember{
		GroupID:  group.ID,
		UserID:   ownerID,
		Role:     dbmysql.RoleOwner,
		JoinedAt: now,
	}
	if err := s.groups.Create(ctx, group, owner); err != nil {
		return nil, store.Classify(err)
	}
	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, groupID string) (*dbmysql.Group, error) {
	group, err := s.groups.ByID(ctx, groupID)
	if err != nil {
		return nil, store.Classify(err)
	}
	return group, nil
}

func (s *groupService) UserGroups(ctx context.Context, userID string) ([]*dbmysql.Group, error) {
	groups, err := s.groups.ByUser(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if groups == nil {
		groups = []*dbmysql.Group{}
	}
	return groups, nil
}

func (s *groupService) Members(ctx context.Context, groupID string) ([]*dbmysql.GroupMember, error) {
	members, err := s.members.List(ctx, groupID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if members == nil {
		members = []*dbmysql.GroupMember{}
	}
	return members, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, actorID, groupID string, update GroupUpdate) error {
	if err := s.requireManager(ctx, actorID, groupID); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.CoverMedia != nil {
		fields["cover_media_id"] = *update.CoverMedia
	}
	if update.Privacy != nil {
		fields["privacy"] = *update.Privacy
	}
	if update.Settings != nil {
		fields["settings"] = *update.Settings
	}
	if len(fields) == 0 {
		return nil
	}

	affected, err := s.groups.Update(ctx, groupID, fields)
	if err != nil {
		return store.Classify(err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *groupService) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	if actorID == "" {
		return store.ErrAuthRequired
	}

	group, err := s.groups.ByID(ctx, groupID)
	if err != nil {
		return store.Classify(err)
	}
	if group.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can delete a group", store.ErrUnauthorized)
	}
	return store.Classify(s.groups.Delete(ctx, groupID))
}

// JoinGroup is idempotent: joining a group twice is not an error.
func (s *groupService) JoinGroup(ctx context.Context, userID, groupID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	if _, err := s.groups.ByID(ctx, groupID); err != nil {
		return store.Classify(err)
	}

	member := &dbmysql.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     dbmysql.RoleMember,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.members.Create(ctx, member); err != nil {
		if store.IsConflict(err) {
			return nil
		}
		return store.Classify(err)
	}
	return nil
}

// LeaveGroup removes the caller's membership. The owner cannot leave;
// ownership transfer is not a supported operation, so they delete the
// group instead.
func (s *groupService) LeaveGroup(ctx context.Context, userID, groupID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	member, err := s.members.Get(ctx, groupID, userID)
	if err != nil {
		return store.Classify(err)
	}
	if member.Role == dbmysql.RoleOwner {
		return fmt.Errorf("%w: the owner cannot leave their own group", store.ErrInvalidOperation)
	}

	_, err = s.members.Delete(ctx, groupID, userID)
	return store.Classify(err)
}

// UpdateMemberRole changes a member's role. The owner role is never
// assignable, and admins cannot touch the owner's row.
func (s *groupService) UpdateMemberRole(ctx context.Context, actorID, groupID, userID string, role dbmysql.GroupRole) error {
	if role == dbmysql.RoleOwner {
		return fmt.Errorf("%w: owner role cannot be assigned", store.ErrInvalidOperation)
	}
	if role != dbmysql.RoleAdmin && role != dbmysql.RoleModerator && role != dbmysql.RoleMember {
		return fmt.Errorf("%w: unknown role %q", store.ErrInvalidOperation, role)
	}
	if err := s.requireManager(ctx, actorID, groupID); err != nil {
		return err
	}

	target, err := s.members.Get(ctx, groupID, userID)
	if err != nil {
		return store.Classify(err)
	}
	if target.Role == dbmysql.RoleOwner {
		return fmt.Errorf("%w: the owner's role is fixed", store.ErrInvalidOperation)
	}

	_, err = s.members.UpdateRole(ctx, groupID, userID, role)
	return store.Classify(err)
}

func (s *groupService) RemoveMember(ctx context.Context, actorID, groupID, userID string) error {
	if err := s.requireManager(ctx, actorID, groupID); err != nil {
		return err
	}

	target, err := s.members.Get(ctx, groupID, userID)
	if err != nil {
		return store.Classify(err)
	}
	if target.Role == dbmysql.RoleOwner {
		return fmt.Errorf("%w: the owner cannot be removed", store.ErrInvalidOperation)
	}

	_, err = s.members.Delete(ctx, groupID, userID)
	return store.Classify(err)
}

func (s *groupService) SearchGroups(ctx context.Context, query string, page store.Page) (*GroupPage, error) {
	if strings.TrimSpace(query) == "" {
		return &GroupPage{Groups: []*dbmysql.Group{}}, nil
	}

	groups, total, err := s.groups.SearchPublic(ctx, query, page)
	if err != nil {
		return nil, store.Classify(err)
	}
	if groups == nil {
		groups = []*dbmysql.Group{}
	}
	return &GroupPage{Groups: groups, Total: total, HasMore: page.HasMore(total)}, nil
}

func (s *groupService) requireManager(ctx context.Context, actorID, groupID string) error {
	if actorID == "" {
		return store.ErrAuthRequired
	}

	member, err := s.members.Get(ctx, groupID, actorID)
	if err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("%w: not a member of this group", store.ErrUnauthorized)
		}
		return store.Classify(err)
	}
	if !member.Role.CanManageMembers() {
		return fmt.Errorf("%w: requires owner or admin", store.ErrUnauthorized)
	}
	return nil
}
