package group

import (
	"context"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

type GroupRepository interface {
	// Create inserts the group and its owner membership in one transaction.
	Create(ctx context.Context, group *dbmysql.Group, owner *dbmysql.GroupMember) error
	ByID(ctx context.Context, id string) (*dbmysql.Group, error)
	ByUser(ctx context.Context, userID string) ([]*dbmysql.Group, error)
	Update(ctx context.Context, groupID string, fields map[string]interface{}) (int64, error)
	// Delete removes the group and all memberships.
	Delete(ctx context.Context, groupID string) error
	SearchPublic(ctx context.Context, query string, page store.Page) ([]*dbmysql.Group, int64, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *dbmysql.GroupMember) error
	Get(ctx context.Context, groupID, userID string) (*dbmysql.GroupMember, error)
	List(ctx context.Context, groupID string) ([]*dbmysql.GroupMember, error)
	UpdateRole(ctx context.Context, groupID, userID string, role dbmysql.GroupRole) (int64, error)
	Delete(ctx context.Context, groupID, userID string) (int64, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *dbmysql.Group, owner *dbmysql.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(owner).Error
	})
}

func (r *groupRepository) ByID(ctx context.Context, id string) (*dbmysql.Group, error) {
	var group dbmysql.Group
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) ByUser(ctx context.Context, userID string) ([]*dbmysql.Group, error) {
	var groups []*dbmysql.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepository) Update(ctx context.Context, groupID string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Group{}).
		Where("id = ?", groupID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *groupRepository) Delete(ctx context.Context, groupID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&dbmysql.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", groupID).Delete(&dbmysql.Group{}).Error
	})
}

func (r *groupRepository) SearchPublic(ctx context.Context, query string, page store.Page) ([]*dbmysql.Group, int64, error) {
	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).
		Model(&dbmysql.Group{}).
		Where("privacy = ?", dbmysql.GroupPublic).
		Where("name LIKE ? OR description LIKE ?", pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []*dbmysql.Group
	err := base.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&groups).Error
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *dbmysql.GroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Get(ctx context.Context, groupID, userID string) (*dbmysql.GroupMember, error) {
	var member dbmysql.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, groupID string) ([]*dbmysql.GroupMember, error) {
	var members []*dbmysql.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepository) UpdateRole(ctx context.Context, groupID, userID string, role dbmysql.GroupRole) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role)
	return res.RowsAffected, res.Error
}

func (r *memberRepository) Delete(ctx context.Context, groupID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&dbmysql.GroupMember{})
	return res.RowsAffected, res.Error
}
