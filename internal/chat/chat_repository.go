package chat

import (
	"context"
	"time"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

type ThreadRepository interface {
	// Create inserts the thread and seeds its memberships in one transaction.
	Create(ctx context.Context, thread *dbmysql.Thread, members []*dbmysql.ThreadMember) error
	ByID(ctx context.Context, id string) (*dbmysql.Thread, error)
	ByUser(ctx context.Context, userID string) ([]*dbmysql.Thread, error)
	// DirectBetween finds an existing one-to-one thread shared by exactly the
	// two users, or returns gorm.ErrRecordNotFound.
	DirectBetween(ctx context.Context, userA, userB string) (*dbmysql.Thread, error)
}

type MemberRepository interface {
	Get(ctx context.Context, threadID, userID string) (*dbmysql.ThreadMember, error)
	List(ctx context.Context, threadID string) ([]*dbmysql.ThreadMember, error)
	SetLastRead(ctx context.Context, threadID, userID string, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *dbmysql.Message) error
	ByID(ctx context.Context, id string) (*dbmysql.Message, error)
	ByThread(ctx context.Context, threadID string, page store.Page) ([]*dbmysql.Message, int64, error)
	LastInThread(ctx context.Context, threadID string) (*dbmysql.Message, error)
	CountAfter(ctx context.Context, threadID string, after *time.Time) (int64, error)
	UpdateOwned(ctx context.Context, messageID, senderID string, fields map[string]interface{}) (int64, error)
}

type threadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(ctx context.Context, thread *dbmysql.Thread, members []*dbmysql.ThreadMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		return tx.Create(members).Error
	})
}

func (r *threadRepository) ByID(ctx context.Context, id string) (*dbmysql.Thread, error) {
	var thread dbmysql.Thread
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) ByUser(ctx context.Context, userID string) ([]*dbmysql.Thread, error) {
	var threads []*dbmysql.Thread
	err := r.db.WithContext(ctx).
		Joins("JOIN thread_members ON thread_members.thread_id = threads.id").
		Where("thread_members.user_id = ?", userID).
		Order("threads.created_at DESC").
		Find(&threads).Error
	return threads, err
}

func (r *threadRepository) DirectBetween(ctx context.Context, userA, userB string) (*dbmysql.Thread, error) {
	var thread dbmysql.Thread
	err := r.db.WithContext(ctx).
		Joins("JOIN thread_members a ON a.thread_id = threads.id AND a.user_id = ?", userA).
		Joins("JOIN thread_members b ON b.thread_id = threads.id AND b.user_id = ?", userB).
		Where("threads.is_group = ?", false).
		First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Get(ctx context.Context, threadID, userID string) (*dbmysql.ThreadMember, error) {
	var member dbmysql.ThreadMember
	err := r.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, threadID string) ([]*dbmysql.ThreadMember, error) {
	var members []*dbmysql.ThreadMember
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepository) SetLastRead(ctx context.Context, threadID, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.ThreadMember{}).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Update("last_read_at", at).Error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *dbmysql.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ByID(ctx context.Context, id string) (*dbmysql.Message, error) {
	var message dbmysql.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ByThread(ctx context.Context, threadID string, page store.Page) ([]*dbmysql.Message, int64, error) {
	base := r.db.WithContext(ctx).Model(&dbmysql.Message{}).Where("thread_id = ?", threadID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []*dbmysql.Message
	err := base.
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *messageRepository) LastInThread(ctx context.Context, threadID string) (*dbmysql.Message, error) {
	var message dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) CountAfter(ctx context.Context, threadID string, after *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&dbmysql.Message{}).Where("thread_id = ?", threadID)
	if after != nil {
		q = q.Where("created_at > ?", *after)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *messageRepository) UpdateOwned(ctx context.Context, messageID, senderID string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("id = ? AND sender_id = ?", messageID, senderID).
		Updates(fields)
	return res.RowsAffected, res.Error
}
