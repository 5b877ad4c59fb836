package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/realtime"
	"connectrealm/internal/store"
)

// MessagesCollection is the realtime topic message inserts and edits are
// published on.
const MessagesCollection = "messages"

// ThreadSummary is one row of a user's inbox: the thread, its latest
// message, and how many messages the user has not read yet.
type ThreadSummary struct {
	Thread      *dbmysql.Thread  `json:"thread"`
	LastMessage *dbmysql.Message `json:"last_message,omitempty"`
	UnreadCount int64            `json:"unread_count"`
}

// MessagePage is one ascending page of a thread's history.
type MessagePage struct {
	Messages []*dbmysql.Message `json:"messages"`
	Total    int64              `json:"total"`
	HasMore  bool               `json:"has_more"`
}

type ChatService interface {
	// CreateThread starts a conversation. For a direct thread with exactly
	// one other member an existing thread between the pair is reused.
	CreateThread(ctx context.Context, creatorID string, memberIDs []string, isGroup bool, name string) (*dbmysql.Thread, error)
	UserThreads(ctx context.Context, userID string) ([]*ThreadSummary, error)
	Messages(ctx context.Context, userID, threadID string, page store.Page) (*MessagePage, error)
	SendMessage(ctx context.Context, senderID, threadID string, content dbmysql.MessageContent) (*dbmysql.Message, error)
	EditMessage(ctx context.Context, senderID, messageID, text string) (*dbmysql.Message, error)
	MarkRead(ctx context.Context, userID, threadID string) error
	UnreadCount(ctx context.Context, userID, threadID string) (int64, error)
}

type chatService struct {
	threads  ThreadRepository
	members  MemberRepository
	messages MessageRepository
	broker   *realtime.Broker
	now      func() time.Time
}

func NewChatService(threads ThreadRepository, members MemberRepository, messages MessageRepository, broker *realtime.Broker) ChatService {
	return &chatService{
		threads:  threads,
		members:  members,
		messages: messages,
		broker:   broker,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *chatService) CreateThread(ctx context.Context, creatorID string, memberIDs []string, isGroup bool, name string) (*dbmysql.Thread, error) {
	if creatorID == "" {
		return nil, store.ErrAuthRequired
	}

	seen := map[string]struct{}{creatorID: {}}
	all := []string{creatorID}
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		all = append(all, id)
	}
	if len(all) < 2 {
		return nil, errors.New("a thread needs at least two members")
	}
	if !isGroup && len(all) != 2 {
		return nil, fmt.Errorf("%w: a direct thread has exactly two members", store.ErrInvalidOperation)
	}

	if !isGroup {
		existing, err := s.threads.DirectBetween(ctx, all[0], all[1])
		if err == nil {
			return existing, nil
		}
		if !store.IsNotFound(store.Classify(err)) {
			return nil, store.Classify(err)
		}
	}

	now := s.now()
	thread := &dbmysql.Thread{
		ID:        uuid.New().String(),
		IsGroup:   isGroup,
		CreatedAt: now,
	}
	if name != "" {
		thread.Name = &name
	}
	members := make([]*dbmysql.ThreadMember, 0, len(all))
	for _, id := range all {
		members = append(members, &dbmysql.ThreadMember{
			ThreadID: thread.ID,
			UserID:   id,
			JoinedAt: now,
		})
	}
	if err := s.threads.Create(ctx, thread, members); err != nil {
		return nil, store.Classify(err)
	}
	return thread, nil
}

func (s *chatService) UserThreads(ctx context.Context, userID string) ([]*ThreadSummary, error) {
	if userID == "" {
		return nil, store.ErrAuthRequired
	}

	threads, err := s.threads.ByUser(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}

	summaries := make([]*ThreadSummary, 0, len(threads))
	for _, thread := range threads {
		summary := &ThreadSummary{Thread: thread}

		last, err := s.messages.LastInThread(ctx, thread.ID)
		if err != nil && !store.IsNotFound(store.Classify(err)) {
			return nil, store.Classify(err)
		}
		summary.LastMessage = last

		member, err := s.members.Get(ctx, thread.ID, userID)
		if err != nil {
			return nil, store.Classify(err)
		}
		unread, err := s.messages.CountAfter(ctx, thread.ID, member.LastReadAt)
		if err != nil {
			return nil, store.Classify(err)
		}
		summary.UnreadCount = unread

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *chatService) Messages(ctx context.Context, userID, threadID string, page store.Page) (*MessagePage, error) {
	if err := s.requireMember(ctx, userID, threadID); err != nil {
		return nil, err
	}

	messages, total, err := s.messages.ByThread(ctx, threadID, page)
	if err != nil {
		return nil, store.Classify(err)
	}
	if messages == nil {
		messages = []*dbmysql.Message{}
	}
	return &MessagePage{Messages: messages, Total: total, HasMore: page.HasMore(total)}, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderID, threadID string, content dbmysql.MessageContent) (*dbmysql.Message, error) {
	if err := s.requireMember(ctx, senderID, threadID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content.Text) == "" && len(content.Attachments) == 0 {
		return nil, errors.New("message cannot be empty")
	}

	message := &dbmysql.Message{
		ID:        uuid.New().String(),
		ThreadID:  threadID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, store.Classify(err)
	}

	s.broker.Publish(realtime.Event{
		Collection: MessagesCollection,
		Kind:       realtime.EventInsert,
		Row:        message,
	})
	return message, nil
}

func (s *chatService) EditMessage(ctx context.Context, senderID, messageID, text string) (*dbmysql.Message, error) {
	if senderID == "" {
		return nil, store.ErrAuthRequired
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("message cannot be empty")
	}

	message, err := s.messages.ByID(ctx, messageID)
	if err != nil {
		return nil, store.Classify(err)
	}

	edited := s.now()
	message.Content.Text = text
	message.EditedAt = &edited

	affected, err := s.messages.UpdateOwned(ctx, messageID, senderID, map[string]interface{}{
		"content":   message.Content,
		"edited_at": edited,
	})
	if err != nil {
		return nil, store.Classify(err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: only the sender can edit a message", store.ErrUnauthorized)
	}

	s.broker.Publish(realtime.Event{
		Collection: MessagesCollection,
		Kind:       realtime.EventUpdate,
		Row:        message,
	})
	return message, nil
}

func (s *chatService) MarkRead(ctx context.Context, userID, threadID string) error {
	if err := s.requireMember(ctx, userID, threadID); err != nil {
		return err
	}
	return store.Classify(s.members.SetLastRead(ctx, threadID, userID, s.now()))
}

// UnreadCount is always derived from last_read_at, never stored.
func (s *chatService) UnreadCount(ctx context.Context, userID, threadID string) (int64, error) {
	if userID == "" {
		return 0, store.ErrAuthRequired
	}

	member, err := s.members.Get(ctx, threadID, userID)
	if err != nil {
		return 0, store.Classify(err)
	}
	count, err := s.messages.CountAfter(ctx, threadID, member.LastReadAt)
	return count, store.Classify(err)
}

func (s *chatService) requireMember(ctx context.Context, userID, threadID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}
	_, err := s.members.Get(ctx, threadID, userID)
	if err != nil {
		if store.IsNotFound(store.Classify(err)) {
			return fmt.Errorf("%w: not a member of this thread", store.ErrUnauthorized)
		}
		return store.Classify(err)
	}
	return nil
}
