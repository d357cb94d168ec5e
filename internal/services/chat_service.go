package services

import (
	"context"
	"time"

	"aichat-server/internal/domain/chat"
	"aichat-server/internal/repository"
	aichat_errors "aichat-server/pkg/errors"

	"github.com/google/uuid"
)

// ChatService composes the conversation store and the user chat
// index. Conversation creation is the only writer of the index, which
// keeps the denormalized summaries consistent with ownership.
type ChatService struct {
	chats     repository.ChatRepository
	userChats repository.UserChatsRepository
	now       func() time.Time
}

func NewChatService(chats repository.ChatRepository, userChats repository.UserChatsRepository) *ChatService {
	return &ChatService{chats: chats, userChats: userChats, now: time.Now}
}

type ContinueInput struct {
	ChatID   string
	Question string
	Answer   string
	Img      map[string]any
}

// Start creates a conversation seeded with a single user turn and
// appends its summary to the owner's index. The two writes are not
// one transaction; a crash between them leaves a conversation the
// sidebar never lists, which the original design accepts.
func (s *ChatService) Start(ctx context.Context, ownerID, text string) (string, error) {
	now := s.now()
	conv := chat.Conversation{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		History: []chat.Turn{
			{Role: chat.RoleUser, Parts: []chat.Part{{Text: text}}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.chats.Create(ctx, &conv); err != nil {
		return "", err
	}

	summary := chat.Summary{
		ChatID:    conv.ID,
		Title:     chat.TitleFromText(text),
		CreatedAt: now,
	}
	if err := s.userChats.EnsureAndAppend(ctx, ownerID, summary, now); err != nil {
		return "", err
	}

	return conv.ID, nil
}

func (s *ChatService) Get(ctx context.Context, ownerID, chatID string) (chat.Conversation, error) {
	return s.chats.GetByOwner(ctx, chatID, ownerID)
}

func (s *ChatService) List(ctx context.Context, ownerID string) ([]chat.Summary, error) {
	return s.userChats.ListForOwner(ctx, ownerID)
}

// Continue appends the next exchange to a conversation. A zero-match
// append means the chat does not exist or belongs to someone else;
// either way the caller gets ErrNotFound.
func (s *ChatService) Continue(ctx context.Context, ownerID string, in ContinueInput) (int64, error) {
	turns := BuildTurns(in.Question, in.Answer, in.Img)

	matched, err := s.chats.AppendHistory(ctx, in.ChatID, ownerID, turns)
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		return 0, aichat_errors.ErrNotFound
	}
	return matched, nil
}

// BuildTurns applies the append rule: a question yields a user turn
// (with the image attached to its part, when present) followed by a
// model turn; no question yields the model turn alone, which is how a
// regenerated answer is persisted without a new prompt.
func BuildTurns(question, answer string, img map[string]any) []chat.Turn {
	var turns []chat.Turn
	if question != "" {
		part := chat.Part{Text: question}
		if len(img) > 0 {
			part.Img = img
		}
		turns = append(turns, chat.Turn{Role: chat.RoleUser, Parts: []chat.Part{part}})
	}
	turns = append(turns, chat.Turn{Role: chat.RoleModel, Parts: []chat.Part{{Text: answer}}})
	return turns
}
