package repository

import (
	"context"
	"time"

	"aichat-server/internal/domain/chat"
)

// ChatRepository is the conversation store: one document per chat
// thread, owner immutable, history append-only.
type ChatRepository interface {
	Create(ctx context.Context, c *chat.Conversation) error

	// GetByOwner returns the conversation only when both id and owner
	// match. A missing id and an ownership mismatch are deliberately
	// the same ErrNotFound so callers cannot probe foreign ids.
	GetByOwner(ctx context.Context, id, ownerID string) (chat.Conversation, error)

	// AppendHistory pushes turns onto the history of the conversation
	// matching id+owner and reports how many documents matched, so
	// the caller can distinguish a real append from a zero-match
	// no-op.
	AppendHistory(ctx context.Context, id, ownerID string, turns []chat.Turn) (int64, error)
}

// UserChatsRepository is the per-owner chat index, a denormalized
// projection of conversation metadata with a single writer path.
type UserChatsRepository interface {
	// ListForOwner returns the owner's summaries in creation order,
	// or ErrNoChats when no index document exists yet.
	ListForOwner(ctx context.Context, ownerID string) ([]chat.Summary, error)

	// EnsureAndAppend creates the owner's index document if absent
	// and appends the summary, in one atomic store operation.
	EnsureAndAppend(ctx context.Context, ownerID string, summary chat.Summary, now time.Time) error
}
