package chat

import (
	"time"
)

// Turn roles. History alternates between the two but the store does
// not enforce alternation; it only preserves insertion order.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is one fragment of a turn: text, optionally carrying an image
// reference. The image object is opaque to the server; it is stored
// and replayed verbatim for the client.
type Part struct {
	Text string         `bson:"text" json:"text"`
	Img  map[string]any `bson:"img,omitempty" json:"img,omitempty"`
}

// Turn is one message in a conversation, attributed to user or model.
type Turn struct {
	Role  string `bson:"role" json:"role"`
	Parts []Part `bson:"parts" json:"parts"`
}

// Conversation represents one document in the chats collection.
// OwnerID never changes after creation and History is append-only.
type Conversation struct {
	ID        string    `bson:"_id" json:"id"`
	OwnerID   string    `bson:"userId" json:"userId"`
	History   []Turn    `bson:"history" json:"history"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Summary is one element of a user's chat index: enough to render a
// sidebar entry without loading the conversation document.
type Summary struct {
	ChatID    string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// UserChats represents one document in the userchats collection: the
// denormalized per-owner index of conversation summaries. The owner
// id doubles as the document key, so one document per owner is a
// store-level guarantee. Every summary must point at a conversation
// owned by the same user; the single writer path (conversation
// creation) maintains that.
type UserChats struct {
	OwnerID   string    `bson:"_id" json:"userId"`
	Chats     []Summary `bson:"chats" json:"chats"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TitleLimit is the number of runes of the first user turn kept as a
// chat title. No ellipsis, no word-boundary logic.
const TitleLimit = 40

// TitleFromText derives an index title from the text that started a
// conversation.
func TitleFromText(text string) string {
	runes := []rune(text)
	if len(runes) > TitleLimit {
		return string(runes[:TitleLimit])
	}
	return text
}
