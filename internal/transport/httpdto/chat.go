package httpdto

// StartChatRequest is used for POST /api/chats
type StartChatRequest struct {
	Text string `json:"text" binding:"required"`
}

// ContinueChatRequest is used for PUT /api/chats/:id. Question and
// Img are optional: an answer alone persists a regenerated model
// reply without a new prompt.
type ContinueChatRequest struct {
	Question string         `json:"question"`
	Answer   string         `json:"answer" binding:"required"`
	Img      map[string]any `json:"img"`
}

// UpdateAck reports how many conversations a continue touched. The
// router never sends it with zero; that case is a 404.
type UpdateAck struct {
	Matched int64 `json:"matched"`
}
