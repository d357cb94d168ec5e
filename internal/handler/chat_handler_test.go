package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"aichat-server/internal/domain/chat"
	"aichat-server/internal/middleware"
	"aichat-server/internal/services"
	aichat_errors "aichat-server/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

type memChatRepo struct {
	mu    sync.Mutex
	convs map[string]chat.Conversation
	calls int
}

func (m *memChatRepo) Create(_ context.Context, c *chat.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.convs[c.ID] = *c
	return nil
}

func (m *memChatRepo) GetByOwner(_ context.Context, id, ownerID string) (chat.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c, ok := m.convs[id]
	if !ok || c.OwnerID != ownerID {
		return chat.Conversation{}, aichat_errors.ErrNotFound
	}
	return c, nil
}

func (m *memChatRepo) AppendHistory(_ context.Context, id, ownerID string, turns []chat.Turn) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c, ok := m.convs[id]
	if !ok || c.OwnerID != ownerID {
		return 0, nil
	}
	c.History = append(c.History, turns...)
	m.convs[id] = c
	return 1, nil
}

type memUserChatsRepo struct {
	mu    sync.Mutex
	docs  map[string][]chat.Summary
	calls int
}

func (m *memUserChatsRepo) ListForOwner(_ context.Context, ownerID string) ([]chat.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	chats, ok := m.docs[ownerID]
	if !ok {
		return nil, aichat_errors.ErrNoChats
	}
	return chats, nil
}

func (m *memUserChatsRepo) EnsureAndAppend(_ context.Context, ownerID string, summary chat.Summary, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.docs[ownerID] = append(m.docs[ownerID], summary)
	return nil
}

type testEnv struct {
	engine    *gin.Engine
	chats     *memChatRepo
	userChats *memUserChatsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	chats := &memChatRepo{convs: make(map[string]chat.Conversation)}
	userChats := &memUserChatsRepo{docs: make(map[string][]chat.Summary)}
	chatService := services.NewChatService(chats, userChats)
	authService := services.NewAuthService(testSecret)
	h := NewChatHandler(chatService, nil)

	engine := gin.New()
	api := engine.Group("/api", middleware.AuthMiddleware(authService))
	api.POST("/chats", h.Start)
	api.GET("/userchats", h.List)
	api.GET("/chats/:id", h.GetByID)
	api.PUT("/chats/:id", h.Continue)

	return &testEnv{engine: engine, chats: chats, userChats: userChats}
}

func tokenFor(t *testing.T, owner string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   owner,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, owner, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if owner != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, owner))
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestStartConversation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chats", "u1", `{"text":"hello"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	id := w.Body.String()
	require.NotEmpty(t, id)

	w = env.do(t, http.MethodGet, "/api/userchats", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []chat.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, id, summaries[0].ChatID)
	assert.Equal(t, "hello", summaries[0].Title)
}

func TestStartRejectsMissingText(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chats", "u1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListNoChatsIs404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/userchats", "u2", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No chats found for this user!"}`, w.Body.String())
}

func TestGetConversation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chats", "u1", `{"text":"hello"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := w.Body.String()

	w = env.do(t, http.MethodGet, "/api/chats/"+id, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var conv chat.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	assert.Equal(t, id, conv.ID)
	assert.Equal(t, "u1", conv.OwnerID)
	require.Len(t, conv.History, 1)
	assert.Equal(t, chat.RoleUser, conv.History[0].Role)
}

func TestGetConversationForeignOwnerIs404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chats", "u1", `{"text":"secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := w.Body.String()

	w = env.do(t, http.MethodGet, "/api/chats/"+id, "u2", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")

	// Identical body for a missing id, so ids cannot be probed.
	w2 := env.do(t, http.MethodGet, "/api/chats/does-not-exist", "u2", "")
	assert.Equal(t, w.Body.String(), w2.Body.String())
}

func TestContinueConversation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chats", "u1", `{"text":"hello"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := w.Body.String()

	w = env.do(t, http.MethodPut, "/api/chats/"+id, "u1", `{"question":"q","answer":"a"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"matched":1}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/chats/"+id, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var conv chat.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	require.Len(t, conv.History, 3)
	assert.Equal(t, chat.RoleUser, conv.History[1].Role)
	assert.Equal(t, "q", conv.History[1].Parts[0].Text)
	assert.Equal(t, chat.RoleModel, conv.History[2].Role)
	assert.Equal(t, "a", conv.History[2].Parts[0].Text)
}

func TestContinueUnknownChatIs404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/chats/nope", "u1", `{"answer":"a"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContinueRequiresAnswer(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/chats/some-id", "u1", `{"question":"q"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnauthenticatedRequestsShortCircuit(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/chats", `{"text":"hello"}`},
		{http.MethodGet, "/api/userchats", ""},
		{http.MethodGet, "/api/chats/c1", ""},
		{http.MethodPut, "/api/chats/c1", `{"answer":"a"}`},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := env.do(t, p.method, p.path, "", p.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthenticated!", w.Body.String())
		})
	}

	assert.Zero(t, env.chats.calls, "no store access before authentication")
	assert.Zero(t, env.userChats.calls, "no store access before authentication")
}
