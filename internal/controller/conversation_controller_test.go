package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"tobacco-catalog-be/internal/dto"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/internal/pkg/serverutils"
	"tobacco-catalog-be/internal/repository/memory"
	"tobacco-catalog-be/internal/service"
	"tobacco-catalog-be/pkg/catalog/catalogtest"
	"tobacco-catalog-be/pkg/catalog/disambiguation"
	"tobacco-catalog-be/pkg/catalog/response"
	"tobacco-catalog-be/pkg/catalog/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool                     `json:"success"`
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Data    dto.ConversationResponse `json:"data"`
}

func newTestApp(catalogStore *catalogtest.Store) *fiber.App {
	log := logger.NewNopLogger()
	wf := workflow.New(memory.NewSessionRepository(time.Minute), catalogStore, log)
	flow := disambiguation.New(catalogStore, memory.NewSelectionRepository(time.Minute), log)
	conversation := service.NewConversationService(wf, flow, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewHealthController().RegisterRoutes(app)
	NewConversationController(conversation).RegisterRoutes(app.Group("/api"))
	return app
}

func post(t *testing.T, app *fiber.App, path string, body interface{}) (int, envelope) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestLiveness(t *testing.T) {
	app := newTestApp(catalogtest.NewStore())

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, LivenessMessage, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMessageAndSelectionRoundTrip(t *testing.T) {
	app := newTestApp(catalogtest.NewStore("Al Fakher", "Adalya", "Serbetli"))

	status, env := post(t, app, "/api/conversation/v1/message", dto.SendMessageRequest{UserId: "42", Text: "al fakher"})
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	require.Len(t, env.Data.Replies, 1)
	require.NotEmpty(t, env.Data.Replies[0].Options)
	option := env.Data.Replies[0].Options[0]
	assert.Equal(t, "Al Fakher", option.Label)

	status, env = post(t, app, "/api/conversation/v1/selection", dto.SelectOptionRequest{UserId: "42", Token: option.Token})
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, env.Data.Replies[0].Text, "Name: Al Fakher")
	assert.Len(t, env.Data.Replies[0].Options, 2)
}

func TestMessageNotFound(t *testing.T) {
	app := newTestApp(catalogtest.NewStore("Al Fakher", "Adalya", "Serbetli"))

	status, env := post(t, app, "/api/conversation/v1/message", dto.SendMessageRequest{UserId: "42", Text: "xyz123"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, response.SearchNotFound, env.Data.Replies[0].Text)
}

func TestMessageValidation(t *testing.T) {
	app := newTestApp(catalogtest.NewStore())

	status, env := post(t, app, "/api/conversation/v1/message", map[string]string{"user_id": "42"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, env.Success)

	status, _ = post(t, app, "/api/conversation/v1/selection", map[string]string{"user_id": "42", "token": "not a token!"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
