package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/intent"
	"voxassist/call-api/internal/infrastructure/archive"
	"voxassist/call-api/internal/infrastructure/store"
	"voxassist/call-api/internal/interfaces/httpserver/handlers"
	v1 "voxassist/call-api/internal/interfaces/httpserver/routes/v1"
)

type stubResponder struct {
	reply string
}

func (s *stubResponder) Respond(context.Context, string, []call.Message, map[string]any, []call.ToolDefinition) (*call.ResponderReply, error) {
	return &call.ResponderReply{Text: s.reply}, nil
}

func (s *stubResponder) RespondWithToolResult(context.Context, string, []call.Message, *call.ToolRequest, map[string]any) (*call.ResponderReply, error) {
	return &call.ResponderReply{Text: s.reply}, nil
}

func (s *stubResponder) ClassifyAdvanced(context.Context, string) (*intent.AdvancedResult, error) {
	return &intent.AdvancedResult{Intent: intent.IntentUnknown}, nil
}

type stubTools struct{}

func (stubTools) Definitions() []call.ToolDefinition { return nil }

func (stubTools) Execute(context.Context, string, map[string]any) (map[string]any, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	registry := store.NewMemoryRegistry(log)
	archiveStore := archive.NewMemoryStore()
	service := call.NewService(registry, archiveStore, log)
	orchestrator := call.NewOrchestrator(
		registry,
		intent.NewClassifier(),
		&stubResponder{reply: "We are open Monday to Friday."},
		stubTools{},
		nil,
		archiveStore,
		call.OrchestratorTimeouts{},
		log,
	)

	engine := gin.New()
	group := engine.Group("/v1")
	v1.RegisterCallRoutes(group,
		handlers.NewCallHandler(service, orchestrator),
		handlers.NewStreamHandler(orchestrator, nil, log),
	)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestCallRoutes_StartCall(t *testing.T) {
	engine := newTestRouter(t)

	rec, body := doJSON(t, engine, http.MethodPost, "/v1/calls", `{"caller_number":"+15551234567","call_id":"call_http"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "call_http", body["call_id"])
}

func TestCallRoutes_StartCallMissingCallerNumber(t *testing.T) {
	engine := newTestRouter(t)

	rec, _ := doJSON(t, engine, http.MethodPost, "/v1/calls", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallRoutes_GetCallNotFound(t *testing.T) {
	engine := newTestRouter(t)

	rec, _ := doJSON(t, engine, http.MethodGet, "/v1/calls/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCallRoutes_TurnFlow(t *testing.T) {
	engine := newTestRouter(t)

	rec, _ := doJSON(t, engine, http.MethodPost, "/v1/calls", `{"caller_number":"+15551234567","call_id":"call_turns"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, engine, http.MethodPost, "/v1/calls/call_turns/turns", `{"text":"What are your hours?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "We are open Monday to Friday.", body["reply"])
	assert.Equal(t, "business_hours", body["intent"])

	rec, body = doJSON(t, engine, http.MethodGet, "/v1/calls/call_turns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestCallRoutes_TurnMissingText(t *testing.T) {
	engine := newTestRouter(t)

	rec, _ := doJSON(t, engine, http.MethodPost, "/v1/calls", `{"caller_number":"+15551234567","call_id":"call_notext"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, engine, http.MethodPost, "/v1/calls/call_notext/turns", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallRoutes_EndCall(t *testing.T) {
	engine := newTestRouter(t)

	rec, _ := doJSON(t, engine, http.MethodPost, "/v1/calls", `{"caller_number":"+15551234567","call_id":"call_end"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Empty body is allowed; duration is computed.
	rec, body := doJSON(t, engine, http.MethodPost, "/v1/calls/call_end/end", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	// The finished call is still readable through the archive.
	rec, body = doJSON(t, engine, http.MethodGet, "/v1/calls/call_end", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ended", body["status"])

	// Ending again fails: the session left the live registry.
	rec, _ = doJSON(t, engine, http.MethodPost, "/v1/calls/call_end/end", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCallRoutes_ListActiveCalls(t *testing.T) {
	engine := newTestRouter(t)

	for _, id := range []string{"call_a", "call_b"} {
		rec, _ := doJSON(t, engine, http.MethodPost, "/v1/calls", `{"caller_number":"+15550000001","call_id":"`+id+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := doJSON(t, engine, http.MethodGet, "/v1/calls", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["count"])
}
