package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatBackend is an httptest stand-in for an OpenAI-compatible
// chat-completions API.
type chatBackend struct {
	hits    int
	status  int
	content string
}

func (b *chatBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.hits++
		status := b.status
		if status == 0 {
			status = http.StatusOK
		}
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": b.content,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func newChatProcessor(t *testing.T, backend *chatBackend, opts ...OpenAIOption) *OpenAIProcessor {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	opts = append([]OpenAIOption{
		WithOpenAIRequestOptions(
			option.WithBaseURL(srv.URL),
			option.WithMaxRetries(0),
		),
	}, opts...)
	return NewOpenAI("test-key", opts...)
}

func TestOpenAIProcessReturnsValidatedElements(t *testing.T) {
	backend := &chatBackend{content: `[{"description":"submit","coordinate":[120,44]}]`}
	p := newChatProcessor(t, backend)

	got, err := p.Process(context.Background(), screenshotPayload, "the submit button")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "submit", got[0].Description)
	assert.Equal(t, [2]float64{120, 44}, got[0].Coordinate)
}

func TestOpenAIProcessMemoizes(t *testing.T) {
	backend := &chatBackend{content: `[{"description":"submit","coordinate":[120,44]}]`}
	p := newChatProcessor(t, backend)
	ctx := context.Background()

	_, err := p.Process(ctx, screenshotPayload, "the submit button")
	require.NoError(t, err)
	_, err = p.Process(ctx, screenshotPayload, "the submit button")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.hits)

	_, err = p.Process(ctx, screenshotPayload, "something else")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.hits)
}

func TestOpenAIProcessNoCredential(t *testing.T) {
	backend := &chatBackend{content: `[]`}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	p := NewOpenAI("", WithOpenAIRequestOptions(option.WithBaseURL(srv.URL)))
	got, err := p.Process(context.Background(), screenshotPayload, "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, backend.hits)
}

func TestOpenAIProcessBackendError(t *testing.T) {
	backend := &chatBackend{status: http.StatusInternalServerError, content: `[]`}
	p := newChatProcessor(t, backend)

	got, err := p.Process(context.Background(), screenshotPayload, "x")
	require.NoError(t, err, "backend errors never surface")
	assert.Empty(t, got)
}

func TestOpenAIProcessMalformedContent(t *testing.T) {
	backend := &chatBackend{content: "the button is near the top right"}
	p := newChatProcessor(t, backend)

	got, err := p.Process(context.Background(), screenshotPayload, "x")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.Process(context.Background(), screenshotPayload, "x")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.hits, "parse failures are cached")
}

func TestOpenAIProcessEmptyContentNotCached(t *testing.T) {
	backend := &chatBackend{content: ""}
	p := newChatProcessor(t, backend)

	got, err := p.Process(context.Background(), screenshotPayload, "x")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.Process(context.Background(), screenshotPayload, "x")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.hits, "an empty completion is not remembered")
}
