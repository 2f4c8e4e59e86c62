package parser_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/parser"
)

func TestNewClient_Defaults(t *testing.T) {
	c := parser.NewClient("claude", &config.ParserProviderConfig{}, "model-x")
	assert.Equal(t, "model-x", c.Model)
	assert.Equal(t, 2048, c.MaxTokens)
	assert.Equal(t, "application/json", c.Header.Get("Content-Type"))

	c = parser.NewClient("claude", &config.ParserProviderConfig{DefaultModel: "custom", MaxTokens: 512}, "model-x")
	assert.Equal(t, "custom", c.Model)
	assert.Equal(t, 512, c.MaxTokens)
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := parser.NewClient("claude", &config.ParserProviderConfig{}, "m")
	c.URL = server.URL
	c.Header.Set("x-api-key", "secret")

	body, err := c.PostJSON(context.Background(), map[string]string{"q": "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClient_PostJSON_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := parser.NewClient("openai", &config.ParserProviderConfig{}, "m")
	c.URL = server.URL

	_, err := c.PostJSON(context.Background(), struct{}{})
	var rle *parser.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, "openai", rle.Provider)
	assert.Equal(t, 12.0, rle.RetryAfter.Seconds())
}

func TestClient_Output(t *testing.T) {
	c := parser.NewClient("gemini", &config.ParserProviderConfig{}, "gemini-2.0-flash")

	out, err := c.Output("```json\n{\"caseNumber\":\"GCLM/1/2024\"}\n```", "prompt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"caseNumber":"GCLM/1/2024"}`, string(out.StructuredData))
	assert.Equal(t, "gemini-2.0-flash", out.ModelUsed)
	assert.Equal(t, "prompt", out.PromptUsed)

	_, err = c.Output("", "prompt")
	assert.Error(t, err)

	_, err = c.Output("no json here", "prompt")
	assert.ErrorIs(t, err, domain.ErrUnparsableResponse)
}
