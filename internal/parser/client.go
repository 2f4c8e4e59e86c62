package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/port"
)

const (
	defaultMaxTokens = 2048
	defaultTimeout   = 120 * time.Second
)

// Client posts JSON to one provider API. Providers fill in URL and Header
// after NewClient has resolved the model and limits.
type Client struct {
	Provider  string
	URL       string
	Model     string
	MaxTokens int
	Header    http.Header

	httpClient *http.Client
}

// NewClient applies cfg over the provider defaults.
func NewClient(provider string, cfg *config.ParserProviderConfig, defaultModel string) *Client {
	c := &Client{
		Provider:   provider,
		Model:      cfg.DefaultModel,
		MaxTokens:  cfg.MaxTokens,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.httpClient.Timeout <= 0 {
		c.httpClient.Timeout = defaultTimeout
	}
	return c
}

// PostJSON sends payload and returns the body of a 200 response. Other
// statuses become errors through CheckStatus.
func (c *Client) PostJSON(ctx context.Context, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.Header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s API: %w", c.Provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", c.Provider, err)
	}
	if err := CheckStatus(c.Provider, resp, respBody); err != nil {
		return nil, err
	}
	return respBody, nil
}

// Output decodes the model's reply text into an ExtractOutput.
func (c *Client) Output(text, prompt string) (*port.ExtractOutput, error) {
	if text == "" {
		return nil, fmt.Errorf("empty response from %s API", c.Provider)
	}
	data, err := DecodeModelJSON(text)
	if err != nil {
		return nil, err
	}
	return &port.ExtractOutput{
		StructuredData: data,
		RawText:        text,
		ModelUsed:      c.Model,
		PromptUsed:     prompt,
	}, nil
}
