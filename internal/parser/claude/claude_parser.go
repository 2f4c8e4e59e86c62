// Package claude reads GPCs with the Anthropic Messages API.
package claude

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/parser"
	"gpcaffidavit/internal/port"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-sonnet-4-20250514"
)

func init() {
	parser.RegisterProvider("claude", func(cfg *config.ParserProviderConfig) (port.CaseExtractor, error) {
		return NewParser(cfg), nil
	})
}

// Parser implements port.CaseExtractor using the Anthropic Messages API.
type Parser struct {
	client *parser.Client
}

// NewParser creates a Claude-based extractor from a provider config.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return NewParserWithEndpoint(cfg, apiURL)
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	c := parser.NewClient("claude", cfg, defaultModel)
	c.URL = endpoint
	c.Header.Set("x-api-key", cfg.APIKey)
	c.Header.Set("anthropic-version", apiVersion)
	return &Parser{client: c}
}

type source struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type contentBlock struct {
	Type   string  `json:"type"`
	Text   string  `json:"text,omitempty"`
	Source *source `json:"source,omitempty"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (p *Parser) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	prompt := parser.BuildGPCPrompt(input.Text)

	var blocks []contentBlock
	if input.HasFile() {
		if input.ContentType != domain.ContentTypePDF {
			return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
		}
		blocks = append(blocks, contentBlock{Type: "document", Source: &source{
			Type:      "base64",
			MediaType: domain.ContentTypePDF,
			Data:      base64.StdEncoding.EncodeToString(input.FileBytes),
		}})
	}
	blocks = append(blocks, contentBlock{Type: "text", Text: prompt})

	body, err := p.client.PostJSON(ctx, messagesRequest{
		Model:     p.client.Model,
		MaxTokens: p.client.MaxTokens,
		Messages:  []message{{Role: "user", Content: blocks}},
	})
	if err != nil {
		return nil, err
	}

	var resp messagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("%w (stop_reason: max_tokens)", parser.ErrOutputTruncated)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	return p.client.Output(text, prompt)
}
