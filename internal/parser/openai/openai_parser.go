// Package openai reads GPCs with the OpenAI Chat Completions API.
package openai

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
	apiURL       = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o"
)

func init() {
	parser.RegisterProvider("openai", func(cfg *config.ParserProviderConfig) (port.CaseExtractor, error) {
		return NewParser(cfg), nil
	})
}

// Parser implements port.CaseExtractor using the Chat Completions API.
type Parser struct {
	client *parser.Client
}

// NewParser creates an OpenAI-based extractor from a provider config.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return NewParserWithEndpoint(cfg, apiURL)
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	c := parser.NewClient("openai", cfg, defaultModel)
	c.URL = endpoint
	c.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	return &Parser{client: c}
}

type fileData struct {
	FileName string `json:"filename"`
	FileData string `json:"file_data"`
}

type contentPart struct {
	Type string    `json:"type"`
	Text string    `json:"text,omitempty"`
	File *fileData `json:"file,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model               string         `json:"model"`
	MaxCompletionTokens int            `json:"max_completion_tokens"`
	Messages            []chatMessage  `json:"messages"`
	ResponseFormat      responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (p *Parser) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	prompt := parser.BuildGPCPrompt(input.Text)

	var parts []contentPart
	if input.HasFile() {
		if input.ContentType != domain.ContentTypePDF {
			return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
		}
		name := input.FileName
		if name == "" {
			name = "gpc.pdf"
		}
		parts = append(parts, contentPart{Type: "file", File: &fileData{
			FileName: name,
			FileData: "data:" + domain.ContentTypePDF + ";base64," + base64.StdEncoding.EncodeToString(input.FileBytes),
		}})
	}
	parts = append(parts, contentPart{Type: "text", Text: prompt})

	body, err := p.client.PostJSON(ctx, chatRequest{
		Model:               p.client.Model,
		MaxCompletionTokens: p.client.MaxTokens,
		Messages:            []chatMessage{{Role: "user", Content: parts}},
		ResponseFormat:      responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from openai API: no choices")
	}
	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("%w (finish_reason: length)", parser.ErrOutputTruncated)
	}
	return p.client.Output(resp.Choices[0].Message.Content, prompt)
}
