// Package gemini reads GPCs with the Google Gemini generateContent API.
package gemini

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
	apiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.0-flash"
)

func init() {
	parser.RegisterProvider("gemini", func(cfg *config.ParserProviderConfig) (port.CaseExtractor, error) {
		return NewParser(cfg), nil
	})
}

// Parser implements port.CaseExtractor using the Gemini API.
type Parser struct {
	client *parser.Client
}

// NewParser creates a Gemini-based extractor from a provider config.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return NewParserWithEndpoint(cfg, "")
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
// An empty endpoint selects the public API for the configured model.
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	c := parser.NewClient("gemini", cfg, defaultModel)
	c.URL = endpoint
	if c.URL == "" {
		c.URL = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, c.Model)
	}
	c.Header.Set("x-goog-api-key", cfg.APIKey)
	return &Parser{client: c}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	InlineData *inlineData `json:"inline_data,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	MaxOutputTokens  int    `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (p *Parser) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	prompt := parser.BuildGPCPrompt(input.Text)

	var parts []part
	if input.HasFile() {
		if input.ContentType != domain.ContentTypePDF {
			return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
		}
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: domain.ContentTypePDF,
			Data:     base64.StdEncoding.EncodeToString(input.FileBytes),
		}})
	}
	parts = append(parts, part{Text: prompt})

	body, err := p.client.PostJSON(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			MaxOutputTokens:  p.client.MaxTokens,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini API: no candidates")
	}
	first := resp.Candidates[0]
	if first.FinishReason == "MAX_TOKENS" {
		return nil, fmt.Errorf("%w (finishReason: MAX_TOKENS)", parser.ErrOutputTruncated)
	}
	if len(first.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini API: no parts")
	}
	return p.client.Output(first.Content.Parts[0].Text, prompt)
}
