package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/parser"
	"gpcaffidavit/internal/port"
)

// stubExtractor is a minimal CaseExtractor for testing the factory.
type stubExtractor struct {
	model string
}

func (s *stubExtractor) Extract(_ context.Context, _ port.ExtractInput) (*port.ExtractOutput, error) {
	return &port.ExtractOutput{ModelUsed: s.model}, nil
}

func init() {
	parser.RegisterProvider("stub-a", func(cfg *config.ParserProviderConfig) (port.CaseExtractor, error) {
		return &stubExtractor{model: "a"}, nil
	})
	parser.RegisterProvider("stub-b", func(cfg *config.ParserProviderConfig) (port.CaseExtractor, error) {
		return &stubExtractor{model: "b"}, nil
	})
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	p, err := parser.NewParser(&config.ParserProviderConfig{Provider: "stub-a"})

	require.NoError(t, err)
	out, err := p.Extract(context.Background(), port.ExtractInput{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "a", out.ModelUsed)
	assert.Contains(t, parser.Providers(), "stub-a")
}

func TestFactory_UnknownProvider(t *testing.T) {
	p, err := parser.NewParser(&config.ParserProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

func TestNewFromConfig_SingleProvider(t *testing.T) {
	ex, err := parser.NewFromConfig(&config.ParserConfig{Provider: "stub-a", APIKey: "k"})

	require.NoError(t, err)
	_, isFallback := ex.(*parser.FallbackParser)
	assert.False(t, isFallback)
}

func TestNewFromConfig_ChainWrapsInFallback(t *testing.T) {
	ex, err := parser.NewFromConfig(&config.ParserConfig{
		Primary:   config.ParserProviderConfig{Provider: "stub-a", APIKey: "k"},
		Secondary: config.ParserProviderConfig{Provider: "stub-b", APIKey: "k"},
	})

	require.NoError(t, err)
	_, isFallback := ex.(*parser.FallbackParser)
	assert.True(t, isFallback)
}

func TestNewFromConfig_MissingAPIKey(t *testing.T) {
	_, err := parser.NewFromConfig(&config.ParserConfig{Provider: "stub-a"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is not set")
}
