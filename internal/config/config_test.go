package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/config"
)

func TestParserConfig_PrimaryConfig_LegacyFallback(t *testing.T) {
	cfg := config.ParserConfig{
		Provider:     "claude",
		APIKey:       "sk-legacy",
		DefaultModel: "claude-sonnet-4-20250514",
		MaxTokens:    2048,
		TimeoutSecs:  30,
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "claude", primary.Provider)
	assert.Equal(t, "sk-legacy", primary.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", primary.DefaultModel)
	assert.Equal(t, 2048, primary.MaxTokens)
	assert.Equal(t, 30, primary.TimeoutSecs)
}

func TestParserConfig_PrimaryConfig_ExplicitPrimary(t *testing.T) {
	cfg := config.ParserConfig{
		Provider: "legacy-should-be-ignored",
		Primary: config.ParserProviderConfig{
			Provider: "gemini",
			APIKey:   "g-primary",
		},
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "gemini", primary.Provider)
	assert.Equal(t, "g-primary", primary.APIKey)
}

func TestParserConfig_Chain(t *testing.T) {
	cfg := config.ParserConfig{
		Provider:  "claude",
		Secondary: config.ParserProviderConfig{Provider: "gemini"},
	}
	chain := cfg.Chain()
	require.Len(t, chain, 2)
	assert.Equal(t, "claude", chain[0].Provider)
	assert.Equal(t, "gemini", chain[1].Provider)
	assert.Nil(t, cfg.TertiaryConfig())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AFFIDAVIT_TEMPLATE_STRATEGY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.False(t, cfg.Server.DebugErrors)
	assert.Equal(t, "builtin", cfg.Template.Source)
	assert.Equal(t, "court", cfg.Template.NameStyle)
	assert.Equal(t, "General Procedure Claim", cfg.Template.ProcessName)
	assert.Contains(t, cfg.Template.SearchPaths, "/var/task")
	assert.Equal(t, int64(20*1024*1024), cfg.Upload.MaxFileBytes())
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AFFIDAVIT_TEMPLATE_STRATEGY", "placeholder")
	t.Setenv("AFFIDAVIT_SERVER_DEBUG_ERRORS", "true")
	t.Setenv("AFFIDAVIT_PARSER_SECONDARY_PROVIDER", "openai")
	t.Setenv("AFFIDAVIT_CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("PORT", "9999")
	t.Setenv("AFFIDAVIT_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "placeholder", cfg.Template.Strategy)
	assert.True(t, cfg.Server.DebugErrors)
	require.NotNil(t, cfg.Parser.SecondaryConfig())
	assert.Equal(t, "openai", cfg.Parser.SecondaryConfig().Provider)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, ":9999", cfg.Server.Port)
}

func TestLoad_AnthropicKeyFallback(t *testing.T) {
	t.Setenv("AFFIDAVIT_PARSER_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-test", cfg.Parser.APIKey)
}

func TestS3Config_PresignExpiry(t *testing.T) {
	assert.Equal(t, time.Hour, (&config.S3Config{}).PresignExpiry())
	assert.Equal(t, 15*time.Minute, (&config.S3Config{PresignExpirySecs: 900}).PresignExpiry())
}
