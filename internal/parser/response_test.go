package parser_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/parser"
)

func caseNumberOf(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var v struct {
		CaseNumber string `json:"caseNumber"`
	}
	require.NoError(t, json.Unmarshal(raw, &v))
	return v.CaseNumber
}

func TestDecodeModelJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare object", `{"caseNumber":"GCLM/2763/2024"}`},
		{"json fence in prose", "Here is the data you asked for:\n```json\n{\"caseNumber\":\"GCLM/2763/2024\"}\n```\nLet me know if you need more."},
		{"unlabelled fence", "```\n{\"caseNumber\":\"GCLM/2763/2024\"}\n```"},
		{"brace span", `Sure! {"caseNumber":"GCLM/2763/2024"} hope this helps`},
		{"bad json fence then good fence", "```json\n{not json}\n```\n```\n{\"caseNumber\":\"GCLM/2763/2024\"}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := parser.DecodeModelJSON(tt.text)
			require.NoError(t, err)
			assert.Equal(t, "GCLM/2763/2024", caseNumberOf(t, raw))
		})
	}
}

func TestDecodeModelJSON_Unparsable(t *testing.T) {
	for _, text := range []string{"", "I could not read the document.", "```json\n[1,2]\n```"} {
		_, err := parser.DecodeModelJSON(text)
		require.Error(t, err, text)
		assert.ErrorIs(t, err, domain.ErrUnparsableResponse)
	}
}

func TestBuildGPCPrompt(t *testing.T) {
	withText := parser.BuildGPCPrompt("REGISTRY AT: PERTH")
	assert.Contains(t, withText, "GPC Document Text:\nREGISTRY AT: PERTH")
	assert.Contains(t, withText, `"defendants"`)
	assert.Contains(t, withText, "ONLY")

	attached := parser.BuildGPCPrompt("  ")
	assert.Contains(t, attached, "The GPC document is attached.")
	assert.NotContains(t, attached, "GPC Document Text:")
}
