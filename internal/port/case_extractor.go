package port

import (
	"context"
	"encoding/json"
)

// ExtractInput carries a GPC document for extraction. Either FileBytes (a PDF)
// or Text (text previously pulled out of the PDF) must be set.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
	Text        string
	FileName    string
}

// HasFile reports whether the input carries a document rather than text.
func (in ExtractInput) HasFile() bool {
	return len(in.FileBytes) > 0
}

// ExtractOutput contains the structured result from an LLM extractor.
type ExtractOutput struct {
	// StructuredData is the JSON object decoded from the model reply.
	StructuredData json.RawMessage
	RawText        string
	ModelUsed      string
	PromptUsed     string
}

// CaseExtractor abstracts LLM-based GPC extraction.
type CaseExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
