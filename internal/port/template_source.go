package port

import "context"

// TemplateSource loads the raw bytes of the affidavit .docx template.
type TemplateSource interface {
	Load(ctx context.Context) ([]byte, error)
	// Describe names where the template comes from, for logs and readiness output.
	Describe() string
}
