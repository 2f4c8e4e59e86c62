package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrMissingInput        = errors.New("no PDF file or text provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidPDF          = errors.New("file is not a readable PDF")
	ErrExtractionFailed    = errors.New("failed to extract data from GPC")
	ErrUnparsableResponse  = errors.New("could not parse JSON from model response")
	ErrInvalidExtraction   = errors.New("extracted data does not match expected format")
	ErrInvalidRequest      = errors.New("invalid affidavit request")
	ErrTemplateNotFound    = errors.New("template file not found")
	ErrTemplateRender      = errors.New("failed to render affidavit template")
	ErrEmptyBatch          = errors.New("no files in batch")
	ErrTooManyFiles        = errors.New("too many files in batch")
	ErrInvalidTransition   = errors.New("invalid file status transition")
)

// ValidationError lists every field that failed boundary validation.
// It wraps a sentinel so callers can still match with errors.Is.
type ValidationError struct {
	Kind   error
	Fields []string
}

func (e *ValidationError) Error() string {
	return e.Kind.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// TemplateNotFoundError records the locations probed for a template.
type TemplateNotFoundError struct {
	Tried []string
}

func (e *TemplateNotFoundError) Error() string {
	return ErrTemplateNotFound.Error() + " (tried: " + strings.Join(e.Tried, ", ") + ")"
}

func (e *TemplateNotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}
