package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/gpc"
	"gpcaffidavit/internal/parser"
	"gpcaffidavit/internal/pdftext"
	"gpcaffidavit/internal/port"
	"gpcaffidavit/internal/validator"
)

// ExtractInput is either an uploaded GPC PDF or text already read from one.
type ExtractInput struct {
	FileName string
	Data     []byte
	Text     string
}

// ExtractionService turns a GPC into a validated ExtractedCase.
type ExtractionService interface {
	Extract(ctx context.Context, input *ExtractInput) (*domain.ExtractedCase, error)
}

type extractionService struct {
	extractor port.CaseExtractor
	validator *validator.ExtractionValidator
	upload    config.UploadConfig
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(extractor port.CaseExtractor, v *validator.ExtractionValidator, upload config.UploadConfig) ExtractionService {
	return &extractionService{
		extractor: extractor,
		validator: v,
		upload:    upload,
	}
}

func (s *extractionService) Extract(ctx context.Context, input *ExtractInput) (*domain.ExtractedCase, error) {
	if input == nil || (len(input.Data) == 0 && strings.TrimSpace(input.Text) == "") {
		return nil, domain.ErrMissingInput
	}

	text := input.Text
	req := port.ExtractInput{FileName: input.FileName, Text: input.Text}

	if len(input.Data) > 0 {
		if err := s.checkUpload(input); err != nil {
			return nil, err
		}
		info, err := pdftext.Inspect(input.Data)
		if err != nil {
			return nil, err
		}
		log.Printf("extractionService.Extract: %s has %d page(s)", input.FileName, info.Pages)

		if text == "" && s.upload.ExtractPDFText && !info.Encrypted {
			if pdfText, err := pdftext.PlainText(input.Data); err != nil {
				log.Printf("extractionService.Extract: no text layer for %s: %v", input.FileName, err)
			} else {
				text = pdfText
			}
		}
		req.FileBytes = input.Data
		req.ContentType = domain.ContentTypePDF
	}

	out, err := s.extractor.Extract(ctx, req)
	if err != nil {
		log.Printf("extractionService.Extract: extractor failed for %q: %v", input.FileName, err)
		return nil, classifyExtractorError(err)
	}
	log.Printf("extractionService.Extract: %q read by %s", input.FileName, out.ModelUsed)

	if err := s.validator.Validate(out.StructuredData); err != nil {
		return nil, err
	}

	c, err := normalizeCase(out.StructuredData)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.SourceFile = input.FileName
	enrich(c, text)
	return c, nil
}

func (s *extractionService) checkUpload(input *ExtractInput) error {
	if limit := s.upload.MaxFileBytes(); limit > 0 && int64(len(input.Data)) > limit {
		return fmt.Errorf("%w: %d bytes (limit %d)", domain.ErrFileTooLarge, len(input.Data), limit)
	}
	if ext := strings.ToLower(filepath.Ext(input.FileName)); ext != "" && ext != ".pdf" {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, ext)
	}
	if !pdftext.IsPDF(input.Data) {
		return fmt.Errorf("%w: not a PDF", domain.ErrUnsupportedFileType)
	}
	return nil
}

// classifyExtractorError keeps cancellation, rate limits and unparsable
// replies recognisable and folds everything else into ErrExtractionFailed.
func classifyExtractorError(err error) error {
	var rle *parser.RateLimitError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, domain.ErrUnparsableResponse):
		return err
	case errors.As(err, &rle):
		return fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
}

// modelCase is the loose shape models actually return.
type modelCase struct {
	CaseNumber       string `json:"caseNumber"`
	Claimant         string `json:"claimant"`
	ClaimantAddress  string `json:"claimantAddress"`
	Registry         string `json:"registry"`
	Defendant        string `json:"defendant"`
	DefendantAddress string `json:"defendantAddress"`
	Defendants       []struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"defendants"`
}

// normalizeCase trims every field, drops nameless defendants and folds the
// singular defendant shape into the list.
func normalizeCase(raw json.RawMessage) (*domain.ExtractedCase, error) {
	var m modelCase
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}

	c := &domain.ExtractedCase{
		CaseNumber:      strings.TrimSpace(m.CaseNumber),
		Claimant:        strings.TrimSpace(m.Claimant),
		ClaimantAddress: strings.TrimSpace(m.ClaimantAddress),
		Registry:        strings.TrimSpace(m.Registry),
		Defendants:      []domain.Defendant{},
	}
	for _, d := range m.Defendants {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		c.Defendants = append(c.Defendants, domain.Defendant{Name: name, Address: strings.TrimSpace(d.Address)})
	}
	if len(c.Defendants) == 0 && strings.TrimSpace(m.Defendant) != "" {
		c.Defendants = append(c.Defendants, domain.Defendant{
			Name:    strings.TrimSpace(m.Defendant),
			Address: strings.TrimSpace(m.DefendantAddress),
		})
	}
	return c, nil
}

// enrich fills what the model is not asked for from the GPC text itself.
func enrich(c *domain.ExtractedCase, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if reg := gpc.ParseRegistry(text); reg != nil {
		c.RegistryDetails = reg
		if c.Registry == "" {
			c.Registry = strings.Join(reg.Lines(), ", ")
		}
	}
	c.DateLodged = gpc.ParseDateLodged(text)
	c.Lodgement = gpc.ParseLodgement(text)
}
