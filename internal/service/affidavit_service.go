package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/docx"
	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/gpc"
	"gpcaffidavit/internal/port"
)

// AffidavitService fills the Affidavit of Service template.
type AffidavitService interface {
	Generate(ctx context.Context, req *domain.AffidavitRequest) (*domain.GeneratedAffidavit, error)
	GenerateForCase(ctx context.Context, c *domain.ExtractedCase) ([]domain.GeneratedAffidavit, error)
	// Ready reports whether the template can be loaded.
	Ready(ctx context.Context) error
}

type affidavitService struct {
	source      port.TemplateSource
	filler      docx.Filler
	style       domain.NameStyle
	processName string
}

// NewAffidavitService creates a new AffidavitService implementation.
func NewAffidavitService(source port.TemplateSource, filler docx.Filler, cfg config.TemplateConfig) AffidavitService {
	return &affidavitService{
		source:      source,
		filler:      filler,
		style:       domain.ParseNameStyle(cfg.NameStyle),
		processName: cfg.ProcessName,
	}
}

func (s *affidavitService) Generate(ctx context.Context, req *domain.AffidavitRequest) (*domain.GeneratedAffidavit, error) {
	if req == nil {
		return nil, &domain.ValidationError{Kind: domain.ErrInvalidRequest, Fields: []string{"body"}}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := s.source.Load(ctx)
	if err != nil {
		log.Printf("affidavitService.Generate: loading template %s: %v", s.source.Describe(), err)
		return nil, err
	}

	content, err := s.filler.Fill(tmpl, s.fields(req))
	if err != nil {
		log.Printf("affidavitService.Generate: filling template for %s / %s: %v", req.CaseNumber, req.DefendantName, err)
		return nil, err
	}

	return &domain.GeneratedAffidavit{
		FileName:      domain.AffidavitFileName(req.CaseNumber, req.DefendantName),
		CaseNumber:    req.CaseNumber,
		Claimant:      req.Claimant,
		DefendantName: req.DefendantName,
		Defendants:    req.AllDefendants,
		Content:       content,
	}, nil
}

// GenerateForCase produces one affidavit per defendant, in claim order. Any
// failure fails the whole case.
func (s *affidavitService) GenerateForCase(ctx context.Context, c *domain.ExtractedCase) ([]domain.GeneratedAffidavit, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	reqs := domain.RequestsForCase(c)
	out := make([]domain.GeneratedAffidavit, 0, len(reqs))
	for i := range reqs {
		a, err := s.Generate(ctx, &reqs[i])
		if err != nil {
			return nil, fmt.Errorf("affidavit for %s: %w", reqs[i].DefendantName, err)
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *affidavitService) Ready(ctx context.Context) error {
	_, err := s.source.Load(ctx)
	return err
}

// fields maps a validated request onto the template fields.
func (s *affidavitService) fields(req *domain.AffidavitRequest) docx.Fields {
	idx := req.DefendantIndex()

	defendants := make([]string, len(req.AllDefendants))
	for i, d := range req.AllDefendants {
		defendants[i] = gpc.FormatPartyName(d.Name, s.style, false)
	}

	f := docx.Fields{
		CaseNumber:      strings.TrimSpace(req.CaseNumber),
		Claimant:        gpc.FormatPartyName(req.Claimant, s.style, true),
		ClaimantAddress: gpc.FormatAddress(req.ClaimantAddress),
		Registry:        strings.TrimSpace(req.Registry),
		Defendants:      defendants,
		ServedDefendant: defendants[idx],
		ServedOrdinal:   domain.OrdinalLabel(idx),
		ServedAddress:   gpc.FormatAddress(req.ServedAddress()),
		ProcessName:     s.processName,
		DateLodged:      req.DateLodged,
	}

	if r := req.RegistryDetails; r != nil {
		f.RegistryName = r.Name
		f.RegistryStreet = r.Street
		f.RegistryLocality = r.Locality
	} else {
		f.RegistryName = f.Registry
	}

	if l := req.Lodgement; l != nil {
		f.LodgedBy = l.LodgedBy
		f.AddressForService = l.AddressForService()
		f.Telephone = gpc.FormatPhoneNumber(l.Telephone)
		f.Email = l.Email
		f.Reference = l.Reference
	}
	return f
}
