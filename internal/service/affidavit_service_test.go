package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/docx"
	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/service"
	"gpcaffidavit/internal/template"
	"gpcaffidavit/mocks"
)

func testTemplateConfig(strategy, style string) config.TemplateConfig {
	return config.TemplateConfig{
		Strategy:    strategy,
		Source:      "builtin",
		NameStyle:   style,
		ProcessName: "General Procedure Claim",
	}
}

func newAffidavitService(t *testing.T, strategy, style string) service.AffidavitService {
	t.Helper()
	src, err := template.NewBuiltinSource(strategy)
	require.NoError(t, err)
	filler, err := docx.NewFiller(strategy)
	require.NoError(t, err)
	return service.NewAffidavitService(src, filler, testTemplateConfig(strategy, style))
}

func twoDefendantRequest() *domain.AffidavitRequest {
	return &domain.AffidavitRequest{
		CaseNumber:    "GCLM/2763/2024",
		Claimant:      "Acme Finance Pty Ltd",
		DefendantName: "John Roe",
		AllDefendants: []domain.Defendant{
			{Name: "Jane Doe", Address: "1 Hay Street PERTH WA 6000"},
			{Name: "John Roe", Address: "12 Smith Street MIDLAND WA 6056"},
		},
		DateLodged:      "03/09/2024",
		RegistryDetails: &domain.Registry{Name: "Central Law Courts", Street: "501 Hay Street", Locality: "PERTH WA 6000"},
		Lodgement: &domain.Lodgement{
			LodgedBy:    "Claimant's Lawyer",
			FirmName:    "Smith Partners Lawyers",
			FirmAddress: "Level 5 100 St Georges Terrace PERTH WA 6000",
			Telephone:   "0892211234",
			Email:       "jane@smithpartners.com.au",
			Reference:   "SP 1234",
		},
	}
}

func TestAffidavitService_Generate_SecondDefendant(t *testing.T) {
	for _, strategy := range []string{template.StrategyContentControl, template.StrategyPlaceholder} {
		t.Run(strategy, func(t *testing.T) {
			svc := newAffidavitService(t, strategy, "court")

			got, err := svc.Generate(context.Background(), twoDefendantRequest())
			require.NoError(t, err)

			assert.Equal(t, "Affidavit_GCLM-2763-2024_John_Roe.docx", got.FileName)
			assert.Equal(t, "John Roe", got.DefendantName)

			text, err := docx.VisibleText(got.Content)
			require.NoError(t, err)
			assert.Contains(t, text, "GCLM/2763/2024")
			assert.Contains(t, text, "ACME FINANCE PTY LTD")
			assert.Contains(t, text, "I served John ROE (the Second Defendant)")
			assert.Contains(t, text, "12 Smith Street, Midland WA 6056")
			assert.Contains(t, text, "Defendants in this case: Jane DOE, John ROE")
			assert.Contains(t, text, "Smith Partners Lawyers, Level 5 100 St Georges Terrace PERTH WA 6000")
			assert.Contains(t, text, "(08) 9221 1234")
			assert.Contains(t, text, "lodged on 03/09/2024")
			assert.NotContains(t, text, "(the First Defendant)")
		})
	}
}

func TestAffidavitService_Generate_Verbatim(t *testing.T) {
	svc := newAffidavitService(t, template.StrategyContentControl, "verbatim")

	got, err := svc.Generate(context.Background(), twoDefendantRequest())
	require.NoError(t, err)

	text, err := docx.VisibleText(got.Content)
	require.NoError(t, err)
	assert.Contains(t, text, "Acme Finance Pty Ltd")
	assert.Contains(t, text, "I served John Roe (the Second Defendant)")
}

func TestAffidavitService_Generate_Idempotent(t *testing.T) {
	svc := newAffidavitService(t, template.StrategyContentControl, "court")

	a, err := svc.Generate(context.Background(), twoDefendantRequest())
	require.NoError(t, err)
	b, err := svc.Generate(context.Background(), twoDefendantRequest())
	require.NoError(t, err)

	assert.Equal(t, a.Content, b.Content)
}

func TestAffidavitService_Generate_InvalidRequest(t *testing.T) {
	src := new(mocks.MockTemplateSource)
	svc := service.NewAffidavitService(src, &docx.ContentControlFiller{}, testTemplateConfig("contentcontrol", "court"))

	req := twoDefendantRequest()
	req.DefendantName = "Nobody"
	_, err := svc.Generate(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"defendantName"}, verr.Fields)
	src.AssertNotCalled(t, "Load", mock.Anything)
}

func TestAffidavitService_Generate_TemplateMissing(t *testing.T) {
	src := new(mocks.MockTemplateSource)
	src.On("Load", mock.Anything).Return(nil, &domain.TemplateNotFoundError{Tried: []string{"./templates/form.docx"}})
	src.On("Describe").Return("file:form.docx")
	svc := service.NewAffidavitService(src, &docx.ContentControlFiller{}, testTemplateConfig("contentcontrol", "court"))

	_, err := svc.Generate(context.Background(), twoDefendantRequest())

	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	assert.ErrorIs(t, svc.Ready(context.Background()), domain.ErrTemplateNotFound)
}

func TestAffidavitService_GenerateForCase(t *testing.T) {
	svc := newAffidavitService(t, template.StrategyContentControl, "court")

	c := &domain.ExtractedCase{
		CaseNumber: "GCLM/2763/2024",
		Claimant:   "Acme Finance Pty Ltd",
		Defendants: []domain.Defendant{{Name: "Jane Doe"}, {Name: "John O'Brien"}},
	}
	got, err := svc.GenerateForCase(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Affidavit_GCLM-2763-2024_Jane_Doe.docx", got[0].FileName)
	assert.Equal(t, "Affidavit_GCLM-2763-2024_John_O_Brien.docx", got[1].FileName)

	_, err = svc.GenerateForCase(context.Background(), &domain.ExtractedCase{CaseNumber: "X", Claimant: "Y"})
	assert.ErrorIs(t, err, domain.ErrInvalidExtraction)
}

func TestAffidavitService_GenerateForCase_DuplicateNames(t *testing.T) {
	svc := newAffidavitService(t, template.StrategyContentControl, "court")

	c := &domain.ExtractedCase{
		CaseNumber: "GCLM/1/2024",
		Claimant:   "ACME Pty Ltd",
		Defendants: []domain.Defendant{
			{Name: "John Smith", Address: "1 Hay Street PERTH WA 6000"},
			{Name: "John Smith", Address: "7 Court Road MIDLAND WA 6056"},
		},
	}

	got, err := svc.GenerateForCase(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first, err := docx.VisibleText(got[0].Content)
	require.NoError(t, err)
	second, err := docx.VisibleText(got[1].Content)
	require.NoError(t, err)

	assert.Contains(t, first, "I served John SMITH (the First Defendant)")
	assert.Contains(t, first, "1 Hay Street, Perth WA 6000")
	assert.Contains(t, second, "I served John SMITH (the Second Defendant)")
	assert.Contains(t, second, "7 Court Road, Midland WA 6056")
	assert.NotContains(t, second, "(the First Defendant)")
}
