package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/domain"
)

func TestExtractedCase_Validate_EmptyDefendants(t *testing.T) {
	c := &domain.ExtractedCase{CaseNumber: "GCLM/1/2024", Claimant: "ACME"}

	err := c.Validate()

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidExtraction))
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"defendants"}, vErr.Fields)
}

func TestExtractedCase_Validate_EnumeratesAllFields(t *testing.T) {
	c := &domain.ExtractedCase{Defendants: []domain.Defendant{{Name: " "}}}

	err := c.Validate()

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"caseNumber", "claimant", "defendants[0].name"}, vErr.Fields)
}

func TestExtractedCase_Validate_OK(t *testing.T) {
	c := &domain.ExtractedCase{
		CaseNumber: "GCLM/2763/2024",
		Claimant:   "ACME Pty Ltd",
		Defendants: []domain.Defendant{{Name: "Jane Doe", Address: "1 Hay St, Perth WA 6000"}},
	}
	assert.NoError(t, c.Validate())
}

func TestAffidavitRequest_Validate(t *testing.T) {
	req := domain.AffidavitRequest{
		CaseNumber:    "GCLM/2763/2024",
		Claimant:      "ACME Pty Ltd",
		DefendantName: "Someone Else",
		AllDefendants: []domain.Defendant{{Name: "Jane Doe"}, {Name: "John Roe"}},
	}

	err := req.Validate()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"defendantName"}, vErr.Fields)
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

	req.DefendantName = "john roe"
	require.NoError(t, req.Validate())
	assert.Equal(t, 1, req.DefendantIndex())
}

func TestRequestsForCase(t *testing.T) {
	c := &domain.ExtractedCase{
		CaseNumber: "GCLM/2763/2024",
		Claimant:   "ACME Pty Ltd",
		Defendants: []domain.Defendant{
			{Name: "Jane Doe", Address: "1 Hay St"},
			{Name: "John Roe", Address: "2 Murray St"},
		},
	}

	reqs := domain.RequestsForCase(c)

	require.Len(t, reqs, 2)
	assert.Equal(t, "John Roe", reqs[1].DefendantName)
	assert.Equal(t, "2 Murray St", reqs[1].ServedAddress())
	assert.Len(t, reqs[1].AllDefendants, 2)
}

func TestFileStatus_Transitions(t *testing.T) {
	assert.True(t, domain.FileStatusQueued.CanTransition(domain.FileStatusExtracting))
	assert.True(t, domain.FileStatusExtracting.CanTransition(domain.FileStatusError))
	assert.True(t, domain.FileStatusGenerating.CanTransition(domain.FileStatusCompleted))
	assert.False(t, domain.FileStatusQueued.CanTransition(domain.FileStatusCompleted))
	assert.False(t, domain.FileStatusCompleted.CanTransition(domain.FileStatusError))
	assert.True(t, domain.FileStatusError.Terminal())
}

func TestRegistryLinesAndAddressForService(t *testing.T) {
	r := &domain.Registry{Name: "PERTH", Locality: "PERTH WA 6000"}
	assert.Equal(t, []string{"PERTH", "PERTH WA 6000"}, r.Lines())

	var nilReg *domain.Registry
	assert.Nil(t, nilReg.Lines())

	l := &domain.Lodgement{FirmName: "Smith Lawyers", FirmAddress: "Level 2 10 St Georges Tce PERTH WA 6000"}
	assert.Equal(t, "Smith Lawyers, Level 2 10 St Georges Tce PERTH WA 6000", l.AddressForService())
}

func TestRequestsForCase_DuplicateNames(t *testing.T) {
	c := &domain.ExtractedCase{
		CaseNumber: "GCLM/1/2024",
		Claimant:   "ACME Pty Ltd",
		Defendants: []domain.Defendant{
			{Name: "John Smith", Address: "1 Hay St"},
			{Name: "John Smith", Address: "2 Murray St"},
		},
	}

	reqs := domain.RequestsForCase(c)

	require.Len(t, reqs, 2)
	for i := range reqs {
		require.NoError(t, reqs[i].Validate())
		assert.Equal(t, i, reqs[i].DefendantIndex())
	}
	assert.Equal(t, "Second Defendant", domain.OrdinalLabel(reqs[1].DefendantIndex()))
	assert.Equal(t, "2 Murray St", reqs[1].ServedAddress())
}

func TestAffidavitRequest_Position(t *testing.T) {
	pos := 1
	req := domain.AffidavitRequest{
		CaseNumber:    "GCLM/1/2024",
		Claimant:      "ACME",
		DefendantName: "john smith",
		Position:      &pos,
		AllDefendants: []domain.Defendant{{Name: "John Smith"}, {Name: "John Smith"}},
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, 1, req.DefendantIndex())

	req.DefendantName = "Jane Doe"
	err := req.Validate()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"defendantIndex"}, vErr.Fields)

	req.DefendantName = "John Smith"
	pos = 2
	require.Error(t, req.Validate())
	assert.Equal(t, -1, req.DefendantIndex())
}
