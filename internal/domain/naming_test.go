package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gpcaffidavit/internal/domain"
)

func TestAffidavitFileName(t *testing.T) {
	assert.Equal(t, "Affidavit_GCLM-2763-2024.docx", domain.AffidavitFileName("GCLM/2763/2024", ""))
	assert.Equal(t, "Affidavit_GCLM-2763-2024_John_O_Brien.docx", domain.AffidavitFileName("GCLM/2763/2024", "John O'Brien"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "John_O_Brien", domain.SanitizeName("John O'Brien"))
	assert.Equal(t, "ACME_Pty_Ltd_", domain.SanitizeName("ACME Pty Ltd."))
	assert.Equal(t, "GCLM-2763-2024", domain.SanitizeCaseNumber("GCLM/2763/2024"))
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "First", 2: "Second", 6: "Sixth",
		7: "7th", 11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 111: "111th",
	}
	for n, want := range cases {
		assert.Equal(t, want, domain.Ordinal(n), "n=%d", n)
	}
	assert.Equal(t, "Second Defendant", domain.OrdinalLabel(1))
	assert.Equal(t, "7th Defendant", domain.OrdinalLabel(6))
}
