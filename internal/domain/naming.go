package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var ordinalWords = []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth"}

// Ordinal returns the ordinal for a 1-based position: First..Sixth, then
// numeric English ordinals (7th, 21st, 22nd, 23rd, 111th).
func Ordinal(n int) string {
	if n >= 1 && n <= len(ordinalWords) {
		return ordinalWords[n-1]
	}
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// OrdinalLabel returns e.g. "Second Defendant" for a zero-based index.
func OrdinalLabel(index int) string {
	return Ordinal(index+1) + " Defendant"
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeCaseNumber makes a case number safe for a file name.
func SanitizeCaseNumber(caseNumber string) string {
	return strings.ReplaceAll(caseNumber, "/", "-")
}

// SanitizeName replaces every non-alphanumeric character with an underscore.
func SanitizeName(name string) string {
	return nonAlnum.ReplaceAllString(name, "_")
}

// AffidavitFileName builds Affidavit_{case}[_{defendant}].docx.
func AffidavitFileName(caseNumber, defendantName string) string {
	name := "Affidavit_" + SanitizeCaseNumber(caseNumber)
	if defendantName != "" {
		name += "_" + SanitizeName(defendantName)
	}
	return name + ".docx"
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
