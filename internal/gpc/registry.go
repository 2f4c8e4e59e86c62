// Package gpc holds the rule-based readers for General Procedure Claim text
// and the formatting rules the affidavit form expects.
package gpc

import (
	"regexp"
	"strings"

	"gpcaffidavit/internal/domain"
)

const registryMarker = "REGISTRY AT:"

var (
	registryStreetRe     = regexp.MustCompile(`(\d+\s+[A-Za-z ]+?)(?:\s+Date\b|\s+[A-Z]{2,}\s+WA\b)`)
	registryStreetLineRe = regexp.MustCompile(`^(\d+\s+[A-Za-z ]+?)(?:\s+Date\b|$)`)
	localityRe           = regexp.MustCompile(`([A-Z][A-Z ]*?\s+WA\s+\d{4})`)
	localityProbeRe      = regexp.MustCompile(`[A-Z]{2,}\s+WA\s+\d{4}`)
	registryNameStopRe   = regexp.MustCompile(`\s+(?:MAGISTRATES|Case|Ph:)`)
)

// registryLookahead is how many lines after the marker may still carry address parts.
const registryLookahead = 5

// ParseRegistry reads the court registry block that follows "REGISTRY AT:".
// It returns nil when the marker is absent.
func ParseRegistry(text string) *domain.Registry {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(line, registryMarker) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	reg := &domain.Registry{}
	line := lines[start]
	after := strings.TrimSpace(line[strings.Index(line, registryMarker)+len(registryMarker):])

	if m := registryStreetRe.FindStringSubmatch(after); m != nil {
		reg.Street = strings.TrimSpace(m[1])
	}
	if m := localityRe.FindStringSubmatch(after); m != nil {
		reg.Locality = strings.TrimSpace(m[1])
	}
	name := after
	if reg.Street != "" {
		name = strings.TrimSpace(after[:strings.Index(after, reg.Street)])
	}
	if loc := registryNameStopRe.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	reg.Name = strings.TrimSpace(name)

	end := start + 1 + registryLookahead
	if end > len(lines) {
		end = len(lines)
	}
	for i := start + 1; i < end; i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" {
			continue
		}
		if i == start+1 && looksLikeRegistryName(l) {
			if n := strings.TrimSpace(strings.SplitN(l, " (", 2)[0]); n != "" {
				reg.Name = n
			}
		}
		if reg.Street == "" && startsWithDigit(l) {
			if m := registryStreetLineRe.FindStringSubmatch(l); m != nil {
				reg.Street = strings.TrimSpace(m[1])
			}
		}
		if reg.Locality == "" && localityProbeRe.MatchString(l) {
			if m := localityRe.FindStringSubmatch(l); m != nil {
				reg.Locality = strings.TrimSpace(m[1])
			}
		}
	}

	if reg.Name == "" && reg.Street == "" && reg.Locality == "" {
		return nil
	}
	return reg
}

func looksLikeRegistryName(l string) bool {
	if len(l) >= 100 || startsWithDigit(l) {
		return false
	}
	for _, stop := range []string{"Ph:", "Date lodged", "PART", "PLEASE READ"} {
		if strings.Contains(l, stop) {
			return false
		}
	}
	return true
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
