package gpc

import (
	"regexp"
	"strings"

	"gpcaffidavit/internal/domain"
)

const (
	lodgedByClaimantLawyer  = "Claimant's Lawyer"
	lodgedByDefendantLawyer = "Defendant's Lawyer"
)

var (
	dateLodgedRe   = regexp.MustCompile(`(?i)Date lodged:\s*(\d{2}/\d{2}/\d{4})`)
	serviceAddrRe  = regexp.MustCompile(`(?is)address for service:\s+(.+?)\s*(?:Claimant ref:|Description of Claim)`)
	firmSplitRe    = regexp.MustCompile(`(?i)^(.+?)\s+(Level|Suite|\d+)\s+(.+)$`)
	claimantRefRe  = regexp.MustCompile(`(?im)Claimant ref:[ \t]*(\S+(?:[ \t]+\S+)*?)(?:\s+Claimant email:|\s+Claimant telephone:|\s+Description of Claim|$)`)
	claimantMailRe = regexp.MustCompile(`(?i)Claimant email:\s*(\S+@\S+)`)
	claimantTelRe  = regexp.MustCompile(`(?im)Claimant telephone:[ \t]*([0-9() -]+?)(?:\s+Claimant mobile:|\s+Claimant email:|\s+Description of Claim|$)`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// ParseDateLodged returns the dd/mm/yyyy lodgement date, or "".
func ParseDateLodged(text string) string {
	if m := dateLodgedRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ParseLodgement reads the lodging party's address for service and contact
// details. It returns nil for empty text.
func ParseLodgement(text string) *domain.Lodgement {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	l := &domain.Lodgement{LodgedBy: lodgedByClaimantLawyer}
	if strings.Contains(text, "Defendant's address") ||
		strings.Contains(text, "Defendant details") ||
		strings.Contains(strings.ToLower(text), "defendant ref:") {
		l.LodgedBy = lodgedByDefendantLawyer
	}

	if m := serviceAddrRe.FindStringSubmatch(text); m != nil {
		full := collapseSpace(m[1])
		if parts := firmSplitRe.FindStringSubmatch(full); parts != nil {
			l.FirmName = strings.TrimSpace(parts[1])
			l.FirmAddress = strings.TrimSpace(parts[2] + " " + parts[3])
		}
	}
	if m := claimantRefRe.FindStringSubmatch(text); m != nil {
		l.Reference = strings.TrimSpace(m[1])
	}
	if m := claimantMailRe.FindStringSubmatch(text); m != nil {
		l.Email = strings.TrimSpace(m[1])
	}
	if m := claimantTelRe.FindStringSubmatch(text); m != nil {
		l.Telephone = FormatPhoneNumber(strings.TrimSpace(m[1]))
	}
	return l
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
