package gpc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gpcaffidavit/internal/domain"
)

var streetTypes = []string{
	"Street", "St", "Road", "Rd", "Drive", "Dr", "Avenue", "Ave",
	"Court", "Ct", "Place", "Pl", "Crescent", "Cres", "Lane", "La",
	"Way", "Terrace", "Tce", "Circuit", "Cct", "Close", "Cl",
	"Boulevard", "Blvd", "Parade", "Pde", "Highway", "Hwy",
	"Grove", "Gr", "Rise", "Mews", "Walk", "Gardens", "Gdns",
}

var streetTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(streetTypes))
	for _, t := range streetTypes {
		m[strings.ToUpper(t)] = true
	}
	return m
}()

var (
	stateTailRe = regexp.MustCompile(`(?s)^(.*?)[\s,]+(WA|NSW|VIC|QLD|SA|TAS|NT|ACT)\s+(\d{4})$`)
	wordRe      = regexp.MustCompile(`\S+`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

// companyMarkers identify corporate parties, which keep their casing whole.
var companyMarkers = map[string]bool{
	"PTY": true, "LTD": true, "LIMITED": true, "INC": true, "CORPORATION": true,
	"CORP": true, "COMPANY": true, "CO": true, "TRUST": true, "BANK": true,
	"COUNCIL": true, "LLC": true, "PLC": true, "ASSOCIATION": true,
}

// IsCompanyName reports whether name carries a corporate designation.
func IsCompanyName(name string) bool {
	for _, w := range strings.Fields(name) {
		if companyMarkers[strings.Trim(strings.ToUpper(w), ".,()")] {
			return true
		}
	}
	return false
}

// FormatClaimantName upper-cases the claimant the way the court form prints parties.
func FormatClaimantName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// FormatDefendantName renders an individual as "Given Names SURNAME". A
// single word or a company name is upper-cased whole.
func FormatDefendantName(name string) string {
	parts := strings.Fields(name)
	switch {
	case len(parts) == 0:
		return ""
	case len(parts) == 1 || IsCompanyName(name):
		return strings.ToUpper(strings.Join(parts, " "))
	}

	given := make([]string, len(parts)-1)
	for i, p := range parts[:len(parts)-1] {
		given[i] = capitalize(p)
	}
	return strings.Join(given, " ") + " " + strings.ToUpper(parts[len(parts)-1])
}

// FormatPartyName applies style to a claimant (isClaimant) or defendant name.
func FormatPartyName(name string, style domain.NameStyle, isClaimant bool) string {
	if style == domain.NameStyleVerbatim {
		return strings.TrimSpace(name)
	}
	if isClaimant {
		return FormatClaimantName(name)
	}
	return FormatDefendantName(name)
}

// FormatAddress separates the street from a trailing "SUBURB STATE
// POSTCODE" with a comma and title-cases an upper-case suburb. Addresses
// without that tail, or whose suburb cannot be told apart from the street,
// are returned trimmed.
//
// The suburb is, in order of preference:
//   - the last comma-separated segment, when it has no digits and is either
//     upper-case or carries no street type;
//   - the trailing run of upper-case words, cut after the last street type
//     inside the run.
func FormatAddress(address string) string {
	address = strings.TrimSpace(address)
	m := stateTailRe.FindStringSubmatch(address)
	if m == nil {
		return address
	}

	street, suburb := splitSuburb(m[1])
	if street == "" || suburb == "" {
		return address
	}
	if strings.ToUpper(suburb) == suburb {
		suburb = titleCase(suburb)
	}
	return street + ", " + suburb + " " + m[2] + " " + m[3]
}

func splitSuburb(head string) (street, suburb string) {
	if i := strings.LastIndex(head, ","); i >= 0 {
		seg := strings.TrimSpace(head[i+1:])
		if seg != "" && !strings.ContainsAny(seg, "0123456789") &&
			(strings.ToUpper(seg) == seg || !hasStreetType(strings.Fields(seg))) {
			return strings.TrimSpace(head[:i]), seg
		}
	}

	locs := wordRe.FindAllStringIndex(head, -1)
	words := make([]string, len(locs))
	for i, loc := range locs {
		words[i] = head[loc[0]:loc[1]]
	}

	start := len(words)
	for start > 0 && isUpperWord(words[start-1]) {
		start--
	}
	for i := len(words) - 1; i >= start; i-- {
		if isStreetType(words[i]) {
			start = i + 1
			break
		}
	}
	if start == 0 || start == len(words) {
		return "", ""
	}

	street = strings.TrimRight(head[:locs[start-1][1]], ", ")
	suburb = strings.Join(words[start:], " ")
	return street, suburb
}

func hasStreetType(words []string) bool {
	for _, w := range words {
		if isStreetType(w) {
			return true
		}
	}
	return false
}

// isUpperWord reports whether w is a word of capital letters, allowing
// hyphens and apostrophes.
func isUpperWord(w string) bool {
	letters := 0
	for _, r := range w {
		switch {
		case unicode.IsUpper(r):
			letters++
		case r == '-' || r == '\'':
		default:
			return false
		}
	}
	return letters > 0
}

func isStreetType(word string) bool {
	return streetTypeSet[strings.ToUpper(strings.Trim(word, ".,"))]
}

// FormatPhoneNumber renders ten-digit Australian numbers: mobiles as
// "04XX XXX XXX", landlines as "(0X) XXXX XXXX". Anything else is returned as is.
func FormatPhoneNumber(phone string) string {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) != 10 || digits[0] != '0' {
		return phone
	}
	if strings.HasPrefix(digits, "04") {
		return digits[:4] + " " + digits[4:7] + " " + digits[7:]
	}
	return "(" + digits[:2] + ") " + digits[2:6] + " " + digits[6:]
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
