package domain

import (
	"strings"
)

// Defendant is a party named on the claim.
type Defendant struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Registry holds the court registry address split into printable lines.
type Registry struct {
	Name     string `json:"name,omitempty"`
	Street   string `json:"street,omitempty"`
	Locality string `json:"locality,omitempty"`
}

// Lines returns the non-empty registry lines in print order.
func (r *Registry) Lines() []string {
	if r == nil {
		return nil
	}
	var lines []string
	for _, l := range []string{r.Name, r.Street, r.Locality} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Lodgement describes who lodged the claim and how to contact them.
type Lodgement struct {
	LodgedBy    string `json:"lodgedBy,omitempty"`
	FirmName    string `json:"firmName,omitempty"`
	FirmAddress string `json:"firmAddress,omitempty"`
	Telephone   string `json:"telephone,omitempty"`
	Email       string `json:"email,omitempty"`
	Reference   string `json:"reference,omitempty"`
}

// AddressForService joins the firm name and address the way the court form prints it.
func (l *Lodgement) AddressForService() string {
	if l == nil {
		return ""
	}
	switch {
	case l.FirmName != "" && l.FirmAddress != "":
		return l.FirmName + ", " + l.FirmAddress
	case l.FirmName != "":
		return l.FirmName
	default:
		return l.FirmAddress
	}
}

// ExtractedCase is the structured result of reading a GPC.
type ExtractedCase struct {
	CaseNumber      string      `json:"caseNumber"`
	Claimant        string      `json:"claimant"`
	ClaimantAddress string      `json:"claimantAddress,omitempty"`
	Registry        string      `json:"registry,omitempty"`
	Defendants      []Defendant `json:"defendants"`
	SourceFile      string      `json:"filename,omitempty"`
	DateLodged      string      `json:"dateLodged,omitempty"`
	RegistryDetails *Registry   `json:"registryDetails,omitempty"`
	Lodgement       *Lodgement  `json:"lodgement,omitempty"`
}

// Validate enforces the extraction invariants: non-blank case number and
// claimant, at least one defendant, and a name for every defendant.
func (c *ExtractedCase) Validate() error {
	var fields []string
	if strings.TrimSpace(c.CaseNumber) == "" {
		fields = append(fields, "caseNumber")
	}
	if strings.TrimSpace(c.Claimant) == "" {
		fields = append(fields, "claimant")
	}
	if len(c.Defendants) == 0 {
		fields = append(fields, "defendants")
	}
	for i, d := range c.Defendants {
		if strings.TrimSpace(d.Name) == "" {
			fields = append(fields, "defendants["+itoa(i)+"].name")
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Kind: ErrInvalidExtraction, Fields: fields}
	}
	return nil
}

// DefendantNames returns the defendant names in claim order.
func (c *ExtractedCase) DefendantNames() []string {
	names := make([]string, len(c.Defendants))
	for i, d := range c.Defendants {
		names[i] = d.Name
	}
	return names
}

// AffidavitRequest asks for one affidavit targeting a single defendant.
type AffidavitRequest struct {
	CaseNumber       string      `json:"caseNumber"`
	Claimant         string      `json:"claimant"`
	ClaimantAddress  string      `json:"claimantAddress,omitempty"`
	Registry         string      `json:"registry,omitempty"`
	DefendantName    string      `json:"defendantName"`
	DefendantAddress string      `json:"defendantAddress,omitempty"`
	// Position is the zero-based index of the target in AllDefendants.
	// When nil the target is found by name.
	Position         *int        `json:"defendantIndex,omitempty"`
	AllDefendants    []Defendant `json:"allDefendants"`
	DateLodged       string      `json:"dateLodged,omitempty"`
	RegistryDetails  *Registry   `json:"registryDetails,omitempty"`
	Lodgement        *Lodgement  `json:"lodgement,omitempty"`
}

// RequestsForCase builds one request per defendant, in claim order.
func RequestsForCase(c *ExtractedCase) []AffidavitRequest {
	reqs := make([]AffidavitRequest, 0, len(c.Defendants))
	for i, d := range c.Defendants {
		pos := i
		reqs = append(reqs, AffidavitRequest{
			CaseNumber:       c.CaseNumber,
			Claimant:         c.Claimant,
			ClaimantAddress:  c.ClaimantAddress,
			Registry:         c.Registry,
			DefendantName:    d.Name,
			DefendantAddress: d.Address,
			Position:         &pos,
			AllDefendants:    c.Defendants,
			DateLodged:       c.DateLodged,
			RegistryDetails:  c.RegistryDetails,
			Lodgement:        c.Lodgement,
		})
	}
	return reqs
}

// Validate checks required fields and that the target defendant is one of
// AllDefendants. Every failing field is reported at once.
func (r *AffidavitRequest) Validate() error {
	var fields []string
	if strings.TrimSpace(r.CaseNumber) == "" {
		fields = append(fields, "caseNumber")
	}
	if strings.TrimSpace(r.Claimant) == "" {
		fields = append(fields, "claimant")
	}
	if strings.TrimSpace(r.DefendantName) == "" {
		fields = append(fields, "defendantName")
	}
	if len(r.AllDefendants) == 0 {
		fields = append(fields, "allDefendants")
	}
	for i, d := range r.AllDefendants {
		if strings.TrimSpace(d.Name) == "" {
			fields = append(fields, "allDefendants["+itoa(i)+"].name")
		}
	}
	if len(fields) == 0 && r.DefendantIndex() < 0 {
		if r.Position != nil {
			fields = append(fields, "defendantIndex")
		} else {
			fields = append(fields, "defendantName")
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Kind: ErrInvalidRequest, Fields: fields}
	}
	return nil
}

// DefendantIndex returns the zero-based position of the target defendant
// in AllDefendants, or -1. An explicit Position must be in range and name
// the same defendant as DefendantName. Without one, the first name match
// wins. Matching ignores case and surrounding whitespace.
func (r *AffidavitRequest) DefendantIndex() int {
	target := strings.TrimSpace(r.DefendantName)
	if r.Position != nil {
		i := *r.Position
		if i < 0 || i >= len(r.AllDefendants) || !sameName(r.AllDefendants[i].Name, target) {
			return -1
		}
		return i
	}
	for i, d := range r.AllDefendants {
		if sameName(d.Name, target) {
			return i
		}
	}
	return -1
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ServedAddress is the address of the targeted defendant, preferring the
// explicit field over the defendant list.
func (r *AffidavitRequest) ServedAddress() string {
	if r.DefendantAddress != "" {
		return r.DefendantAddress
	}
	if i := r.DefendantIndex(); i >= 0 {
		return r.AllDefendants[i].Address
	}
	return ""
}

// GeneratedAffidavit is a filled document ready for download.
type GeneratedAffidavit struct {
	FileName      string      `json:"fileName"`
	CaseNumber    string      `json:"caseNumber"`
	Claimant      string      `json:"claimant"`
	DefendantName string      `json:"defendantName"`
	Defendants    []Defendant `json:"defendants"`
	Content       []byte      `json:"-"`
}
