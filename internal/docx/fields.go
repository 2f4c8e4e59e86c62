// Package docx fills the Affidavit of Service template. Two strategies are
// supported: Word content controls addressed by tag, and bracket placeholders
// replaced as text.
package docx

import "strings"

// Fields is every value written into an affidavit. Names are already
// formatted for print; blank hand-filled fields are implied.
type Fields struct {
	CaseNumber       string
	Claimant         string
	ClaimantAddress  string
	Registry         string
	RegistryName     string
	RegistryStreet   string
	RegistryLocality string

	// Defendants lists every defendant name in claim order.
	Defendants      []string
	ServedDefendant string
	ServedOrdinal   string
	ServedAddress   string

	ProcessName string
	DateLodged  string

	LodgedBy          string
	AddressForService string
	Telephone         string
	Email             string
	Reference         string
}

// handFilled are the controls the process server completes by hand.
var handFilled = []string{
	"serviceDate", "serviceTime", "servicePlace",
	"deponentName", "deponentAddress", "deponentOccupation",
}

// controlValues maps content-control tags to text.
func (f *Fields) controlValues() map[string]string {
	registryName := f.RegistryName
	if registryName == "" {
		registryName = f.Registry
	}
	values := map[string]string{
		"caseNumber":       f.CaseNumber,
		"claimant":         f.Claimant,
		"claimantAddress":  f.ClaimantAddress,
		"registry":         f.Registry,
		"registryName":     registryName,
		"registryStreet":   f.RegistryStreet,
		"registryLocality": f.RegistryLocality,
		"defendants":       strings.Join(f.Defendants, ", "),
		"servedDefendant":  f.ServedDefendant,
		"servedOrdinal":    f.ServedOrdinal,
		"defendantAddress": f.ServedAddress,
		"processName":      f.ProcessName,
		"dateLodged":       f.DateLodged,
		"lodgedBy":         f.LodgedBy,
		"firmAddress":      f.AddressForService,
		"firmTelephone":    f.Telephone,
		"firmEmail":        f.Email,
		"firmReference":    f.Reference,
	}
	for _, tag := range handFilled {
		values[tag] = ""
	}
	return values
}

// placeholderValues maps bracket placeholders to text. Order matters where
// one placeholder is a prefix of another.
func (f *Fields) placeholderValues() [][2]string {
	registryName := f.RegistryName
	if registryName == "" {
		registryName = f.Registry
	}
	return [][2]string{
		{"[Case number]", f.CaseNumber},
		{"[Claimant]", f.Claimant},
		{"[Registry name]", registryName},
		{"[Registry street]", f.RegistryStreet},
		{"[Registry locality]", f.RegistryLocality},
		{"[Registry]", f.Registry},
		{"[Defendant ordinal]", f.ServedOrdinal},
		{"[Defendant]", strings.Join(f.Defendants, ", ")},
		{"[Name of deponent]", ""},
		{"[Address of deponent]", ""},
		{"[Occupation]", ""},
		{"[Name of process]", f.ProcessName},
		{"[Name]", f.ServedDefendant},
		{"[Address for service]", f.AddressForService},
		{"[Address]", f.ServedAddress},
		{"[Date]", ""},
		{"[time am/pm]", ""},
		{"[Place]", ""},
		{"[date]", f.DateLodged},
		{"[Lodged by]", f.LodgedBy},
		{"[Telephone]", f.Telephone},
		{"[Email]", f.Email},
		{"[Reference]", f.Reference},
	}
}
