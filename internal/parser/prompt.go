package parser

import "strings"

const gpcSchema = `{
  "registry": "the registry named after REGISTRY AT: (e.g., PERTH), or empty string",
  "caseNumber": "the GCLM case number (e.g., GCLM/2763/2024)",
  "claimant": "the claimant's full name or company name",
  "claimantAddress": "the claimant's address, or empty string",
  "defendants": [
    {
      "name": "First defendant's full name",
      "address": "First defendant's full address"
    }
  ]
}`

// BuildGPCPrompt returns the extraction prompt for a WA Magistrates Court General
// Procedure Claim. When text is empty the document itself is attached to the
// request and the prompt refers to it instead.
func BuildGPCPrompt(text string) string {
	var b strings.Builder
	b.WriteString(`You are extracting information from a Western Australian Magistrates Court GPC (General Procedure Claim) document.

IMPORTANT: This GPC may have MULTIPLE defendants. You must extract information for ALL defendants listed, in the order they appear.

Extract the following information and return ONLY a valid JSON object with no additional text:

`)
	b.WriteString(gpcSchema)
	b.WriteString("\n\n")

	if strings.TrimSpace(text) != "" {
		b.WriteString("GPC Document Text:\n")
		b.WriteString(text)
		b.WriteString("\n\n")
	} else {
		b.WriteString("The GPC document is attached.\n\n")
	}

	b.WriteString(`Remember:
- Return ONLY the JSON object, nothing else
- Include ALL defendants in the "defendants" array
- Each defendant should have "name" and "address" fields
- If there's only one defendant, the array will have one object
- Do not invent values; use an empty string for anything not in the document`)
	return b.String()
}
