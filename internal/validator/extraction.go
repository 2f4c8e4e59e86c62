package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"gpcaffidavit/internal/domain"
)

// extractionSchema is the shape a model reply must have before it is
// normalised into a domain.ExtractedCase. Optional strings may be null; a
// single legacy "defendant" field is accepted in place of "defendants".
const extractionSchema = `{
  "type": "object",
  "required": ["caseNumber", "claimant"],
  "anyOf": [
    {"required": ["defendants"]},
    {"required": ["defendant"]}
  ],
  "properties": {
    "caseNumber":       {"type": "string"},
    "claimant":         {"type": "string"},
    "claimantAddress":  {"type": ["string", "null"]},
    "registry":         {"type": ["string", "null"]},
    "defendant":        {"type": ["string", "null"]},
    "defendantAddress": {"type": ["string", "null"]},
    "defendants": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name":    {"type": ["string", "null"]},
          "address": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

const schemaURL = "extracted_case.json"

// ExtractionValidator checks raw model output against the extraction schema.
type ExtractionValidator struct {
	schema *jsonschema.Schema
}

// NewExtractionValidator compiles the extraction schema.
func NewExtractionValidator() (*ExtractionValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader([]byte(extractionSchema))); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &ExtractionValidator{schema: schema}, nil
}

// Validate returns a *domain.ValidationError wrapping ErrInvalidExtraction
// that lists every schema violation in data.
func (v *ExtractionValidator) Validate(data json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}

	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating extraction: %w", err)
	}
	return &domain.ValidationError{Kind: domain.ErrInvalidExtraction, Fields: violations(verr)}
}

// violations flattens the leaf causes of a schema error into "location: message" lines.
func violations(verr *jsonschema.ValidationError) []string {
	seen := map[string]bool{}
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			seen[describe(e)] = true
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func describe(e *jsonschema.ValidationError) string {
	loc := strings.ReplaceAll(strings.TrimPrefix(e.InstanceLocation, "/"), "/", ".")
	if loc == "" {
		return e.Message
	}
	return loc + ": " + e.Message
}
