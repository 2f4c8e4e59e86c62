package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gpcaffidavit/internal/domain"
)

var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")
)

// DecodeModelJSON pulls the JSON object out of a model reply. The reply is tried
// as is, then the first ```json fenced block, then any fenced block, then the
// outermost {...} span.
func DecodeModelJSON(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty model response", domain.ErrUnparsableResponse)
	}

	if obj, ok := asObject(text); ok {
		return obj, nil
	}
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		if obj, ok := asObject(m[1]); ok {
			return obj, nil
		}
	}
	for _, m := range anyFenceRe.FindAllStringSubmatch(text, -1) {
		if obj, ok := asObject(m[1]); ok {
			return obj, nil
		}
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		if obj, ok := asObject(text[start : end+1]); ok {
			return obj, nil
		}
	}

	return nil, fmt.Errorf("%w: could not parse JSON from response (raw: %s)", domain.ErrUnparsableResponse, Truncate(text, 200))
}

func asObject(s string) (json.RawMessage, bool) {
	b := bytes.TrimSpace([]byte(s))
	if len(b) == 0 || b[0] != '{' || !json.Valid(b) {
		return nil, false
	}
	return json.RawMessage(b), true
}
