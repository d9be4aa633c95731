package cards

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"server/internal/domain"
)

var fencedJSONRegexp = regexp.MustCompile("(?is)```json\\s*(.*?)```")

// ParsePayload attempts a strict JSON parse of the model reply and falls back
// to lenient recovery. Model output frequently wraps valid JSON in prose or
// markdown fences despite explicit instructions not to.
func ParsePayload(text string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err == nil {
		return value, nil
	}
	return ExtractJSON(text)
}

// ExtractJSON recovers a JSON value from free-form model text.
//
// A fenced block tagged json is authoritative: its interior is parsed exactly
// and a parse failure is terminal. Otherwise the span from the first opening
// bracket to the last closing bracket is tried. Everything else is
// domain.ErrMalformedResponse.
func ExtractJSON(raw string) (any, error) {
	if m := fencedJSONRegexp.FindStringSubmatch(raw); m != nil {
		var value any
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &value); err != nil {
			return nil, fmt.Errorf("%w: fenced block is not valid JSON", domain.ErrMalformedResponse)
		}
		return value, nil
	}
	start := strings.IndexAny(raw, "[{")
	end := strings.LastIndexAny(raw, "]}")
	if start >= 0 && end > start {
		var value any
		if err := json.Unmarshal([]byte(raw[start:end+1]), &value); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		return value, nil
	}
	return nil, fmt.Errorf("%w: no JSON value found", domain.ErrMalformedResponse)
}
