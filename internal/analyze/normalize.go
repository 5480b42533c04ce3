// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"encoding/json"
	"strings"
)

// Normalize reduces raw generator output to a candidate JSON string. It
// strips a leading code fence (with or without a language tag), a trailing
// fence, and any commentary outside the outermost {...} span. When no brace
// pair exists the text passes through unchanged so the subsequent parse
// fails explicitly instead of fabricating a result.
//
// Real generators violate "JSON only" instructions; Normalize salvages the
// common violation patterns without accepting garbage (prd003-analysis R2.1-R2.4).
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line, language tag included.
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "```")
	}
	s = strings.TrimSpace(s)

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

// Parse normalizes raw generator output and unmarshals it into a generic
// object. A parse failure is a *MalformedResponseError, distinct from the
// schema violations reported by Validate.
func Parse(raw string) (map[string]any, error) {
	candidate := Normalize(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return parsed, nil
}
