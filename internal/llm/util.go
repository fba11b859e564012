// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
)

// jsonObjectPattern spans from the first '{' to the last '}' in the text
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject returns the substring between the first '{' and the last '}'.
func ExtractJSONObject(text string) (string, bool) {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}
