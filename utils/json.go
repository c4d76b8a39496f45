package utils

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ParseJSONFromLLMResponse robustly parses JSON from LLM responses.
// Handles various formats:
// - Raw JSON: {"title": "..."}
// - Code blocks: ```json\n{...}\n``` or ```\n{...}\n```
// - Surrounding text: "Here is the result: {...}"
// - Arrays: [...]
func ParseJSONFromLLMResponse(content string) (interface{}, error) {
	content = strings.TrimSpace(content)

	// Try direct parse first
	var result interface{}
	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	// Try to find JSON in markdown code blocks (```json or ```)
	codeBlockRe := regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	if matches := codeBlockRe.FindStringSubmatch(content); len(matches) > 1 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(matches[1])), &result); err == nil {
			return result, nil
		}
	}

	// Try to find JSON object by looking for outermost { ... }
	jsonObjectRe := regexp.MustCompile(`\{[\s\S]*\}`)
	if match := jsonObjectRe.FindString(content); match != "" {
		if err := json.Unmarshal([]byte(match), &result); err == nil {
			return result, nil
		}
	}

	// Try to find JSON array by looking for outermost [ ... ]
	jsonArrayRe := regexp.MustCompile(`\[[\s\S]*\]`)
	if match := jsonArrayRe.FindString(content); match != "" {
		if err := json.Unmarshal([]byte(match), &result); err == nil {
			return result, nil
		}
	}

	return nil, errors.New("unable to parse JSON from LLM response")
}

// ExtractStringField pulls a named string field out of parsed JSON
func ExtractStringField(parsed interface{}, field string) string {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return ""
	}
	if v, ok := obj[field]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
