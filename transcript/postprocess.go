package transcript

import (
	"regexp"
	"strings"
)

// ChangesMarker separates the cleaned transcript from the change list in
// model responses for passes that report their edits.
const ChangesMarker = "---CHANGES---"

var boldRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// StripCodeFences removes a markdown code fence (``` or ```json etc.)
// wrapping the entire response. Models add these despite instructions not
// to; anything other than a whole-response fence is left alone.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	// Drop the opening fence line, including any language tag
	if idx := strings.Index(trimmed, "\n"); idx != -1 {
		trimmed = trimmed[idx+1:]
	} else {
		// A lone fence with no body
		return ""
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// BoldToHTML converts markdown **bold** spans to <strong> tags. Unbalanced
// markers are left untouched.
func BoldToHTML(s string) string {
	return boldRe.ReplaceAllString(s, "<strong>$1</strong>")
}

// SplitChanges splits a model response on the first ChangesMarker line.
// The text before the marker is returned as the transcript; lines after it
// are parsed as the change list (leading bullet markers stripped). When no
// marker is present, the whole input is the transcript and changes is nil.
func SplitChanges(s string) (text string, changes []string) {
	lines := strings.Split(s, "\n")
	markerAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == ChangesMarker {
			markerAt = i
			break
		}
	}
	if markerAt == -1 {
		return strings.TrimSpace(s), nil
	}

	text = strings.TrimSpace(strings.Join(lines[:markerAt], "\n"))
	for _, line := range lines[markerAt+1:] {
		entry := strings.TrimSpace(line)
		if entry == "" {
			continue
		}
		entry = strings.TrimPrefix(entry, "- ")
		entry = strings.TrimPrefix(entry, "* ")
		changes = append(changes, entry)
	}
	return text, changes
}
