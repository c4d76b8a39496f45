package transcript

import (
	"regexp"
	"strings"
)

// Earnings calls follow a rigid verbal protocol: the operator (or a host)
// hands the floor to the next speaker with a stock phrase. Transcription
// services sometimes drop the speaker label that should follow such a
// hand-off, so the next block of speech gets attributed to the wrong
// person. These patterns catch the common hand-off phrasings and capture
// the name of the speaker being introduced.
//
// This is a best-effort heuristic over free text. A phrasing we don't
// recognize simply passes through unchanged.
var handoffPatterns = []*regexp.Regexp{
	// "I would now like to turn the call (back) over to John Smith"
	// "I'll hand the floor over to Jane Doe, Chief Executive Officer."
	regexp.MustCompile(`(?:[Tt]urn|[Hh]and)(?:ing)? (?:the (?:call|floor|conference|presentation)|it) (?:back )?over to ([A-Z][A-Za-z.'-]+(?: [A-Z][A-Za-z.'-]+){0,3})(?:, ([A-Za-z][A-Za-z &'-]{1,60}))?`),
	// "Our next question comes from John Doe with Example Capital."
	regexp.MustCompile(`[Nn]ext question (?:comes from|is from|will come from) (?:the line of )?([A-Z][A-Za-z.'-]+(?: [A-Z][A-Za-z.'-]+){0,3})(?: (?:with|of|from) ([A-Z][A-Za-z &'-]{1,60}))?`),
	// "We'll go first to Jane Roe of Big Bank."
	regexp.MustCompile(`[Ww]e(?:'ll| will) (?:go|take)(?: the)? (?:first|next)(?: question)? (?:to|from) ([A-Z][A-Za-z.'-]+(?: [A-Z][A-Za-z.'-]+){0,3})(?: (?:with|of|from) ([A-Z][A-Za-z &'-]{1,60}))?`),
}

// speakerLabelRe matches a line that already starts with a speaker label,
// e.g. "John Smith:", "JANE DOE - CEO:", "Operator:".
var speakerLabelRe = regexp.MustCompile(`^\s*[A-Z][A-Za-z.'-]*(?: [A-Za-z.'-]+){0,4}(?:\s*[-–]\s*[^:]{1,80})?:`)

// InsertMissingHandoffLabels scans the transcript for operator hand-off
// phrases and inserts a speaker label for the introduced speaker when the
// following line does not already carry one. It returns the (possibly
// modified) text and the list of labels that were inserted, in order.
func InsertMissingHandoffLabels(text string) (string, []string) {
	lines := strings.Split(text, "\n")
	var out []string
	var inserted []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		out = append(out, line)

		name, title := matchHandoff(line)
		if name == "" {
			continue
		}

		// Find the next non-empty line. If it already has a speaker
		// label, the transcript is fine as-is.
		next := nextNonEmpty(lines, i+1)
		if next == -1 || speakerLabelRe.MatchString(lines[next]) {
			continue
		}

		label := name
		if title != "" {
			label += " - " + title
		}
		label += ":"

		// Preserve any blank lines between the hand-off and the speech
		for j := i + 1; j < next; j++ {
			out = append(out, lines[j])
		}
		i = next - 1

		out = append(out, label)
		inserted = append(inserted, label)
	}

	return strings.Join(out, "\n"), inserted
}

// matchHandoff returns the introduced speaker's name and optional title
// when line contains a recognized hand-off phrase.
func matchHandoff(line string) (name, title string) {
	trimmed := strings.TrimSpace(line)
	for _, re := range handoffPatterns {
		m := re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		name = strings.TrimRight(strings.TrimSpace(m[1]), ".,")
		if len(m) > 2 {
			title = strings.TrimRight(strings.TrimSpace(m[2]), ".,")
		}
		// Hand-offs back to "the operator" or similar roles are not
		// personal names worth labeling.
		if strings.EqualFold(name, "the operator") || strings.EqualFold(name, "operator") {
			return "", ""
		}
		return name, title
	}
	return "", ""
}

func nextNonEmpty(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}
