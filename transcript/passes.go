package transcript

import "fmt"

// Pass names
const (
	PassSpeakerLabels = "speaker-labels"
	PassParagraphs    = "paragraphs"
	PassAttribution   = "attribution"
	PassDisclaimer    = "disclaimer"
)

// Pass describes one cleanup pass: a single model call with its own prompt.
type Pass struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	Temperature float32 `json:"-"`
}

// passOrder is the canonical pipeline order
var passOrder = []string{
	PassSpeakerLabels,
	PassParagraphs,
	PassAttribution,
	PassDisclaimer,
}

var passes = map[string]Pass{
	PassSpeakerLabels: {
		Name:        PassSpeakerLabels,
		Label:       "Speaker Labels",
		Description: "Normalize speaker labels to a consistent Name - Title: format",
		Order:       1,
		Temperature: 0.1,
	},
	PassParagraphs: {
		Name:        PassParagraphs,
		Label:       "Paragraphs",
		Description: "Break long speech blocks into readable paragraphs",
		Order:       2,
		Temperature: 0.2,
	},
	PassAttribution: {
		Name:        PassAttribution,
		Label:       "Attribution Check",
		Description: "Verify statements are attributed to the right speaker and list corrections",
		Order:       3,
		Temperature: 0.1,
	},
	PassDisclaimer: {
		Name:        PassDisclaimer,
		Label:       "Disclaimer",
		Description: "Insert the forward-looking statements disclaimer when missing",
		Order:       4,
		Temperature: 0.1,
	},
}

// GetPass looks up a pass by name
func GetPass(name string) (Pass, bool) {
	p, ok := passes[name]
	return p, ok
}

// AllPasses returns every registered pass in canonical order
func AllPasses() []Pass {
	result := make([]Pass, 0, len(passOrder))
	for _, name := range passOrder {
		result = append(result, passes[name])
	}
	return result
}

// DefaultPassNames returns the canonical pipeline order
func DefaultPassNames() []string {
	result := make([]string, len(passOrder))
	copy(result, passOrder)
	return result
}

// ValidatePassNames checks that every name refers to a registered pass
func ValidatePassNames(names []string) error {
	for _, name := range names {
		if _, ok := passes[name]; !ok {
			return fmt.Errorf("unknown pass %q", name)
		}
	}
	return nil
}
