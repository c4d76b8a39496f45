package transcript

import (
	"strings"
	"testing"
)

func TestInsertMissingHandoffLabels(t *testing.T) {
	tests := []struct {
		desc         string
		input        string
		wantLabels   []string
		wantContains string
	}{
		{
			desc: "operator hand-off with title inserts label",
			input: "Operator:\n" +
				"I would now like to turn the call over to Jane Doe, Chief Executive Officer.\n" +
				"\n" +
				"Thank you, operator. Good morning everyone.",
			wantLabels:   []string{"Jane Doe - Chief Executive Officer:"},
			wantContains: "\nJane Doe - Chief Executive Officer:\nThank you, operator.",
		},
		{
			desc: "hand-off without title inserts bare name label",
			input: "Operator:\n" +
				"I will now hand the floor over to John Smith.\n" +
				"Thanks everyone for joining us today.",
			wantLabels:   []string{"John Smith:"},
			wantContains: "\nJohn Smith:\nThanks everyone",
		},
		{
			desc: "question hand-off labels the analyst with their firm",
			input: "Operator:\n" +
				"Thank you. Our next question comes from John Roe with Example Capital. Please go ahead.\n" +
				"Hi, good morning. Can you talk about margins?",
			wantLabels:   []string{"John Roe - Example Capital:"},
			wantContains: "\nJohn Roe - Example Capital:\nHi, good morning.",
		},
		{
			desc: "turn it over phrasing",
			input: "Now I'll turn it over to Mary Major.\n" +
				"Thanks. Revenue grew nine percent.",
			wantLabels:   []string{"Mary Major:"},
			wantContains: "\nMary Major:\nThanks.",
		},
		{
			desc: "existing label is left alone",
			input: "Operator:\n" +
				"I would like to turn the call over to Jane Doe.\n" +
				"Jane Doe:\n" +
				"Thank you, operator.",
			wantLabels: nil,
		},
		{
			desc:       "hand-off on the last line inserts nothing",
			input:      "I would now like to turn the call over to Jane Doe.",
			wantLabels: nil,
		},
		{
			desc:       "plain speech passes through unchanged",
			input:      "Revenue grew nine percent year over year.\nMargins expanded as well.",
			wantLabels: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, inserted := InsertMissingHandoffLabels(tt.input)

			if len(inserted) != len(tt.wantLabels) {
				t.Fatalf("inserted %v, want %v", inserted, tt.wantLabels)
			}
			for i := range inserted {
				if inserted[i] != tt.wantLabels[i] {
					t.Errorf("inserted[%d] = %q, want %q", i, inserted[i], tt.wantLabels[i])
				}
			}

			if tt.wantContains != "" && !strings.Contains(got, tt.wantContains) {
				t.Errorf("output missing %q:\n%s", tt.wantContains, got)
			}
			if len(tt.wantLabels) == 0 && got != tt.input {
				t.Errorf("expected input unchanged, got:\n%s", got)
			}
		})
	}
}

func TestMatchHandoff(t *testing.T) {
	tests := []struct {
		line      string
		wantName  string
		wantTitle string
	}{
		{"I would now like to turn the call over to Jane Doe, Chief Executive Officer.", "Jane Doe", "Chief Executive Officer"},
		{"I'd like to turn the call back over to John Smith for closing remarks.", "John Smith", ""},
		{"Our next question comes from the line of Amy Analyst of Big Bank.", "Amy Analyst", "Big Bank"},
		{"We will take the next question from Bob Jones with Small Fund.", "Bob Jones", "Small Fund"},
		// Hand-offs back to the operator are not labeled
		{"I will now turn the call back over to Operator.", "", ""},
		// Ordinary speech
		{"Revenue grew nine percent year over year.", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, title := matchHandoff(tt.line)
			if name != tt.wantName || title != tt.wantTitle {
				t.Errorf("matchHandoff(%q) = (%q, %q), want (%q, %q)",
					tt.line, name, title, tt.wantName, tt.wantTitle)
			}
		})
	}
}
