package db

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestNowUTC(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, NowUTC())
	if err != nil {
		t.Fatalf("NowUTC() is not RFC3339: %v", err)
	}
	if ts.Location() != time.UTC {
		t.Errorf("NowUTC() location = %v, want UTC", ts.Location())
	}
}

func TestStringPtr(t *testing.T) {
	if got := StringPtr(sql.NullString{}); got != nil {
		t.Errorf("StringPtr(invalid) = %q, want nil", *got)
	}
	got := StringPtr(sql.NullString{String: "provider timeout", Valid: true})
	if got == nil || *got != "provider timeout" {
		t.Errorf("StringPtr(valid) = %v, want %q", got, "provider timeout")
	}
}

// fakeRow feeds canned column values to scanJob the way *sql.Row would.
type fakeRow struct {
	vals []interface{}
	err  error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan: %d dests for %d values", len(dest), len(r.vals))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			p2, ok := r.vals[i].(string)
			if !ok {
				return fmt.Errorf("scan: column %d is not a string", i)
			}
			*p = p2
		case *sql.NullString:
			if r.vals[i] == nil {
				*p = sql.NullString{}
			} else {
				*p = sql.NullString{String: r.vals[i].(string), Valid: true}
			}
		case *int:
			*p = r.vals[i].(int)
		default:
			return fmt.Errorf("scan: unexpected dest type %T at column %d", d, i)
		}
	}
	return nil
}

// column order must match jobColumns
func jobRow(passes string, pass, result, html, changes, jobError interface{}) fakeRow {
	return fakeRow{vals: []interface{}{
		"job-1", JobStatusCompleted, passes, pass, "raw input", result, html, changes, jobError,
		1, 100, 200, 300,
		"2026-08-26T10:00:00Z", "2026-08-26T10:05:00Z",
	}}
}

func TestScanJob(t *testing.T) {
	t.Run("completed job", func(t *testing.T) {
		row := jobRow(
			`["speaker-labels","paragraphs"]`,
			"paragraphs", "cleaned text", "<p>cleaned text</p>",
			`["- Moved reply under John Roe"]`, nil,
		)

		j, err := scanJob(row)
		if err != nil {
			t.Fatal(err)
		}
		if j.ID != "job-1" || j.Status != JobStatusCompleted {
			t.Errorf("got id=%q status=%q", j.ID, j.Status)
		}
		if len(j.Passes) != 2 || j.Passes[0] != "speaker-labels" || j.Passes[1] != "paragraphs" {
			t.Errorf("Passes = %v", j.Passes)
		}
		if len(j.Changes) != 1 || j.Changes[0] != "- Moved reply under John Roe" {
			t.Errorf("Changes = %v", j.Changes)
		}
		if j.Pass == nil || *j.Pass != "paragraphs" {
			t.Errorf("Pass = %v", j.Pass)
		}
		if j.Result == nil || *j.Result != "cleaned text" {
			t.Errorf("Result = %v", j.Result)
		}
		if j.Error != nil {
			t.Errorf("Error = %q, want nil", *j.Error)
		}
		if j.PromptTokens != 100 || j.CompletionTokens != 200 || j.TotalTokens != 300 {
			t.Errorf("tokens = %d/%d/%d", j.PromptTokens, j.CompletionTokens, j.TotalTokens)
		}
	})

	t.Run("fresh job has nil optionals", func(t *testing.T) {
		j, err := scanJob(jobRow(`["disclaimer"]`, nil, nil, nil, nil, nil))
		if err != nil {
			t.Fatal(err)
		}
		if j.Pass != nil || j.Result != nil || j.HTML != nil || j.Error != nil {
			t.Errorf("optionals not nil: pass=%v result=%v html=%v error=%v", j.Pass, j.Result, j.HTML, j.Error)
		}
		if j.Changes != nil {
			t.Errorf("Changes = %v, want nil", j.Changes)
		}
	})

	t.Run("malformed passes column", func(t *testing.T) {
		if _, err := scanJob(jobRow(`not json`, nil, nil, nil, nil, nil)); err == nil {
			t.Error("expected error for malformed passes JSON")
		}
	})

	t.Run("no rows", func(t *testing.T) {
		j, err := scanJob(fakeRow{err: sql.ErrNoRows})
		if err != nil || j != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", j, err)
		}
	})
}
