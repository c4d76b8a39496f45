package vendors

import "errors"

// ErrNotConfigured is returned when a provider call is made without an API key
var ErrNotConfigured = errors.New("openai: OPENAI_API_KEY not configured")

const titlePrompt = `You label earnings-call transcripts for an archive.

Given the opening of a transcript, produce a short title naming the company and the reporting period, e.g. "Acme Corp Q3 2026 Earnings Call". If the company or period cannot be determined, use whatever identifying detail is present.

Respond with JSON in the format: {"title": "..."}`
