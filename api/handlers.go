package api

import "github.com/cohen2you/transcripts-project/workers/polish"

// Handlers holds references to server components
type Handlers struct {
	worker *polish.Worker
}

// NewHandlers creates a new Handlers instance
func NewHandlers(worker *polish.Worker) *Handlers {
	return &Handlers{worker: worker}
}
