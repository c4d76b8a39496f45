// Package polish runs queued transcript cleanup jobs in the background.
// The browser submits a job, gets an ID back, and polls the job endpoint
// while the passes run here.
package polish

import (
	"context"
	"sync"
	"time"

	"github.com/cohen2you/transcripts-project/db"
	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/transcript"
	"github.com/cohen2you/transcripts-project/vendors"
)

var logger = log.GetLogger("Polish")

// Worker manages background cleanup jobs
type Worker struct {
	cfg Config

	stopChan   chan struct{}
	wg         sync.WaitGroup
	queue      chan string
	processing sync.Map // job IDs currently being processed
}

// NewWorker creates a new polish worker
func NewWorker(cfg Config) *Worker {
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 100
	}
	if cfg.Workers == 0 {
		cfg.Workers = 2
	}

	return &Worker{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		queue:    make(chan string, cfg.QueueSize),
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	logger.Info().Int("workers", w.cfg.Workers).Msg("starting polish worker")

	if n, err := db.FailRunningJobs("interrupted by server restart"); err != nil {
		logger.Error().Err(err).Msg("failed to fail orphaned jobs")
	} else if n > 0 {
		logger.Warn().Int64("jobs", n).Msg("failed jobs orphaned by restart")
	}

	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go w.processLoop()
	}

	w.wg.Add(1)
	go w.supervisorLoop()
}

// Stop stops the polish worker
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	logger.Info().Msg("polish worker stopped")
}

// Enqueue queues a job for processing. Returns false when the queue is full.
func (w *Worker) Enqueue(jobID string) bool {
	select {
	case w.queue <- jobID:
		return true
	default:
		logger.Warn().Str("job", jobID).Msg("queue full, job stays pending until supervisor retries")
		return false
	}
}

// processLoop pulls job IDs off the queue
func (w *Worker) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case jobID := <-w.queue:
			w.processJob(jobID)
		case <-w.stopChan:
			return
		}
	}
}

// processJob runs the full pass pipeline for one job
func (w *Worker) processJob(jobID string) {
	if _, loaded := w.processing.LoadOrStore(jobID, true); loaded {
		logger.Debug().Str("job", jobID).Msg("already processing, skipping")
		return
	}
	defer w.processing.Delete(jobID)

	job, err := db.GetJobByID(jobID)
	if err != nil || job == nil {
		logger.Error().Err(err).Str("job", jobID).Msg("job not found")
		return
	}
	if job.Status != db.JobStatusTodo {
		logger.Debug().Str("job", jobID).Str("status", job.Status).Msg("job not pending, skipping")
		return
	}

	passes := job.Passes
	if len(passes) == 0 {
		passes = transcript.DefaultPassNames()
	}

	if err := db.MarkJobRunning(jobID, passes[0]); err != nil {
		logger.Error().Err(err).Str("job", jobID).Msg("failed to mark job running")
		return
	}

	logger.Info().Str("job", jobID).Strs("passes", passes).Msg("processing job")
	start := time.Now()

	ctx := context.Background()
	client := vendors.GetOpenAIClient()

	currentPass := passes[0]
	onPass := func(name string) {
		currentPass = name
		if err := db.UpdateJobPass(jobID, name); err != nil {
			logger.Error().Err(err).Str("job", jobID).Msg("failed to record current pass")
		}
	}

	result, err := transcript.RunPipeline(ctx, client, passes, job.Input, onPass)
	if err != nil {
		// No retry policy: the provider error is recorded verbatim and
		// surfaced to the polling client.
		if dbErr := db.FailJob(jobID, currentPass, err.Error()); dbErr != nil {
			logger.Error().Err(dbErr).Str("job", jobID).Msg("failed to mark job failed")
		}
		logger.Error().Err(err).Str("job", jobID).Str("pass", currentPass).Msg("job failed")
		return
	}

	err = db.CompleteJob(jobID, result.Text, result.HTML, result.Changes,
		result.Usage.PromptTokens, result.Usage.CompletionTokens, result.Usage.TotalTokens)
	if err != nil {
		logger.Error().Err(err).Str("job", jobID).Msg("failed to store job result")
		return
	}

	w.archive(ctx, client, job.Input, result)

	logger.Info().
		Str("job", jobID).
		Dur("took", time.Since(start)).
		Int("totalTokens", result.Usage.TotalTokens).
		Msg("job completed")
}

// archive stores the finished cleanup in the transcript history and, when
// configured, the search index. Archive failures are logged but never fail
// the job; the result is already persisted on the job row.
func (w *Worker) archive(ctx context.Context, client *vendors.OpenAIClient, raw string, result *transcript.PassResult) {
	t := &db.Transcript{
		Title:       client.SuggestTitle(ctx, result.Text),
		Raw:         raw,
		Cleaned:     result.Text,
		HTML:        result.HTML,
		TotalTokens: result.Usage.TotalTokens,
	}

	if err := db.CreateTranscript(t); err != nil {
		logger.Error().Err(err).Msg("failed to archive transcript")
		return
	}

	if err := vendors.GetMeiliClient().IndexTranscript(t.ID, t.Title, t.Cleaned, t.CreatedAt); err != nil {
		logger.Error().Err(err).Str("transcript", t.ID).Msg("failed to index transcript")
	}
}

// supervisorLoop re-queues pending jobs found in the database, picking up
// work left behind by a crash or a full queue.
func (w *Worker) supervisorLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.checkPendingJobs()
		case <-w.stopChan:
			return
		}
	}
}

func (w *Worker) checkPendingJobs() {
	ids, err := db.ListJobIDsByStatus(db.JobStatusTodo)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list pending jobs")
		return
	}

	for _, id := range ids {
		select {
		case w.queue <- id:
		default:
			// Queue full, next tick will retry
			return
		}
	}
}
