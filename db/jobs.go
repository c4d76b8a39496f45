package db

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

const jobColumns = `id, status, passes, pass, input, result, html, changes, error, attempts,
	prompt_tokens, completion_tokens, total_tokens, created_at, updated_at`

// CreateJob inserts a new cleanup job
func CreateJob(j *Job) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	now := NowUTC()
	if j.CreatedAt == "" {
		j.CreatedAt = now
	}
	if j.UpdatedAt == "" {
		j.UpdatedAt = now
	}
	if j.Status == "" {
		j.Status = JobStatusTodo
	}

	passes, err := json.Marshal(j.Passes)
	if err != nil {
		return err
	}

	_, err = GetDB().Exec(`
		INSERT INTO jobs (id, status, passes, input, attempts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Status, string(passes), j.Input, j.Attempts, j.CreatedAt, j.UpdatedAt,
	)
	return err
}

// GetJobByID retrieves a job by ID
func GetJobByID(id string) (*Job, error) {
	row := GetDB().QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

// ListRecentJobs returns the most recent jobs, newest first
func ListRecentJobs(limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := GetDB().Query(`
		SELECT `+jobColumns+`
		FROM jobs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// ListJobIDsByStatus returns job IDs with the given status, oldest first
func ListJobIDsByStatus(status string) ([]string, error) {
	rows, err := GetDB().Query(`SELECT id FROM jobs WHERE status = ? ORDER BY created_at ASC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkJobRunning transitions a job to running and records the current pass
func MarkJobRunning(id, pass string) error {
	_, err := GetDB().Exec(`
		UPDATE jobs
		SET status = ?, pass = ?, attempts = attempts + 1, updated_at = ?
		WHERE id = ?`,
		JobStatusRunning, pass, NowUTC(), id,
	)
	return err
}

// UpdateJobPass records the pass a running job is currently executing
func UpdateJobPass(id, pass string) error {
	_, err := GetDB().Exec(`UPDATE jobs SET pass = ?, updated_at = ? WHERE id = ?`, pass, NowUTC(), id)
	return err
}

// CompleteJob stores the final result and marks the job completed
func CompleteJob(id, result, html string, changes []string, promptTokens, completionTokens, totalTokens int) error {
	encoded, err := json.Marshal(changes)
	if err != nil {
		return err
	}

	_, err = GetDB().Exec(`
		UPDATE jobs
		SET status = ?, result = ?, html = ?, changes = ?, error = NULL,
			prompt_tokens = ?, completion_tokens = ?, total_tokens = ?, updated_at = ?
		WHERE id = ?`,
		JobStatusCompleted, result, html, string(encoded),
		promptTokens, completionTokens, totalTokens, NowUTC(), id,
	)
	return err
}

// FailJob marks a job failed with the provider error recorded verbatim
func FailJob(id, pass, errMsg string) error {
	_, err := GetDB().Exec(`
		UPDATE jobs
		SET status = ?, pass = ?, error = ?, updated_at = ?
		WHERE id = ?`,
		JobStatusFailed, pass, errMsg, NowUTC(), id,
	)
	return err
}

// FailRunningJobs marks every running job failed. Called on startup so jobs
// interrupted by a restart don't stay "running" forever; the polling client
// sees the failure instead of spinning until its attempt ceiling.
func FailRunningJobs(errMsg string) (int64, error) {
	res, err := GetDB().Exec(`
		UPDATE jobs
		SET status = ?, error = ?, updated_at = ?
		WHERE status = ?`,
		JobStatusFailed, errMsg, NowUTC(), JobStatusRunning,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scanner) (*Job, error) {
	var j Job
	var passes string
	var pass, result, html, changes, jobError sql.NullString

	err := row.Scan(
		&j.ID, &j.Status, &passes, &pass, &j.Input, &result, &html, &changes, &jobError,
		&j.Attempts, &j.PromptTokens, &j.CompletionTokens, &j.TotalTokens,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(passes), &j.Passes); err != nil {
		return nil, err
	}
	if changes.Valid && changes.String != "" {
		if err := json.Unmarshal([]byte(changes.String), &j.Changes); err != nil {
			return nil, err
		}
	}

	j.Pass = StringPtr(pass)
	j.Result = StringPtr(result)
	j.HTML = StringPtr(html)
	j.Error = StringPtr(jobError)

	return &j, nil
}
