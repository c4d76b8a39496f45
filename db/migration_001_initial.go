package db

import (
	"database/sql"
)

func init() {
	RegisterMigration(Migration{
		Version:     1,
		Description: "Initial schema - jobs and transcripts",
		Up:          migration001_initial,
	})
}

func migration001_initial(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Cleanup jobs table
	_, err = tx.Exec(`
		CREATE TABLE jobs (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL DEFAULT 'todo',
			passes TEXT NOT NULL,
			pass TEXT,
			input TEXT NOT NULL,
			result TEXT,
			html TEXT,
			changes TEXT,
			error TEXT,
			attempts INTEGER NOT NULL DEFAULT 0,
			prompt_tokens INTEGER NOT NULL DEFAULT 0,
			completion_tokens INTEGER NOT NULL DEFAULT 0,
			total_tokens INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`CREATE INDEX idx_jobs_status ON jobs(status)`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`CREATE INDEX idx_jobs_created_at ON jobs(created_at)`)
	if err != nil {
		return err
	}

	// Completed transcript archive
	_, err = tx.Exec(`
		CREATE TABLE transcripts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			raw TEXT NOT NULL,
			cleaned TEXT NOT NULL,
			html TEXT NOT NULL DEFAULT '',
			total_tokens INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`CREATE INDEX idx_transcripts_created_at ON transcripts(created_at)`)
	if err != nil {
		return err
	}

	return tx.Commit()
}
