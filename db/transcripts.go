package db

import (
	"database/sql"

	"github.com/google/uuid"
)

// CreateTranscript stores a completed cleanup in the archive
func CreateTranscript(t *Transcript) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt == "" {
		t.CreatedAt = NowUTC()
	}

	_, err := GetDB().Exec(`
		INSERT INTO transcripts (id, title, raw, cleaned, html, total_tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Raw, t.Cleaned, t.HTML, t.TotalTokens, t.CreatedAt,
	)
	return err
}

// GetTranscriptByID retrieves a single archived transcript
func GetTranscriptByID(id string) (*Transcript, error) {
	row := GetDB().QueryRow(`
		SELECT id, title, raw, cleaned, html, total_tokens, created_at
		FROM transcripts
		WHERE id = ?`, id)

	var t Transcript
	err := row.Scan(&t.ID, &t.Title, &t.Raw, &t.Cleaned, &t.HTML, &t.TotalTokens, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTranscript removes an archived transcript. Returns false when no row existed.
func DeleteTranscript(id string) (bool, error) {
	res, err := GetDB().Exec("DELETE FROM transcripts WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListTranscripts returns archive entries, newest first, without raw/cleaned bodies
func ListTranscripts(limit, offset int) ([]Transcript, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := GetDB().Query(`
		SELECT id, title, total_tokens, created_at
		FROM transcripts
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []Transcript
	for rows.Next() {
		var t Transcript
		if err := rows.Scan(&t.ID, &t.Title, &t.TotalTokens, &t.CreatedAt); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}
