package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jiyanshuj/PaperVista/api/internal/exam"
)

var ErrNotFound = sql.ErrNoRows

// ExamRepo archives generated papers. It is a history of what was handed
// out, not a cache: generation never reads from it.
type ExamRepo struct{ DB *sql.DB }

func NewExamRepo(db *sql.DB) *ExamRepo { return &ExamRepo{DB: db} }

type ExamRow struct {
	ID           int64
	CreatedAt    time.Time
	CourseName   string
	ExamType     string
	ModelUsed    string
	Duration     string
	NumQuestions int
	Paper        exam.Paper
}

// Insert persists one generated paper.
func (r *ExamRepo) Insert(ctx context.Context, row ExamRow) error {
	js, err := json.Marshal(row.Paper)
	if err != nil {
		return err
	}
	const q = `
insert into generated_papers (
  course_name, exam_type, model_used, duration, num_questions, paper_json
) values ($1,$2,$3,$4,$5,$6)`
	_, err = r.DB.ExecContext(ctx, q,
		row.CourseName, row.ExamType, row.ModelUsed, row.Duration, row.NumQuestions, js,
	)
	return err
}

// Latest returns the most recently archived paper, or ErrNotFound when
// the archive is empty.
func (r *ExamRepo) Latest(ctx context.Context) (*ExamRow, error) {
	const q = `
select id, created_at, course_name, exam_type, model_used, duration, num_questions, paper_json
from generated_papers
order by created_at desc
limit 1`
	var (
		row ExamRow
		js  []byte
	)
	err := r.DB.QueryRowContext(ctx, q).Scan(&row.ID, &row.CreatedAt, &row.CourseName,
		&row.ExamType, &row.ModelUsed, &row.Duration, &row.NumQuestions, &js)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(js, &row.Paper); err != nil {
		// broken JSON: treat as absent rather than surface a decode error
		return nil, ErrNotFound
	}
	return &row, nil
}

// Recent returns the newest archived papers, most recent first.
func (r *ExamRepo) Recent(ctx context.Context, limit int) ([]ExamRow, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
select id, created_at, course_name, exam_type, model_used, duration, num_questions, paper_json
from generated_papers
order by created_at desc
limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExamRow
	for rows.Next() {
		var (
			row ExamRow
			js  []byte
		)
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.CourseName, &row.ExamType,
			&row.ModelUsed, &row.Duration, &row.NumQuestions, &js); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(js, &row.Paper); err != nil {
			// broken JSON: skip the row rather than fail the listing
			continue
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// PurgeOlderThan deletes old archive rows so the table does not grow
// without bound.
func (r *ExamRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from generated_papers where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
