package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akm1923/FutureProof-AI/pkg/resume"
)

// ResumeRepository stores parsed resume documents as JSONB.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) (*ResumeRepository, error) {
	r := &ResumeRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResumeRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	owner_id TEXT NOT NULL DEFAULT '',
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS resumes_owner_created_idx ON resumes (owner_id, created_at DESC);
`)
	return err
}

func (r *ResumeRepository) Create(ctx context.Context, rec resume.Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("marshal resume data: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, data, created_at)
VALUES ($1, $2, $3, $4)
`, rec.ID, rec.OwnerID, data, rec.CreatedAt)
	return err
}

func (r *ResumeRepository) Get(ctx context.Context, id uuid.UUID) (resume.Record, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, data, created_at FROM resumes WHERE id = $1
`, id)
	return scanResume(row)
}

func (r *ResumeRepository) List(ctx context.Context, limit, offset int) ([]resume.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, data, created_at FROM resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResumes(rows)
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]resume.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, data, created_at FROM resumes
WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResumes(rows)
}

func (r *ResumeRepository) LatestByOwner(ctx context.Context, ownerID string) (resume.Record, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, data, created_at FROM resumes
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT 1
`, ownerID)
	return scanResume(row)
}

func (r *ResumeRepository) UpdateData(ctx context.Context, id uuid.UUID, data resume.Document) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal resume data: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE resumes SET data = $2 WHERE id = $1
`, id, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (resume.Record, error) {
	var rec resume.Record
	var data []byte
	var created time.Time
	if err := row.Scan(&rec.ID, &rec.OwnerID, &data, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Record{}, resume.ErrNotFound
		}
		return resume.Record{}, err
	}
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return resume.Record{}, fmt.Errorf("unmarshal resume data: %w", err)
	}
	rec.Data.Normalize()
	rec.CreatedAt = created.UTC()
	return rec, nil
}

func scanResumes(rows pgx.Rows) ([]resume.Record, error) {
	var out []resume.Record
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
