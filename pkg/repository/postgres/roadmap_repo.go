package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akm1923/FutureProof-AI/pkg/roadmap"
)

// RoadmapRepository stores roadmap records; plans and progress live in JSONB.
type RoadmapRepository struct {
	pool *pgxpool.Pool
}

func NewRoadmapRepository(pool *pgxpool.Pool) (*RoadmapRepository, error) {
	r := &RoadmapRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RoadmapRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS learning_roadmaps (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL,
	roadmaps JSONB NOT NULL,
	progress JSONB NOT NULL DEFAULT '{}'::jsonb,
	start_date DATE NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	last_accessed TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS learning_roadmaps_user_created_idx ON learning_roadmaps (user_id, created_at DESC);
`)
	return err
}

func (r *RoadmapRepository) Create(ctx context.Context, rec roadmap.Record) error {
	plans, err := json.Marshal(rec.Roadmaps)
	if err != nil {
		return fmt.Errorf("marshal roadmaps: %w", err)
	}
	if rec.Progress == nil {
		rec.Progress = roadmap.Progress{}
	}
	progress, err := json.Marshal(rec.Progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO learning_roadmaps (id, user_id, roadmaps, progress, start_date, is_active, created_at, updated_at, last_accessed)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, rec.ID, rec.UserID, plans, progress, rec.StartDate, rec.IsActive, rec.CreatedAt, rec.UpdatedAt, rec.LastAccessed)
	return err
}

func (r *RoadmapRepository) Get(ctx context.Context, id uuid.UUID) (roadmap.Record, error) {
	row := r.pool.QueryRow(ctx, selectRoadmap+` WHERE id = $1`, id)
	return scanRoadmap(row)
}

func (r *RoadmapRepository) LatestByUser(ctx context.Context, userID string) (roadmap.Record, error) {
	row := r.pool.QueryRow(ctx, selectRoadmap+`
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1
`, userID)
	return scanRoadmap(row)
}

func (r *RoadmapRepository) ActiveByUser(ctx context.Context, userID string) (roadmap.Record, error) {
	row := r.pool.QueryRow(ctx, selectRoadmap+`
WHERE user_id = $1 AND is_active
ORDER BY last_accessed DESC
LIMIT 1
`, userID)
	return scanRoadmap(row)
}

func (r *RoadmapRepository) ListActiveByUser(ctx context.Context, userID string) ([]roadmap.Record, error) {
	rows, err := r.pool.Query(ctx, selectRoadmap+`
WHERE user_id = $1 AND is_active
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []roadmap.Record
	for rows.Next() {
		rec, err := scanRoadmap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SetDayProgress patches progress[techStack][day] in place with a single
// UPDATE, so two concurrent updates to different days both land instead of
// one overwriting the other's whole progress document.
func (r *RoadmapRepository) SetDayProgress(ctx context.Context, id uuid.UUID, techStack string, day int, completed bool) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE learning_roadmaps
SET progress = jsonb_set(
		progress,
		ARRAY[$2::text],
		COALESCE(progress->$2::text, '{}'::jsonb) || jsonb_build_object($3::text, $4::boolean)
	),
	updated_at = $5
WHERE id = $1
`, id, techStack, strconv.Itoa(day), completed, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return roadmap.ErrNotFound
	}
	return nil
}

func (r *RoadmapRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM learning_roadmaps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return roadmap.ErrNotFound
	}
	return nil
}

const selectRoadmap = `
SELECT id, user_id, roadmaps, progress, start_date, is_active, created_at, updated_at, last_accessed
FROM learning_roadmaps`

func scanRoadmap(row pgx.Row) (roadmap.Record, error) {
	var rec roadmap.Record
	var plans, progress []byte
	var created, updated, accessed time.Time
	if err := row.Scan(&rec.ID, &rec.UserID, &plans, &progress, &rec.StartDate, &rec.IsActive, &created, &updated, &accessed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roadmap.Record{}, roadmap.ErrNotFound
		}
		return roadmap.Record{}, err
	}
	if err := json.Unmarshal(plans, &rec.Roadmaps); err != nil {
		return roadmap.Record{}, fmt.Errorf("unmarshal roadmaps: %w", err)
	}
	if err := json.Unmarshal(progress, &rec.Progress); err != nil {
		return roadmap.Record{}, fmt.Errorf("unmarshal progress: %w", err)
	}
	if rec.Progress == nil {
		rec.Progress = roadmap.Progress{}
	}
	rec.CreatedAt = created.UTC()
	rec.UpdatedAt = updated.UTC()
	rec.LastAccessed = accessed.UTC()
	return rec, nil
}
