package roadmap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Akm1923/FutureProof-AI/pkg/resume"
)

// memRoadmapRepo is an in-memory Repository with injectable failures.
type memRoadmapRepo struct {
	records     map[uuid.UUID]Record
	failSet     error
	failList    error
	createCalls int
}

func newMemRoadmapRepo() *memRoadmapRepo {
	return &memRoadmapRepo{records: map[uuid.UUID]Record{}}
}

func (m *memRoadmapRepo) Create(_ context.Context, rec Record) error {
	m.createCalls++
	m.records[rec.ID] = rec
	return nil
}

func (m *memRoadmapRepo) Get(_ context.Context, id uuid.UUID) (Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *memRoadmapRepo) LatestByUser(_ context.Context, userID string) (Record, error) {
	var latest Record
	found := false
	for _, rec := range m.records {
		if rec.UserID == userID && (!found || rec.CreatedAt.After(latest.CreatedAt)) {
			latest = rec
			found = true
		}
	}
	if !found {
		return Record{}, ErrNotFound
	}
	return latest, nil
}

func (m *memRoadmapRepo) ActiveByUser(ctx context.Context, userID string) (Record, error) {
	return m.LatestByUser(ctx, userID)
}

func (m *memRoadmapRepo) ListActiveByUser(_ context.Context, userID string) ([]Record, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	var out []Record
	for _, rec := range m.records {
		if rec.UserID == userID && rec.IsActive {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memRoadmapRepo) SetDayProgress(_ context.Context, id uuid.UUID, tech string, day int, completed bool) error {
	if m.failSet != nil {
		return m.failSet
	}
	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	if rec.Progress == nil {
		rec.Progress = Progress{}
	}
	rec.Progress.Set(tech, day, completed)
	m.records[id] = rec
	return nil
}

func (m *memRoadmapRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

// memResumeRepo implements resume.Repository for back-propagation tests.
type memResumeRepo struct {
	records    map[uuid.UUID]resume.Record
	failUpdate error
	updates    int
}

func newMemResumeRepo() *memResumeRepo {
	return &memResumeRepo{records: map[uuid.UUID]resume.Record{}}
}

func (m *memResumeRepo) Create(_ context.Context, rec resume.Record) error {
	m.records[rec.ID] = rec
	return nil
}

func (m *memResumeRepo) Get(_ context.Context, id uuid.UUID) (resume.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return resume.Record{}, resume.ErrNotFound
	}
	return rec, nil
}

func (m *memResumeRepo) List(context.Context, int, int) ([]resume.Record, error) { return nil, nil }

func (m *memResumeRepo) ListByOwner(context.Context, string, int, int) ([]resume.Record, error) {
	return nil, nil
}

func (m *memResumeRepo) LatestByOwner(_ context.Context, ownerID string) (resume.Record, error) {
	var latest resume.Record
	found := false
	for _, rec := range m.records {
		if rec.OwnerID == ownerID && (!found || rec.CreatedAt.After(latest.CreatedAt)) {
			latest = rec
			found = true
		}
	}
	if !found {
		return resume.Record{}, resume.ErrNotFound
	}
	return latest, nil
}

func (m *memResumeRepo) UpdateData(_ context.Context, id uuid.UUID, data resume.Document) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	rec, ok := m.records[id]
	if !ok {
		return resume.ErrNotFound
	}
	rec.Data = data
	m.records[id] = rec
	m.updates++
	return nil
}

func (m *memResumeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func seedResume(repo *memResumeRepo, ownerID string, technical ...string) uuid.UUID {
	id := uuid.New()
	doc := resume.Document{Skills: resume.Skills{Technical: technical}}
	doc.Normalize()
	repo.records[id] = resume.Record{ID: id, OwnerID: ownerID, Data: doc, CreatedAt: time.Now().UTC()}
	return id
}

func threeDayRecord(userID, tech string) Record {
	plan := Plan{TechStack: tech, DurationDays: 3, SkillLevel: "beginner"}
	for d := 1; d <= 3; d++ {
		plan.DailyPlan = append(plan.DailyPlan, DayPlan{Day: d})
	}
	return Record{
		ID:        uuid.New(),
		UserID:    userID,
		Roadmaps:  []Plan{plan},
		Progress:  Progress{},
		StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func newTestService(repo *memRoadmapRepo, resumes *memResumeRepo) UseCase {
	return NewService(repo, resumes, nil, zap.NewNop())
}

func TestUpdateProgress_Idempotent(t *testing.T) {
	repo := newMemRoadmapRepo()
	resumes := newMemResumeRepo()
	rec := threeDayRecord("user-1", "Go")
	repo.records[rec.ID] = rec
	svc := newTestService(repo, resumes)

	require.NoError(t, svc.UpdateProgress(context.Background(), rec.ID, "Go", 1, true))
	once := repo.records[rec.ID].Progress

	require.NoError(t, svc.UpdateProgress(context.Background(), rec.ID, "Go", 1, true))
	twice := repo.records[rec.ID].Progress

	assert.Equal(t, once, twice)
	assert.True(t, twice.Completed("Go", 1))
}

func TestUpdateProgress_CompletionTriggersBackPropagationOnce(t *testing.T) {
	repo := newMemRoadmapRepo()
	resumes := newMemResumeRepo()
	resumeID := seedResume(resumes, "user-1", "Python")
	rec := threeDayRecord("user-1", "Go")
	repo.records[rec.ID] = rec
	svc := newTestService(repo, resumes)

	ctx := context.Background()
	require.NoError(t, svc.UpdateProgress(ctx, rec.ID, "Go", 1, true))
	require.NoError(t, svc.UpdateProgress(ctx, rec.ID, "Go", 2, true))
	// Days 1..N-1 complete: no back-propagation yet.
	assert.Zero(t, resumes.updates)

	require.NoError(t, svc.UpdateProgress(ctx, rec.ID, "Go", 3, true))
	assert.Equal(t, 1, resumes.updates)
	assert.Equal(t, []string{"Python", "Go"}, resumes.records[resumeID].Data.Skills.Technical)

	// Toggle a day off and back on: no duplicate skill entry.
	require.NoError(t, svc.UpdateProgress(ctx, rec.ID, "Go", 2, false))
	require.NoError(t, svc.UpdateProgress(ctx, rec.ID, "Go", 2, true))
	assert.Equal(t, 1, resumes.updates)
	assert.Equal(t, []string{"Python", "Go"}, resumes.records[resumeID].Data.Skills.Technical)
}

func TestUpdateProgress_SkillMembershipIsCaseSensitive(t *testing.T) {
	repo := newMemRoadmapRepo()
	resumes := newMemResumeRepo()
	resumeID := seedResume(resumes, "user-1", "go")
	rec := threeDayRecord("user-1", "Go")
	repo.records[rec.ID] = rec
	svc := newTestService(repo, resumes)

	ctx := context.Background()
	for d := 1; d <= 3; d++ {
		require.NoError(t, svc.UpdateProgress(ctx, rec.ID, "Go", d, true))
	}
	// "go" != "Go": the differently cased skill is appended.
	assert.Equal(t, []string{"go", "Go"}, resumes.records[resumeID].Data.Skills.Technical)
}

func TestUpdateProgress_BackPropagationFailureIsSwallowed(t *testing.T) {
	repo := newMemRoadmapRepo()
	resumes := newMemResumeRepo()
	seedResume(resumes, "user-1")
	resumes.failUpdate = errors.New("resume table down")
	rec := threeDayRecord("user-1", "Go")
	repo.records[rec.ID] = rec
	svc := newTestService(repo, resumes)

	ctx := context.Background()
	for d := 1; d <= 3; d++ {
		require.NoError(t, svc.UpdateProgress(ctx, rec.ID, "Go", d, true))
	}
	// Progress persisted even though back-propagation failed.
	assert.True(t, repo.records[rec.ID].Progress.Completed("Go", 3))
}

func TestUpdateProgress_StorageFailureSurfaces(t *testing.T) {
	repo := newMemRoadmapRepo()
	rec := threeDayRecord("user-1", "Go")
	repo.records[rec.ID] = rec
	repo.failSet = errors.New("write timeout")
	svc := newTestService(repo, newMemResumeRepo())

	err := svc.UpdateProgress(context.Background(), rec.ID, "Go", 1, true)
	assert.ErrorContains(t, err, "persist progress")
}

func TestUpdateProgress_UnknownRoadmap(t *testing.T) {
	svc := newTestService(newMemRoadmapRepo(), newMemResumeRepo())

	err := svc.UpdateProgress(context.Background(), uuid.New(), "Go", 1, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProgress_UnknownTechStackStillPersists(t *testing.T) {
	repo := newMemRoadmapRepo()
	rec := threeDayRecord("user-1", "Go")
	repo.records[rec.ID] = rec
	svc := newTestService(repo, newMemResumeRepo())

	require.NoError(t, svc.UpdateProgress(context.Background(), rec.ID, "Rust", 1, true))
	assert.True(t, repo.records[rec.ID].Progress.Completed("Rust", 1))
}

func TestCalendarEvents_DegradesToEmptyOnStorageError(t *testing.T) {
	repo := newMemRoadmapRepo()
	repo.failList = errors.New("select failed")
	svc := newTestService(repo, newMemResumeRepo())

	events := svc.CalendarEvents(context.Background(), "user-1", time.January, 2026)
	assert.Empty(t, events)
}

func TestCalendarEvents_ProjectsActiveRecords(t *testing.T) {
	repo := newMemRoadmapRepo()
	rec := threeDayRecord("user-1", "Go")
	repo.records[rec.ID] = rec
	inactive := threeDayRecord("user-1", "Rust")
	inactive.IsActive = false
	repo.records[inactive.ID] = inactive
	svc := newTestService(repo, newMemResumeRepo())

	events := svc.CalendarEvents(context.Background(), "user-1", time.January, 2026)
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, "Go", ev.TechStack)
	}
}
