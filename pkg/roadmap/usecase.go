package roadmap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Akm1923/FutureProof-AI/pkg/resume"
)

// Selection is one requested plan in a generation call.
type Selection struct {
	TechStack    string `json:"tech_stack"`
	DurationDays int    `json:"duration_days"`
	SkillLevel   string `json:"skill_level"`
}

// UseCase covers roadmap generation, progress tracking and the calendar view.
type UseCase interface {
	GenerateAndStore(ctx context.Context, userID string, selections []Selection, knownSkills []string) (Record, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, techStack string, day int, completed bool) error
	CalendarEvents(ctx context.Context, userID string, month time.Month, year int) []CalendarEvent
	Latest(ctx context.Context, userID string) (Record, error)
	Active(ctx context.Context, userID string) (Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	resumes resume.Repository
	gen     *Generator
	log     *zap.Logger
}

func NewService(repo Repository, resumes resume.Repository, gen *Generator, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, resumes: resumes, gen: gen, log: log}
}

// GenerateAndStore generates one plan per selection and persists them as a
// single record. A generation failure aborts the whole request; partially
// generated plans are discarded, never stored.
func (s *service) GenerateAndStore(ctx context.Context, userID string, selections []Selection, knownSkills []string) (Record, error) {
	var plans []Plan
	for _, sel := range selections {
		plan, err := s.gen.Generate(ctx, sel.TechStack, sel.DurationDays, sel.SkillLevel, knownSkills)
		if err != nil {
			return Record{}, err
		}
		plans = append(plans, plan)
	}

	now := time.Now().UTC()
	rec := Record{
		ID:           uuid.New(),
		UserID:       userID,
		Roadmaps:     plans,
		Progress:     Progress{},
		StartDate:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastAccessed: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("store roadmap: %w", err)
	}
	return rec, nil
}

// UpdateProgress marks one day of one tech stack complete or not. When the
// write brings the tech stack to full completion the skill is
// back-propagated into the user's latest resume. Back-propagation failures
// are logged, never surfaced: the progress write has already been persisted
// and stands on its own.
func (s *service) UpdateProgress(ctx context.Context, id uuid.UUID, techStack string, day int, completed bool) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetDayProgress(ctx, id, techStack, day, completed); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	if rec.Progress == nil {
		rec.Progress = Progress{}
	}
	rec.Progress.Set(techStack, day, completed)

	plan := findPlan(rec.Roadmaps, techStack)
	if plan == nil {
		return nil
	}
	totalDays := len(plan.DailyPlan)
	completedDays := rec.Progress.CompletedCount(techStack)
	if totalDays > 0 && completedDays == totalDays {
		s.addSkillToResume(ctx, rec.UserID, techStack)
	}
	return nil
}

func findPlan(plans []Plan, techStack string) *Plan {
	for i := range plans {
		if plans[i].TechStack == techStack {
			return &plans[i]
		}
	}
	return nil
}

// addSkillToResume appends the mastered tech stack to the latest resume's
// technical skills. Membership is case-sensitive and the write is skipped
// when the skill is already present, which makes repeated completion checks
// idempotent.
func (s *service) addSkillToResume(ctx context.Context, userID, skill string) {
	rec, err := s.resumes.LatestByOwner(ctx, userID)
	if err != nil {
		s.log.Warn("skill back-propagation: resume lookup failed",
			zap.String("user_id", userID), zap.String("skill", skill), zap.Error(err))
		return
	}
	doc := rec.Data
	doc.Normalize()
	for _, have := range doc.Skills.Technical {
		if have == skill {
			return
		}
	}
	doc.Skills.Technical = append(doc.Skills.Technical, skill)
	if err := s.resumes.UpdateData(ctx, rec.ID, doc); err != nil {
		s.log.Warn("skill back-propagation: resume update failed",
			zap.String("user_id", userID), zap.String("skill", skill), zap.Error(err))
		return
	}
	s.log.Info("added mastered skill to resume",
		zap.String("user_id", userID), zap.String("skill", skill))
}

// CalendarEvents loads the user's active roadmaps and projects them onto the
// queried month. The load is best-effort: storage errors degrade to an empty
// event list rather than failing the request.
func (s *service) CalendarEvents(ctx context.Context, userID string, month time.Month, year int) []CalendarEvent {
	records, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		s.log.Warn("calendar lookup failed", zap.String("user_id", userID), zap.Error(err))
		return []CalendarEvent{}
	}
	return MonthEvents(records, month, year)
}

func (s *service) Latest(ctx context.Context, userID string) (Record, error) {
	return s.repo.LatestByUser(ctx, userID)
}

func (s *service) Active(ctx context.Context, userID string) (Record, error) {
	return s.repo.ActiveByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
