package roadmap

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested roadmap record does not exist.
var ErrNotFound = errors.New("roadmap not found")

// Progress maps tech-stack name to day number (as a string key, matching the
// stored JSON) to completion. Absent keys mean not completed.
type Progress map[string]map[string]bool

// Set records completion for one day, creating the inner map when the tech
// stack has not been seen yet.
func (p Progress) Set(techStack string, day int, completed bool) {
	days, ok := p[techStack]
	if !ok {
		days = map[string]bool{}
		p[techStack] = days
	}
	days[strconv.Itoa(day)] = completed
}

// Completed reports whether a day is marked done. Missing entries are false.
func (p Progress) Completed(techStack string, day int) bool {
	return p[techStack][strconv.Itoa(day)]
}

// CompletedCount counts days marked done for a tech stack.
func (p Progress) CompletedCount(techStack string) int {
	n := 0
	for _, done := range p[techStack] {
		if done {
			n++
		}
	}
	return n
}

// Record is one stored roadmap generation: one or more plans plus the
// per-day completion state.
type Record struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	Roadmaps     []Plan    `json:"roadmaps"`
	Progress     Progress  `json:"progress"`
	StartDate    time.Time `json:"start_date"` // date precision; zero means "use created_at"
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Plan is one LLM-authored multi-day learning plan for a single technology.
// DayPlan.Day is assumed 1-based, contiguous and unique within a plan; the
// calendar projection depends on that.
type Plan struct {
	TechStack     string           `json:"tech_stack"`
	DurationDays  int              `json:"duration_days"`
	SkillLevel    string           `json:"skill_level"` // beginner, intermediate, advanced
	Overview      string           `json:"overview"`
	Prerequisites []string         `json:"prerequisites"`
	DailyPlan     []DayPlan        `json:"daily_plan"`
	Projects      []ProjectPlan    `json:"projects"`
	Capstone      *CapstoneProject `json:"capstone_project,omitempty"`
	Milestones    []Milestone      `json:"milestones"`
	Resources     Resources        `json:"resources"`
	NextSteps     []string         `json:"next_steps"`
}

type DayPlan struct {
	Day                int      `json:"day"`
	Title              string   `json:"title"`
	Focus              string   `json:"focus"`
	Topics             []string `json:"topics"`
	LearningObjectives []string `json:"learning_objectives"`
	HandsOnTasks       []string `json:"hands_on_tasks"`
	PracticeExercises  []string `json:"practice_exercises"`
	Resources          []string `json:"resources"`
	EstimatedHours     float64  `json:"estimated_hours"`
	Checkpoint         string   `json:"checkpoint"`
}

// ProjectPlan anchors to the plan timeline through DayRange, a free-text
// string such as "Days 3-5" or "Day 3". The first embedded integer is the
// project's anchor day.
type ProjectPlan struct {
	DayRange         string   `json:"day_range"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Objectives       []string `json:"objectives"`
	TechnologiesUsed []string `json:"technologies_used"`
	EstimatedHours   float64  `json:"estimated_hours"`
}

type CapstoneProject struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	Technologies   []string `json:"technologies"`
	EstimatedHours float64  `json:"estimated_hours"`
	Deliverables   []string `json:"deliverables"`
}

type Milestone struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Achievement string `json:"achievement"`
}

type Resources struct {
	Documentation []string `json:"documentation"`
	Tutorials     []string `json:"tutorials"`
	Videos        []string `json:"videos"`
	Books         []string `json:"books"`
	Communities   []string `json:"communities"`
}

// TechSuggestion is one entry of the tech-stack suggestion list.
type TechSuggestion struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	RelevanceScore int      `json:"relevance_score"`
	AlreadyKnown   bool     `json:"already_known"`
	Prerequisites  []string `json:"prerequisites"`
	UseCases       []string `json:"use_cases"`
}

// EventType distinguishes daily tasks from project anchors on the calendar.
type EventType string

const (
	EventTask    EventType = "task"
	EventProject EventType = "project"
)

// CalendarEvent is a derived, never-persisted projection of one plan entry
// onto a concrete calendar date. Completed is set for tasks only; project
// events carry no completion state.
type CalendarEvent struct {
	RoadmapID      uuid.UUID `json:"roadmap_id"`
	TechStack      string    `json:"tech_stack"`
	Day            int       `json:"day"` // calendar day of month
	RoadmapDay     int       `json:"roadmap_day,omitempty"`
	Date           string    `json:"date"` // ISO calendar date
	Title          string    `json:"title"`
	Type           EventType `json:"type"`
	Completed      *bool     `json:"completed,omitempty"`
	DayRange       string    `json:"day_range,omitempty"`
	EstimatedHours float64   `json:"estimated_hours"`
}

// Repository is the persistence port for roadmap records.
type Repository interface {
	Create(ctx context.Context, rec Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	// LatestByUser returns the user's most recent record by creation time.
	LatestByUser(ctx context.Context, userID string) (Record, error)
	// ActiveByUser returns the user's most recently accessed active record.
	ActiveByUser(ctx context.Context, userID string) (Record, error)
	ListActiveByUser(ctx context.Context, userID string) ([]Record, error)
	// SetDayProgress persists progress[techStack][day] = completed as a
	// targeted patch of the stored progress document.
	SetDayProgress(ctx context.Context, id uuid.UUID, techStack string, day int, completed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
