package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resume record does not exist.
var ErrNotFound = errors.New("resume not found")

// Document is the structured representation of a parsed resume. It is
// LLM-authored and tolerant of missing fields: every field defaults to its
// zero value and slices serialize as [] rather than null.
type Document struct {
	Contact        Contact      `json:"contact"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         Skills       `json:"skills"`
	Certifications []string     `json:"certifications"`
	Languages      []string     `json:"languages"`
}

type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

type Experience struct {
	Company        string `json:"company"`
	Title          string `json:"title"`
	StartDate      string `json:"start_date"` // ISO date when the model can infer it
	EndDate        string `json:"end_date"`   // ISO date or "present"
	DurationMonths int    `json:"duration_months"`
	Description    string `json:"description"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Skills struct {
	Technical []string `json:"technical"`
	Tools     []string `json:"tools"`
	Domain    []string `json:"domain"`
}

// Normalize replaces nil slices with empty ones so stored and rendered JSON
// never contains null where the schema promises an array.
func (d *Document) Normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills.Technical == nil {
		d.Skills.Technical = []string{}
	}
	if d.Skills.Tools == nil {
		d.Skills.Tools = []string{}
	}
	if d.Skills.Domain == nil {
		d.Skills.Domain = []string{}
	}
	if d.Certifications == nil {
		d.Certifications = []string{}
	}
	if d.Languages == nil {
		d.Languages = []string{}
	}
}

// Record is one stored resume. OwnerID is an opaque identifier passed
// through from the caller; the backend does not validate it.
type Record struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Data      Document  `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository is the persistence port for resume records.
type Repository interface {
	Create(ctx context.Context, rec Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Record, error)
	// LatestByOwner returns the owner's most recent record by creation time.
	LatestByOwner(ctx context.Context, ownerID string) (Record, error)
	UpdateData(ctx context.Context, id uuid.UUID, data Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}
