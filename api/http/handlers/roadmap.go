package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Akm1923/FutureProof-AI/api/http/presenter"
	"github.com/Akm1923/FutureProof-AI/pkg/llm"
	"github.com/Akm1923/FutureProof-AI/pkg/roadmap"
)

type RoadmapHandler struct {
	svc roadmap.UseCase
	gen *roadmap.Generator
}

func NewRoadmapHandler(svc roadmap.UseCase, gen *roadmap.Generator) *RoadmapHandler {
	return &RoadmapHandler{svc: svc, gen: gen}
}

type suggestRequest struct {
	Interests  []string `json:"interests"`
	UserSkills []string `json:"user_skills"`
}

// SuggestTechStacks returns ranked technology suggestions for the
// user's interests, flagging ones they already know.
func (h *RoadmapHandler) SuggestTechStacks(c *fiber.Ctx) error {
	var req suggestRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.Interests) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "interests are required")
	}
	suggestions := h.gen.SuggestTechStacks(c.Context(), req.Interests, req.UserSkills)
	return presenter.JSON(c, http.StatusOK, fiber.Map{"techstacks": suggestions})
}

type generateRequest struct {
	UserID     string              `json:"user_id"`
	Selections []roadmap.Selection `json:"selections"`
	UserSkills []string            `json:"user_skills"`
}

// Generate builds roadmaps for each selected tech stack and stores
// them as a single active record for the user.
func (h *RoadmapHandler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return presenter.Error(c, http.StatusBadRequest, "user_id is required")
	}
	if len(req.Selections) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "at least one selection is required")
	}
	rec, err := h.svc.GenerateAndStore(c.Context(), req.UserID, req.Selections, req.UserSkills)
	if err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("roadmap generation failed: %v", genErr))
		}
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("roadmap generation failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"roadmap_id": rec.ID,
		"roadmaps":   rec.Roadmaps,
	})
}

// Latest returns the most recently created roadmap record for a user.
func (h *RoadmapHandler) Latest(c *fiber.Ctx) error {
	userID := c.Params("userId")
	rec, err := h.svc.Latest(c.Context(), userID)
	if errors.Is(err, roadmap.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "no roadmap found")
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load roadmap")
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// Active reports whether the user has an active roadmap and returns it.
func (h *RoadmapHandler) Active(c *fiber.Ctx) error {
	userID := c.Params("userId")
	rec, err := h.svc.Active(c.Context(), userID)
	if errors.Is(err, roadmap.ErrNotFound) {
		return presenter.JSON(c, http.StatusOK, fiber.Map{"active": false})
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load roadmap")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"active": true, "roadmap": rec})
}

type progressRequest struct {
	TechStack string `json:"tech_stack"`
	Day       int    `json:"day"`
	Completed bool   `json:"completed"`
}

// UpdateProgress marks a roadmap day complete or incomplete.
func (h *RoadmapHandler) UpdateProgress(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("roadmapId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid roadmap id")
	}
	var req progressRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if req.TechStack == "" {
		return presenter.Error(c, http.StatusBadRequest, "tech_stack is required")
	}
	if req.Day < 1 {
		return presenter.Error(c, http.StatusBadRequest, "day must be positive")
	}
	err = h.svc.UpdateProgress(c.Context(), id, req.TechStack, req.Day, req.Completed)
	if errors.Is(err, roadmap.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "roadmap not found")
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to update progress")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}

// Calendar projects the user's active roadmaps onto calendar dates for
// the requested month. Month and year default to the current ones.
func (h *RoadmapHandler) Calendar(c *fiber.Ctx) error {
	userID := c.Params("userId")
	now := time.Now().UTC()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 {
		return presenter.Error(c, http.StatusBadRequest, "month must be between 1 and 12")
	}
	events := h.svc.CalendarEvents(c.Context(), userID, time.Month(month), year)
	if events == nil {
		events = []roadmap.CalendarEvent{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"events": events})
}

// Delete removes a roadmap record.
func (h *RoadmapHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("roadmapId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid roadmap id")
	}
	err = h.svc.Delete(c.Context(), id)
	if errors.Is(err, roadmap.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "roadmap not found")
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete roadmap")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}
