package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Akm1923/FutureProof-AI/api/http/presenter"
	"github.com/Akm1923/FutureProof-AI/pkg/llm"
	"github.com/Akm1923/FutureProof-AI/pkg/resume"
)

type ResumeHandler struct {
	svc  resume.ParserUseCase
	repo resume.Repository
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(svc resume.ParserUseCase, repo resume.Repository, maxUploadMB int) *ResumeHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 15
	}
	return &ResumeHandler{svc: svc, repo: repo, maxBytes: int64(maxUploadMB) << 20}
}

// Parse accepts an uploaded resume (PDF or image), extracts its text,
// structures it with the LLM and stores the result.
func (h *ResumeHandler) Parse(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	ownerID := c.FormValue("user_id")

	result, err := h.svc.ParseAndStore(c.Context(), fh.Filename, data, ownerID)
	if err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("resume parsing failed: %v", genErr))
		}
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("resume parsing failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success":           true,
		"candidate_id":      result.Record.ID,
		"data":              result.Record.Data,
		"extraction_source": result.Source,
	})
}

// Get returns one stored resume by candidate id.
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resume id")
	}
	rec, err := h.repo.Get(c.Context(), id)
	if errors.Is(err, resume.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load resume")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true, "data": rec})
}

// List returns stored resumes, optionally filtered by owner.
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	var (
		recs []resume.Record
		err  error
	)
	if owner := c.Query("user_id"); owner != "" {
		recs, err = h.repo.ListByOwner(c.Context(), owner, limit, offset)
	} else {
		recs, err = h.repo.List(c.Context(), limit, offset)
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list resumes")
	}
	if recs == nil {
		recs = []resume.Record{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true, "data": recs})
}

// Update replaces the structured document of a stored resume.
func (h *ResumeHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resume id")
	}
	var doc resume.Document
	if err := c.BodyParser(&doc); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resume document")
	}
	doc.Normalize()
	err = h.repo.UpdateData(c.Context(), id, doc)
	if errors.Is(err, resume.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to update resume")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}

// Delete removes a stored resume.
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resume id")
	}
	err = h.repo.Delete(c.Context(), id)
	if errors.Is(err, resume.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete resume")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read uploaded file")
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
