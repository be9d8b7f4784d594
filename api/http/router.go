package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Akm1923/FutureProof-AI/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, resume *handlers.ResumeHandler, roadmap *handlers.RoadmapHandler) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	// Resume parsing and storage
	v1.Get("/resumes", resume.List)
	rg := v1.Group("/resume")
	rg.Post("/parse", resume.Parse)
	rg.Get("/:id", resume.Get)
	rg.Put("/:id", resume.Update)
	rg.Delete("/:id", resume.Delete)

	// Learning roadmaps. Static prefixes go first so they are not captured
	// by the :userId parameter.
	rm := v1.Group("/roadmap")
	rm.Post("/suggest-techstacks", roadmap.SuggestTechStacks)
	rm.Post("/generate", roadmap.Generate)
	rm.Get("/active/:userId", roadmap.Active)
	rm.Get("/calendar/:userId", roadmap.Calendar)
	rm.Get("/:userId", roadmap.Latest)
	rm.Patch("/:roadmapId/progress", roadmap.UpdateProgress)
	rm.Delete("/:roadmapId", roadmap.Delete)
}
