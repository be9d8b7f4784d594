package roadmap

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Akm1923/FutureProof-AI/pkg/llm"
	"github.com/Akm1923/FutureProof-AI/pkg/metrics"
	"github.com/Akm1923/FutureProof-AI/pkg/search"
)

// Generator composes web search and the chat model into tech-stack
// suggestions and day-by-day roadmap generation.
type Generator struct {
	llm    llm.ChatModel
	search search.Searcher
	log    *zap.Logger
}

func NewGenerator(model llm.ChatModel, searcher search.Searcher, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{llm: model, search: searcher, log: log}
}

// webContext gathers up to ten search snippets for the interests. Search is
// best-effort enrichment: any failure yields an empty context.
func (g *Generator) webContext(ctx context.Context, interests []string) string {
	if g.search == nil {
		return ""
	}
	query := strings.Join(interests, " ") + " latest technologies tools frameworks 2026"
	snippets, err := g.search.Search(ctx, query, 10)
	if err != nil {
		metrics.SearchLookups.WithLabelValues("error").Inc()
		g.log.Warn("web search failed, continuing without context", zap.Error(err))
		return ""
	}
	metrics.SearchLookups.WithLabelValues("ok").Inc()
	if len(snippets) > 5 {
		snippets = snippets[:5]
	}
	var lines []string
	for _, s := range snippets {
		lines = append(lines, strings.TrimSpace(s.Body+" "+s.Title))
	}
	return strings.Join(lines, "\n")
}

// SuggestTechStacks asks the model for 15-20 technology recommendations.
// The model's already_known flags are overridden by a case-insensitive exact
// match against knownSkills: caller-supplied skills are ground truth, model
// self-assessment is not. On any irrecoverable failure a curated static list
// is returned instead of an error.
func (g *Generator) SuggestTechStacks(ctx context.Context, interests, knownSkills []string) []TechSuggestion {
	webContext := g.webContext(ctx, interests)

	skills := "None"
	if len(knownSkills) > 0 {
		skills = strings.Join(knownSkills, ", ")
	}
	user := fmt.Sprintf(`Based on user interests: %s

User's existing skills: %s

Latest industry trends (from web search):
%s

Generate 15-20 comprehensive technology recommendations covering:
- Core frameworks and libraries
- Cloud platforms (AWS, Azure, GCP)
- Databases (SQL, NoSQL, Vector DBs like Redis, Pinecone)
- AI/ML tools (LangChain, LangGraph, CrewAI, AutoGen)
- DevOps tools (Docker, Kubernetes, CI/CD)
- MCP servers and agentic frameworks
- Memory systems and caching
- API technologies
- Monitoring and observability tools

For EACH technology, provide:
- name: Technology name
- description: Clear 1-2 sentence description
- category: One of [AI/ML, Backend, Frontend, Cloud, Database, DevOps, Tools, Framework]
- difficulty: beginner, intermediate, or advanced
- relevance_score: 1-10 based on user interests
- already_known: true if user already has this skill, false otherwise
- prerequisites: List of 2-3 prerequisite skills
- use_cases: 2-3 real-world use cases

Return ONLY valid JSON array. Be comprehensive and include cutting-edge technologies.`,
		strings.Join(interests, ", "), skills, webContext)

	raw, err := g.llm.Complete(ctx, llm.Request{
		System:      "You are an expert tech advisor with deep knowledge of latest technologies, frameworks, and industry trends. Provide comprehensive, actionable recommendations.",
		User:        user,
		Temperature: 0.7,
		MaxTokens:   4000,
	})
	if err != nil {
		metrics.LLMCalls.WithLabelValues("suggest_techstacks", "error").Inc()
		g.log.Warn("tech stack suggestion failed, using static fallback", zap.Error(err))
		return FallbackSuggestions(knownSkills)
	}

	var suggestions []TechSuggestion
	if err := llm.UnmarshalResponse(raw, &suggestions); err != nil {
		metrics.LLMCalls.WithLabelValues("suggest_techstacks", "parse_error").Inc()
		g.log.Warn("tech stack suggestion unparseable, using static fallback",
			zap.Error(llm.NewGenerationError("suggest techstacks", raw, err)))
		return FallbackSuggestions(knownSkills)
	}
	metrics.LLMCalls.WithLabelValues("suggest_techstacks", "ok").Inc()

	markKnown(suggestions, knownSkills)
	return suggestions
}

// markKnown overrides already_known with a case-insensitive exact match
// against the caller's skills.
func markKnown(suggestions []TechSuggestion, knownSkills []string) {
	for i := range suggestions {
		suggestions[i].AlreadyKnown = false
		for _, skill := range knownSkills {
			if strings.EqualFold(suggestions[i].Name, skill) {
				suggestions[i].AlreadyKnown = true
				break
			}
		}
	}
}

// Generate builds one day-by-day plan. Unlike suggestions there is no static
// fallback: an unparseable roadmap is an error, because serving a wrong plan
// is worse than serving none.
func (g *Generator) Generate(ctx context.Context, techStack string, durationDays int, skillLevel string, knownSkills []string) (Plan, error) {
	skillsContext := ""
	if len(knownSkills) > 0 {
		skillsContext = "\nUser already knows: " + strings.Join(knownSkills, ", ")
	}
	user := fmt.Sprintf(`Create a detailed day-by-day learning roadmap for %[1]s.

Duration: %[2]d days
User's skill level: %[3]s%[4]s

IMPORTANT: Return ONLY valid JSON. Use simple descriptions without complex quotes or special characters.

Create a %[2]d-day learning plan with:
- Daily breakdown with specific tasks
- Hands-on exercises and projects
- Clear learning objectives
- Resource recommendations
- Milestone checkpoints

Return valid JSON with this structure:
{
  "tech_stack": "%[1]s",
  "duration_days": %[2]d,
  "skill_level": "%[3]s",
  "overview": "Brief overview of what the learner will master",
  "prerequisites": ["Prerequisite 1"],
  "daily_plan": [
    {
      "day": 1,
      "title": "Day 1: Setup and Introduction",
      "focus": "Getting started with the basics",
      "topics": ["Topic 1", "Topic 2"],
      "learning_objectives": ["Objective 1"],
      "hands_on_tasks": ["Task 1"],
      "practice_exercises": ["Exercise 1"],
      "resources": ["Official documentation"],
      "estimated_hours": 3,
      "checkpoint": "What the learner should be able to do"
    }
  ],
  "projects": [
    {
      "day_range": "Days 3-5",
      "title": "Mini Project: Build a Simple Application",
      "description": "Apply what you learned to create a functional project",
      "objectives": ["Apply core concepts"],
      "technologies_used": ["Tech 1"],
      "estimated_hours": 6
    }
  ],
  "capstone_project": {
    "title": "Final Project: Comprehensive Application",
    "description": "Build a complete application showcasing all learned skills",
    "features": ["Feature 1"],
    "technologies": ["All technologies learned"],
    "estimated_hours": 15,
    "deliverables": ["Working application"]
  },
  "milestones": [
    {"day": 5, "title": "Milestone 1", "achievement": "What was achieved"}
  ],
  "resources": {
    "documentation": [], "tutorials": [], "videos": [], "books": [], "communities": []
  },
  "next_steps": ["Explore advanced topics"]
}

Make descriptions clear and actionable. Keep it professional but encouraging.`,
		techStack, durationDays, skillLevel, skillsContext)

	raw, err := g.llm.Complete(ctx, llm.Request{
		System:      "You are a passionate, encouraging technical educator who makes learning exciting and approachable. Write in a warm, conversational tone that motivates learners. CRITICAL: Always return valid JSON with properly escaped quotes and newlines.",
		User:        user,
		Temperature: 0.7,
		MaxTokens:   4000,
		JSONOnly:    true,
	})
	if err != nil {
		metrics.LLMCalls.WithLabelValues("generate_roadmap", "error").Inc()
		return Plan{}, fmt.Errorf("generate roadmap for %s: %w", techStack, err)
	}

	var plan Plan
	if err := llm.UnmarshalResponseRelaxed(raw, &plan); err != nil {
		metrics.LLMCalls.WithLabelValues("generate_roadmap", "parse_error").Inc()
		return Plan{}, llm.NewGenerationError("generate roadmap", raw, err)
	}
	metrics.LLMCalls.WithLabelValues("generate_roadmap", "ok").Inc()
	return plan, nil
}
