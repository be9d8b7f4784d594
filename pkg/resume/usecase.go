package resume

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Akm1923/FutureProof-AI/pkg/extract"
	"github.com/Akm1923/FutureProof-AI/pkg/llm"
	"github.com/Akm1923/FutureProof-AI/pkg/metrics"
)

// ParseResult carries the stored record plus where its text came from, so
// callers can tell a real parse from the synthetic fallback sample.
type ParseResult struct {
	Record Record
	Source extract.Source
}

// ParserUseCase is the application use case for resume upload parsing.
type ParserUseCase interface {
	ParseAndStore(ctx context.Context, filename string, data []byte, ownerID string) (ParseResult, error)
}

type parserService struct {
	extractor *extract.Extractor
	llm       llm.ChatModel
	repo      Repository
	log       *zap.Logger
	maxChars  int
}

// NewParserService creates the default implementation.
func NewParserService(extractor *extract.Extractor, model llm.ChatModel, repo Repository, log *zap.Logger) ParserUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &parserService{
		extractor: extractor,
		llm:       model,
		repo:      repo,
		log:       log,
		maxChars:  12_000,
	}
}

func (s *parserService) ParseAndStore(ctx context.Context, filename string, data []byte, ownerID string) (ParseResult, error) {
	res := s.extractor.Extract(data, filename)
	metrics.Extractions.WithLabelValues(string(res.Source)).Inc()
	s.log.Info("extracted resume text",
		zap.String("filename", filename),
		zap.String("source", string(res.Source)),
		zap.Int("chars", len(res.Text)))

	doc, err := s.structure(ctx, res.Text)
	if err != nil {
		return ParseResult{}, err
	}
	doc.Normalize()

	rec := Record{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Data:      doc,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return ParseResult{}, fmt.Errorf("store resume: %w", err)
	}
	return ParseResult{Record: rec, Source: res.Source}, nil
}

// documentSchema describes the exact JSON shape the model must fill in.
const documentSchema = `{
  "contact": {"name": "", "email": "", "phone": "", "location": "", "linkedin": ""},
  "experience": [{"company": "", "title": "", "start_date": "", "end_date": "", "duration_months": 0, "description": ""}],
  "education": [{"institution": "", "degree": "", "field": "", "start_date": "", "end_date": ""}],
  "skills": {"technical": [], "tools": [], "domain": []},
  "certifications": [],
  "languages": []
}`

func (s *parserService) structure(ctx context.Context, text string) (Document, error) {
	if len(text) > s.maxChars {
		text = text[:s.maxChars]
	}
	user := fmt.Sprintf(`You are an expert resume parser. Extract information from the following resume text and structure it according to the provided JSON schema.

Resume Text:
%s

JSON Schema:
%s

Instructions:
- Extract all relevant information from the resume text
- Fill in the JSON schema with extracted data
- Use empty strings for missing text fields
- Use empty arrays for missing list fields
- Use 0 for missing numeric fields
- Infer information when possible (e.g., calculate duration_months from dates)
- For dates, use ISO format (YYYY-MM-DD) when possible
- Return ONLY valid JSON matching the schema, no additional text

Output the complete JSON:`, text, documentSchema)

	raw, err := s.llm.Complete(ctx, llm.Request{
		User:        user,
		Temperature: 0.1,
		MaxTokens:   8000,
	})
	if err != nil {
		metrics.LLMCalls.WithLabelValues("structure_resume", "error").Inc()
		return Document{}, fmt.Errorf("structure resume: %w", err)
	}

	var doc Document
	if err := llm.UnmarshalResponse(raw, &doc); err != nil {
		metrics.LLMCalls.WithLabelValues("structure_resume", "parse_error").Inc()
		return Document{}, llm.NewGenerationError("structure resume", raw, err)
	}
	metrics.LLMCalls.WithLabelValues("structure_resume", "ok").Inc()
	return doc, nil
}
