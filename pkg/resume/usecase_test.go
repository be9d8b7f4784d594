package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Akm1923/FutureProof-AI/pkg/extract"
	"github.com/Akm1923/FutureProof-AI/pkg/llm"
)

type fakeChat struct {
	reply string
	err   error
	last  llm.Request
}

func (f *fakeChat) Complete(_ context.Context, req llm.Request) (string, error) {
	f.last = req
	return f.reply, f.err
}

type memRepo struct {
	records map[uuid.UUID]Record
	fail    error
}

func newMemRepo() *memRepo { return &memRepo{records: map[uuid.UUID]Record{}} }

func (m *memRepo) Create(_ context.Context, rec Record) error {
	if m.fail != nil {
		return m.fail
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *memRepo) Get(_ context.Context, id uuid.UUID) (Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *memRepo) List(context.Context, int, int) ([]Record, error) { return nil, nil }

func (m *memRepo) ListByOwner(context.Context, string, int, int) ([]Record, error) { return nil, nil }

func (m *memRepo) LatestByOwner(_ context.Context, ownerID string) (Record, error) {
	var latest Record
	found := false
	for _, rec := range m.records {
		if rec.OwnerID != ownerID {
			continue
		}
		if !found || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
			found = true
		}
	}
	if !found {
		return Record{}, ErrNotFound
	}
	return latest, nil
}

func (m *memRepo) UpdateData(_ context.Context, id uuid.UUID, data Document) error {
	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Data = data
	m.records[id] = rec
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

const fencedReply = "Here is the structured resume:\n```json\n" +
	`{"contact": {"name": "John Doe", "email": "john.doe@example.com"},
	  "skills": {"technical": ["Python", "React"]}}` +
	"\n```"

func newParser(chat *fakeChat, repo Repository) ParserUseCase {
	// nil OCR engine and garbage bytes force the fallback extraction tier,
	// keeping the test deterministic.
	return NewParserService(extract.New(nil, zap.NewNop()), chat, repo, zap.NewNop())
}

func TestParseAndStore_FencedResponse(t *testing.T) {
	chat := &fakeChat{reply: fencedReply}
	repo := newMemRepo()
	svc := newParser(chat, repo)

	res, err := svc.ParseAndStore(context.Background(), "cv.png", []byte("junk"), "user-1")
	require.NoError(t, err)

	assert.Equal(t, extract.SourceFallback, res.Source)
	assert.Equal(t, "user-1", res.Record.OwnerID)
	assert.Equal(t, "John Doe", res.Record.Data.Contact.Name)
	assert.Equal(t, []string{"Python", "React"}, res.Record.Data.Skills.Technical)

	stored, err := repo.Get(context.Background(), res.Record.ID)
	require.NoError(t, err)
	// Missing fields come back normalized, not null.
	assert.NotNil(t, stored.Data.Experience)
	assert.NotNil(t, stored.Data.Certifications)
	assert.Empty(t, stored.Data.Education)

	// Extraction-style structuring runs at low temperature.
	assert.InDelta(t, 0.1, chat.last.Temperature, 0.001)
	assert.False(t, chat.last.JSONOnly)
}

func TestParseAndStore_UnparseableReplyFails(t *testing.T) {
	chat := &fakeChat{reply: "sorry, no JSON from me"}
	repo := newMemRepo()
	svc := newParser(chat, repo)

	_, err := svc.ParseAndStore(context.Background(), "cv.pdf", []byte("junk"), "")
	require.Error(t, err)

	var genErr *llm.GenerationError
	assert.ErrorAs(t, err, &genErr)
	assert.Empty(t, repo.records)
}

func TestParseAndStore_StorageFailureSurfaces(t *testing.T) {
	chat := &fakeChat{reply: `{"contact": {"name": "Jane"}}`}
	repo := newMemRepo()
	repo.fail = errors.New("connection refused")
	svc := newParser(chat, repo)

	_, err := svc.ParseAndStore(context.Background(), "cv.pdf", []byte("junk"), "user-1")
	assert.ErrorContains(t, err, "store resume")
}
