package resumes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readypath/readypath/internal/shared"
)

type mockRepository struct {
	resumes map[int64]*Resume
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{resumes: make(map[int64]*Resume), nextID: 1}
}

func (m *mockRepository) Create(ctx context.Context, resume Resume) (Resume, error) {
	resume.ID = m.nextID
	m.nextID++
	now := time.Now()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	stored := resume
	m.resumes[resume.ID] = &stored
	return resume, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (Resume, error) {
	resume, ok := m.resumes[id]
	if !ok {
		return Resume{}, fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	return *resume, nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID uuid.UUID, params shared.ListParams, activeOnly bool) ([]Resume, error) {
	out := []Resume{}
	for _, resume := range m.resumes {
		if resume.UserID != userID {
			continue
		}
		if activeOnly && !resume.IsActive {
			continue
		}
		out = append(out, *resume)
	}
	return out, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, params UpdateResumeParams) (Resume, error) {
	resume, ok := m.resumes[id]
	if !ok {
		return Resume{}, fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	if params.Title != nil {
		resume.Title = *params.Title
	}
	if params.Summary != nil {
		resume.Summary = *params.Summary
	}
	if params.Skills != nil {
		resume.Skills = *params.Skills
	}
	if params.Languages != nil {
		resume.Languages = *params.Languages
	}
	if params.IsActive != nil {
		resume.IsActive = *params.IsActive
	}
	if params.IsPublic != nil {
		resume.IsPublic = *params.IsPublic
	}
	resume.UpdatedAt = time.Now()
	return *resume, nil
}

func (m *mockRepository) MarkAnalyzed(ctx context.Context, id int64, at time.Time) error {
	resume, ok := m.resumes[id]
	if !ok {
		return fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	resume.LastAnalyzed = &at
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.resumes[id]; !ok {
		return fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	delete(m.resumes, id)
	return nil
}

type recordingQueue struct {
	enqueued []int64
	err      error
}

func (q *recordingQueue) EnqueueResumeAnalysis(ctx context.Context, resumeID int64) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, resumeID)
	return nil
}

func TestCreateResume(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, nil)

	resume, err := svc.Create(context.Background(), CreateResumeParams{
		UserID: uuid.New(),
		Title:  "  Backend Engineer  ",
		Skills: []string{"go", "go", " sql "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", resume.Title)
	assert.True(t, resume.IsActive)
	assert.Equal(t, []string{"go", "sql"}, resume.SkillsList())
}

func TestCreateResumeValidation(t *testing.T) {
	svc := NewService(newMockRepository(), nil, nil)

	_, err := svc.Create(context.Background(), CreateResumeParams{UserID: uuid.New(), Title: "  "})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), CreateResumeParams{Title: "ok"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRequestAnalysisQueues(t *testing.T) {
	repo := newMockRepository()
	queue := &recordingQueue{}
	svc := NewService(repo, queue, nil)

	resume, err := svc.Create(context.Background(), CreateResumeParams{UserID: uuid.New(), Title: "CV"})
	require.NoError(t, err)

	queued, err := svc.RequestAnalysis(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.True(t, queued)
	assert.Equal(t, []int64{resume.ID}, queue.enqueued)
}

func TestRequestAnalysisSkipsFreshResults(t *testing.T) {
	repo := newMockRepository()
	queue := &recordingQueue{}
	svc := NewService(repo, queue, nil)

	resume, err := svc.Create(context.Background(), CreateResumeParams{UserID: uuid.New(), Title: "CV"})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAnalyzed(context.Background(), resume.ID, time.Now()))

	queued, err := svc.RequestAnalysis(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.False(t, queued, "fresh analysis must not requeue")
	assert.Empty(t, queue.enqueued)
}

func TestRequestAnalysisUnknownResume(t *testing.T) {
	svc := NewService(newMockRepository(), &recordingQueue{}, nil)

	_, err := svc.RequestAnalysis(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
