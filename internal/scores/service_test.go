package scores

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
	scores map[int64]*Score
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{scores: make(map[int64]*Score), nextID: 1}
}

func (m *mockRepository) Create(ctx context.Context, score Score) (Score, error) {
	score.ID = m.nextID
	m.nextID++
	now := time.Now()
	score.CreatedAt = now
	score.UpdatedAt = now
	stored := score
	m.scores[score.ID] = &stored
	return score, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (Score, error) {
	score, ok := m.scores[id]
	if !ok {
		return Score{}, fmt.Errorf("%w: score %d", shared.ErrNotFound, id)
	}
	return *score, nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID uuid.UUID, params shared.ListParams) ([]Score, error) {
	out := []Score{}
	for _, score := range m.scores {
		if score.UserID == userID && score.IsActive {
			out = append(out, *score)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByResume(ctx context.Context, resumeID int64, params shared.ListParams) ([]Score, error) {
	out := []Score{}
	for _, score := range m.scores {
		if score.ResumeID == resumeID && score.IsActive {
			out = append(out, *score)
		}
	}
	return out, nil
}

func (m *mockRepository) LatestForResume(ctx context.Context, resumeID int64) (Score, error) {
	var latest *Score
	for _, score := range m.scores {
		if score.ResumeID != resumeID || !score.IsActive {
			continue
		}
		if latest == nil || score.CreatedAt.After(latest.CreatedAt) {
			latest = score
		}
	}
	if latest == nil {
		return Score{}, fmt.Errorf("%w: no scores for resume %d", shared.ErrNotFound, resumeID)
	}
	return *latest, nil
}

func (m *mockRepository) Deactivate(ctx context.Context, id int64) error {
	score, ok := m.scores[id]
	if !ok {
		return fmt.Errorf("%w: score %d", shared.ErrNotFound, id)
	}
	score.IsActive = false
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.scores[id]; !ok {
		return fmt.Errorf("%w: score %d", shared.ErrNotFound, id)
	}
	delete(m.scores, id)
	return nil
}

func TestCreateScore(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)

	score, err := svc.Create(context.Background(), CreateScoreParams{
		UserID:       uuid.New(),
		ResumeID:     1,
		AnalysisType: " general ",
		OverallScore: 85,
		SkillMatches: []string{"go", "go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "general", score.AnalysisType)
	assert.True(t, score.IsActive)
	assert.NotNil(t, score.AnalysisDate, "analysis date defaults to now")
	assert.Equal(t, []string{"go"}, score.SkillMatchesList())
	assert.Equal(t, "B", score.Grade())
}

func TestCreateScoreValidation(t *testing.T) {
	svc := NewService(newMockRepository(), nil)
	base := CreateScoreParams{UserID: uuid.New(), ResumeID: 1, AnalysisType: "general"}

	missingUser := base
	missingUser.UserID = uuid.Nil
	_, err := svc.Create(context.Background(), missingUser)
	assert.ErrorIs(t, err, shared.ErrValidation)

	missingType := base
	missingType.AnalysisType = "  "
	_, err = svc.Create(context.Background(), missingType)
	assert.ErrorIs(t, err, shared.ErrValidation)

	outOfRange := base
	outOfRange.OverallScore = 120
	_, err = svc.Create(context.Background(), outOfRange)
	assert.ErrorIs(t, err, shared.ErrValidation)

	negative := base
	negative.SkillScore = -1
	_, err = svc.Create(context.Background(), negative)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeactivateHidesFromListings(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := uuid.New()

	score, err := svc.Create(context.Background(), CreateScoreParams{
		UserID: userID, ResumeID: 1, AnalysisType: "general", OverallScore: 70,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), score.ID))

	list, err := svc.ListByUser(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Latest(context.Background(), 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
