package scores

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{100, "A+"},
		{98, "A+"},
		{97, "A+"},
		{95, "A"},
		{93, "A"},
		{92.5, "A-"},
		{90, "A-"},
		{88, "B+"},
		{85, "B"},
		{81, "B-"},
		{78, "C+"},
		{75, "C"},
		{71, "C-"},
		{68, "D+"},
		{64, "D"},
		{60, "D-"},
		{59.9, "F"},
		{30, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, GradeFor(tc.score), "score %.1f", tc.score)
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		score float64
		level string
	}{
		{100, "Excellent"},
		{85, "Excellent"},
		{80, "Excellent"},
		{79.9, "Good"},
		{75, "Good"},
		{65, "Good"},
		{60, "Fair"},
		{50, "Fair"},
		{49.9, "Poor"},
		{30, "Poor"},
		{0, "Poor"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelFor(tc.score), "score %.1f", tc.score)
	}
}

func TestScoreGradeAndLevel(t *testing.T) {
	s := Score{OverallScore: 85}
	assert.Equal(t, "B", s.Grade())
	assert.Equal(t, "Excellent", s.Level())
}

func TestScoreDetailCodecs(t *testing.T) {
	s := Score{}
	s.SetSkillMatchesList([]string{"go", "sql", "go", " "})
	assert.Equal(t, []string{"go", "sql"}, s.SkillMatchesList())

	s.SetSkillGapsList(nil)
	assert.Empty(t, s.SkillGapsList())

	s.SetDetailsMap(map[string]any{"model": "v1"})
	assert.Equal(t, "v1", s.DetailsMap()["model"])

	malformed := Score{SkillMatches: "oops", AnalysisDetails: "oops"}
	assert.Empty(t, malformed.SkillMatchesList())
	assert.Empty(t, malformed.DetailsMap())
}
