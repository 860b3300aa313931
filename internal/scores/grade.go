package scores

// Letter grades and readiness levels derived from the overall score on a
// 0-100 scale. Thresholds are inclusive lower bounds.

type gradeBand struct {
	min   float64
	grade string
}

var gradeBands = []gradeBand{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// GradeFor maps an overall score to a letter grade. Anything below 60 is F.
func GradeFor(score float64) string {
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade
		}
	}
	return "F"
}

// LevelFor maps an overall score to a readiness level.
func LevelFor(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}
