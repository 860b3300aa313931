package shared

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ListParams carries offset pagination for listing endpoints.
type ListParams struct {
	Skip  int
	Limit int
}

// NormalizeListParams clamps skip/limit into their allowed ranges:
// skip >= 0, limit within [1, 1000] with a default of 100.
func NormalizeListParams(skip, limit int) ListParams {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return ListParams{Skip: skip, Limit: limit}
}
