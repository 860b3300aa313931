package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeListParams(t *testing.T) {
	cases := []struct {
		name        string
		skip, limit int
		expected    ListParams
	}{
		{"defaults", 0, 0, ListParams{Skip: 0, Limit: 100}},
		{"negative skip", -5, 10, ListParams{Skip: 0, Limit: 10}},
		{"negative limit", 0, -1, ListParams{Skip: 0, Limit: 100}},
		{"limit capped", 20, 5000, ListParams{Skip: 20, Limit: 1000}},
		{"limit floor", 0, 1, ListParams{Skip: 0, Limit: 1}},
		{"limit ceiling", 0, 1000, ListParams{Skip: 0, Limit: 1000}},
		{"passthrough", 40, 25, ListParams{Skip: 40, Limit: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeListParams(tc.skip, tc.limit))
		})
	}
}
