package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		name     string
		first    string
		last     string
		expected string
	}{
		{"both", "Ada", "Lovelace", "Ada Lovelace"},
		{"first only", "Ada", "", "Ada"},
		{"last only", "", "Lovelace", "Lovelace"},
		{"neither", "", "", ""},
		{"padded", "  Ada ", " Lovelace  ", "Ada Lovelace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := User{FirstName: tc.first, LastName: tc.last}
			assert.Equal(t, tc.expected, u.FullName())
		})
	}
}

func TestDisplayName(t *testing.T) {
	named := User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	assert.Equal(t, "Ada Lovelace", named.DisplayName())

	anonymous := User{Email: "ada@example.com"}
	assert.Equal(t, "ada", anonymous.DisplayName())

	weird := User{Email: "@example.com"}
	assert.Equal(t, "@example.com", weird.DisplayName())
}

func TestInitials(t *testing.T) {
	named := User{FirstName: "ada", LastName: "lovelace"}
	assert.Equal(t, "AL", named.Initials())

	firstOnly := User{FirstName: "ada"}
	assert.Equal(t, "A", firstOnly.Initials())

	emailFallback := User{Email: "grace@example.com"}
	assert.Equal(t, "G", emailFallback.Initials())

	empty := User{}
	assert.Equal(t, "", empty.Initials())
}
