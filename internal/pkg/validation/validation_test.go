package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@x.com"))
	assert.False(t, IsValidEmail("a@x"))
	assert.False(t, IsValidEmail("a b@x.com"))
	assert.False(t, IsValidEmail(""))
}

func TestMissingFields(t *testing.T) {
	body := map[string]any{"name": "Ann", "email": "  ", "role": nil}
	assert.Equal(t, []string{"email", "role", "password"}, MissingFields(body, "name", "email", "role", "password"))
	assert.Empty(t, MissingFields(body, "name"))
}
