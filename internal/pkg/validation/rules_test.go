package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailPattern(t *testing.T) {
	valid := []string{
		"volunteer@example.org",
		"first.last@example.co",
		"user+tag@sub.example.com",
	}
	for _, email := range valid {
		assert.True(t, CompiledPatterns.Email.MatchString(email), "expected %s to be valid", email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.org",
		"user@",
		"user@example",
		"User@Example.Org", // pattern is lowercase only
	}
	for _, email := range invalid {
		assert.False(t, CompiledPatterns.Email.MatchString(email), "expected %s to be invalid", email)
	}
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").WithMinLength(2).WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("h").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("this is too long").WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("").Validate(), "required by default")
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.True(t, NewStringValidation("volunteer@example.org").WithPattern(CompiledPatterns.Email).Validate())
	assert.False(t, NewStringValidation("nope").WithPattern(CompiledPatterns.Email).Validate())
}

func TestNumericValidation(t *testing.T) {
	assert.True(t, NewNumericValidation(5).WithMin(1).WithMax(10).Validate())
	assert.False(t, NewNumericValidation(0).WithMin(1).Validate())
	assert.False(t, NewNumericValidation(11).WithMax(10).Validate())
}
