package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"patient@example.com", true},
		{"first.last+tag@clinic.org", true},
		{"", false},
		{"not-an-email", false},
		{"Name <name@example.com>", false},
		{strings.Repeat("a", 250) + "@x.io", false},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if tt.ok {
			assert.NoError(t, err, tt.email)
		} else {
			assert.Error(t, err, tt.email)
		}
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Demo Patient"))
	assert.NoError(t, ValidateName(strings.Repeat("é", 100)))
	assert.ErrorIs(t, ValidateName("   "), ErrNameRequired)
	assert.ErrorIs(t, ValidateName(strings.Repeat("n", 101)), ErrNameTooLong)
	assert.EqualError(t, ValidateName(""), "Name is required")
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Patient123!"))
	assert.Error(t, ValidatePassword(""))
	assert.NoError(t, ValidatePassword(strings.Repeat("p", 72)))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 73)))
}

type loginBody struct {
	Email    string   `validate:"required"`
	Password string   `validate:"required"`
	Value    *float64 `validate:"omitempty,min=0"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&loginBody{Email: "a@b.co", Password: "x"}))

	err := Struct(&loginBody{Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrMissingFields)

	negative := -1.0
	err = Struct(&loginBody{Email: "a@b.co", Password: "x", Value: &negative})
	assert.EqualError(t, err, "invalid value")
}
