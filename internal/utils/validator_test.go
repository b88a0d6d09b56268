// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordFixture struct {
	Password string `validate:"strong_password"`
}

func TestStrongPasswordValidator(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all character classes", "Str0ng!pass", true},
		{"too short", "S1!a", false},
		{"missing uppercase", "weak1pass!", false},
		{"missing number", "Weakpass!!", false},
		{"missing special", "Weakpass11", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(passwordFixture{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

type usernameFixture struct {
	Username string `validate:"username"`
}

func TestUsernameValidator(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"alphanumeric with underscore", "scout_jane42", true},
		{"too short", "ab", false},
		{"spaces rejected", "scout jane", false},
		{"punctuation rejected", "scout-jane", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(usernameFixture{Username: tt.username})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

type handleFixture struct {
	Handle string `validate:"instagram_handle"`
}

func TestInstagramHandleValidator(t *testing.T) {
	tests := []struct {
		name   string
		handle string
		valid  bool
	}{
		{"plain handle", "jane.doe_99", true},
		{"leading at sign stripped", "@jane.doe", true},
		{"empty is allowed", "", true},
		{"spaces rejected", "jane doe", false},
		{"too long", "a_very_long_handle_that_exceeds_thirty_chars", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(handleFixture{Handle: tt.handle})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetValidationErrors(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := ValidateStruct(form{Email: "not-an-email"})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 2)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "required", fields["name"])
}
