// internal/services/prospect_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Jane.Doe@Example.COM", "jane.doe@example.com"},
		{"  spaced@example.com  ", "spaced@example.com"},
		{"already@lower.io", "already@lower.io"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, normalizeEmail(tc.input))
	}
}

func TestNormalizeInstagramHandle(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"@JaneDoe", "janedoe"},
		{"janedoe", "janedoe"},
		{"  @Jane.Doe_1  ", "jane.doe_1"},
		{"@@double", "@double"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, normalizeInstagramHandle(tc.input))
	}
}
