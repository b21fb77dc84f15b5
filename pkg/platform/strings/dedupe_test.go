package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil slice", nil, nil},
		{"empty slice", []string{}, []string{}},
		{"trims whitespace", []string{"  foo  ", "bar  "}, []string{"foo", "bar"}},
		{"removes duplicates preserving order", []string{"foo", "bar", "foo", "baz", "bar"}, []string{"foo", "bar", "baz"}},
		{"removes empty strings", []string{"foo", "", "  ", "bar"}, []string{"foo", "bar"}},
		{"preserves case", []string{"Foo", "foo", "FOO"}, []string{"Foo", "foo", "FOO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
