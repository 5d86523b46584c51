package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercase and stem",
			input:    "Tracking my Orders",
			expected: []string{"track", "order"},
		},
		{
			name:     "punctuation removed inside words",
			input:    "don't ship it!",
			expected: []string{"dont", "ship"},
		},
		{
			name:     "stopwords dropped",
			input:    "where is my order",
			expected: []string{"order"},
		},
		{
			name:     "urls stripped",
			input:    "see https://example.com/checkout for details",
			expected: []string{"see", "detail"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			input:    "   \t  ",
			expected: []string{},
		},
		{
			name:     "single letters dropped",
			input:    "a b c order",
			expected: []string{"order"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req.Equal(tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	req := require.New(t)

	input := "How much does the Laptop cost?!"
	first := Normalize(input)
	for i := 0; i < 10; i++ {
		req.Equal(first, Normalize(input))
	}
}
