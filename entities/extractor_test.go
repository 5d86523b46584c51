package entities

import (
	"testing"

	"github.com/stretchr/testify/require"

	"support-bot/domain"
)

func TestExtract(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		name     string
		input    string
		expected domain.Entities
	}{
		{
			name:  "canonical order number",
			input: "track my order ORD-2024-001 please",
			expected: domain.Entities{
				domain.EntityOrderNumber: "ORD-2024-001",
			},
		},
		{
			name:  "lowercase order number is canonicalized",
			input: "what about ord-2024-042",
			expected: domain.Entities{
				domain.EntityOrderNumber: "ORD-2024-042",
			},
		},
		{
			name:  "loose order forms",
			input: "the reference is order_98765",
			expected: domain.Entities{
				domain.EntityOrderNumber: "ORDER_98765",
			},
		},
		{
			name:  "email",
			input: "reach me at jane.doe+shop@example.co.uk thanks",
			expected: domain.Entities{
				domain.EntityEmail: "jane.doe+shop@example.co.uk",
			},
		},
		{
			name:  "phone",
			input: "call 555-123-4567 after 5pm",
			expected: domain.Entities{
				domain.EntityPhone: "555-123-4567",
			},
		},
		{
			name:  "multiple types in one utterance",
			input: "ORD-2024-001, email bob@shop.io, phone 5551234567",
			expected: domain.Entities{
				domain.EntityOrderNumber: "ORD-2024-001",
				domain.EntityEmail:       "bob@shop.io",
				domain.EntityPhone:       "5551234567",
			},
		},
		{
			name:     "nothing to extract",
			input:    "hello, how are you?",
			expected: domain.Entities{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req.Equal(tc.expected, Extract(tc.input))
		})
	}
}

func TestExtract_FirstMatchPerTypeWins(t *testing.T) {
	req := require.New(t)

	got := Extract("ORD-2024-001 and also ORD-2024-002")
	req.Equal("ORD-2024-001", got[domain.EntityOrderNumber])
}
