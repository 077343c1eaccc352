package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutURL(t *testing.T) {
	prefixes := CheckoutPrefixes{
		Success: "https://market.local/checkout/success",
		Cancel:  "https://market.local/checkout/cancel",
		Pending: "https://market.local/checkout/pending",
	}

	testCases := []struct {
		name     string
		raw      string
		expected CheckoutResult
		wantErr  bool
	}{
		{
			name:     "success with reference",
			raw:      "https://market.local/checkout/success?external_reference=b-1&payment_id=99&status=approved",
			expected: CheckoutResult{Outcome: OutcomeSuccess, Reference: "b-1", PaymentID: "99"},
		},
		{
			name:     "cancel",
			raw:      "https://market.local/checkout/cancel?external_reference=b-2",
			expected: CheckoutResult{Outcome: OutcomeCancel, Reference: "b-2"},
		},
		{
			name:     "pending uses collection id",
			raw:      " https://market.local/checkout/pending?external_reference=b-3&collection_id=7 ",
			expected: CheckoutResult{Outcome: OutcomePending, Reference: "b-3", PaymentID: "7"},
		},
		{
			name:     "ordinary navigation",
			raw:      "https://www.mercadopago.com/checkout/v1/redirect?pref_id=1",
			expected: CheckoutResult{Outcome: OutcomeNone},
		},
		{
			name:    "malformed url",
			raw:     "https://market.local/%zz",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CheckoutURL(tc.raw, prefixes)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCheckoutURL_EmptyPrefixNeverMatches(t *testing.T) {
	got, err := CheckoutURL("https://anything", CheckoutPrefixes{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, got.Outcome)
}
