// Package parse turns loosely formatted strings from the screens into structured values.
package parse

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned for checkout URLs that do not parse.
var ErrInvalidURL = errors.New("parse: invalid checkout url")

// Outcome is what a navigation inside the checkout browser view means.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeCancel  Outcome = "cancel"
	OutcomePending Outcome = "pending"
)

// CheckoutPrefixes are the return URLs handed to the payment page. Empty prefixes never match.
type CheckoutPrefixes struct {
	Success string
	Cancel  string
	Pending string
}

// CheckoutResult is a matched checkout navigation.
type CheckoutResult struct {
	Outcome   Outcome
	Reference string
	PaymentID string
}

// CheckoutURL classifies a URL the checkout view navigated to by prefix. URLs that match no
// prefix are ordinary page navigations and yield OutcomeNone.
func CheckoutURL(raw string, p CheckoutPrefixes) (CheckoutResult, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("%w %q: %v", ErrInvalidURL, raw, err)
	}

	var outcome Outcome
	switch {
	case hasPrefix(raw, p.Success):
		outcome = OutcomeSuccess
	case hasPrefix(raw, p.Cancel):
		outcome = OutcomeCancel
	case hasPrefix(raw, p.Pending):
		outcome = OutcomePending
	default:
		return CheckoutResult{Outcome: OutcomeNone}, nil
	}

	q := u.Query()
	return CheckoutResult{
		Outcome:   outcome,
		Reference: q.Get("external_reference"),
		PaymentID: firstNonEmpty(q.Get("payment_id"), q.Get("collection_id")),
	}, nil
}

func hasPrefix(s, prefix string) bool {
	return prefix != "" && strings.HasPrefix(s, prefix)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
