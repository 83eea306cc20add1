// Package alert extracts alerts from webhook payloads and prints them.
//
// Alerts are opaque: the receiver never interprets their contents. Each
// alert is kept as the raw JSON it arrived as, so key order and number
// formatting survive into the printed output.
package alert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload indicates the body is not a JSON object
	ErrMalformedPayload = errors.New("malformed alert payload")

	// ErrMissingAlerts indicates the payload object has no "alerts" field
	ErrMissingAlerts = errors.New(`payload has no "alerts" field`)

	// ErrAlertsNotList indicates "alerts" is present but is not a JSON array
	ErrAlertsNotList = errors.New(`"alerts" field is not a list`)
)

// Alert is a single element of a payload's "alerts" array. It can hold any
// JSON value; callers should not assume it is an object.
type Alert json.RawMessage

// Indent renders the alert with two-space indentation.
func (a Alert) Indent() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(a), "", "  "); err != nil {
		return "", fmt.Errorf("indent alert: %w", err)
	}
	return buf.String(), nil
}

// ExtractAlerts decodes body as a JSON object and returns the elements of
// its "alerts" array in order. Every other top-level field is ignored.
func ExtractAlerts(body []byte) ([]Alert, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("%w: payload is null", ErrMalformedPayload)
	}

	raw, ok := envelope["alerts"]
	if !ok {
		return nil, ErrMissingAlerts
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: got null", ErrAlertsNotList)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlertsNotList, err)
	}

	alerts := make([]Alert, len(elems))
	for i, e := range elems {
		alerts[i] = Alert(e)
	}
	return alerts, nil
}
