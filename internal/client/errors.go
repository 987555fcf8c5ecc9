package client

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a failed exchange.
type Kind int

const (
	// KindTransport is a network-level failure: the backend was never reached or the exchange broke.
	KindTransport Kind = iota
	// KindServer is a response with a non-success HTTP status.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by QueryClient.
// Message is the human-readable text for display; it is empty for transport
// failures, whose cause is kept in Err.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// errorBody is the best-effort shape of a failure response.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
}

// serverMessage picks "detail", then "message", when either is a non-empty
// string; otherwise it synthesizes "Request failed (<status>)".
func serverMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if s := nonEmptyString(eb.Detail); s != "" {
			return s
		}
		if s := nonEmptyString(eb.Message); s != "" {
			return s
		}
	}
	return fmt.Sprintf("Request failed (%d)", status)
}

func nonEmptyString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
