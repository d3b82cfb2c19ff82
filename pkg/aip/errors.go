package aip

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Validation rule identifiers carried by ValidationError.
const (
	RuleRequired = "missing-required-field"
	RuleRange    = "out-of-range"
	RulePattern  = "pattern-mismatch"
	RuleEnum     = "enum-violation"
)

// ValidationError reports a structural constraint violation found at
// construction time, before any network traffic.
type ValidationError struct {
	Field string
	Rule  string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q (%s): %s", e.Field, e.Rule, e.Msg)
}

func requiredErr(field string) error {
	return &ValidationError{Field: field, Rule: RuleRequired, Msg: "is required"}
}

func rangeErr(field, msg string) error {
	return &ValidationError{Field: field, Rule: RuleRange, Msg: msg}
}

func patternErr(field, msg string) error {
	return &ValidationError{Field: field, Rule: RulePattern, Msg: msg}
}

func enumErr(field string, allowed []string) error {
	return &ValidationError{
		Field: field,
		Rule:  RuleEnum,
		Msg:   "must be one of: " + strings.Join(allowed, ", "),
	}
}

// ClientError is a well-formed non-2xx registry response. It carries the
// server's message plus the optional machine code and structured details
// from the error body.
type ClientError struct {
	StatusCode int
	Message    string
	Code       string
	Details    any
}

func (e *ClientError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("registry error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("registry error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a ClientError for a missing record.
func IsNotFound(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.StatusCode == http.StatusNotFound
}

// TransportError is a connection failure, a timeout that survived the
// retry budget, or a response body that could not be parsed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SafetyLimitError means SearchAll accumulated more results than the
// hard ceiling allows and stopped issuing requests.
type SafetyLimitError struct {
	Accumulated int
	Limit       int
}

func (e *SafetyLimitError) Error() string {
	return fmt.Sprintf("too many results (%d accumulated, limit %d): refine the search", e.Accumulated, e.Limit)
}
