// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import "fmt"

// MalformedResponseError reports generator output that could not be reduced
// to parseable JSON, even after normalization. Per prd003-analysis R3.4.
type MalformedResponseError struct {
	// Err is the underlying JSON parse error.
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generator response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaViolationError reports a parsed object that is missing a required
// field or carries one with the wrong coarse type. Distinct from a parse
// error: the text was valid JSON but the wrong shape.
type SchemaViolationError struct {
	// Field names the first offending field, in dotted path form for
	// nested fields (e.g. "comparison.item_a.strengths").
	Field string

	// Reason describes the violation in the form embedded into the
	// correction prompt.
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation at %q: %s", e.Field, e.Reason)
}

// UpstreamError reports a generator transport failure. Transport failures
// are never retried by the correction loop; they escalate immediately.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generator call failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
