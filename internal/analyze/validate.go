// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// Validate checks a parsed object against the mode's required-field
// contract and returns a *SchemaViolationError on the first violation found.
// Checking is deliberately shallow - presence and coarse type only - because
// stricter validation raises the false-rejection rate on otherwise usable
// generator output. The object is accepted as-is, never reshaped.
func Validate(obj map[string]any, mode types.Mode) error {
	switch mode {
	case types.ModeOverview:
		return validateOverview(obj)
	case types.ModeCompare:
		return validateCompare(obj)
	}
	return fmt.Errorf("unknown analysis mode %q", mode)
}

func validateOverview(obj map[string]any) error {
	if err := requireString(obj, "summary", ""); err != nil {
		return err
	}
	for _, field := range []string{"key_points", "pros", "cons"} {
		if err := requireList(obj, field, ""); err != nil {
			return err
		}
	}
	return nil
}

func validateCompare(obj map[string]any) error {
	if err := requireString(obj, "overview", ""); err != nil {
		return err
	}

	rawComparison, ok := obj["comparison"]
	if !ok {
		return &SchemaViolationError{Field: "comparison", Reason: "missing required field"}
	}
	comparison, ok := rawComparison.(map[string]any)
	if !ok {
		return &SchemaViolationError{Field: "comparison", Reason: "must be an object"}
	}

	for _, item := range []string{"item_a", "item_b"} {
		rawItem, ok := comparison[item]
		if !ok {
			return &SchemaViolationError{Field: "comparison." + item, Reason: "missing required field"}
		}
		itemObj, ok := rawItem.(map[string]any)
		if !ok {
			return &SchemaViolationError{Field: "comparison." + item, Reason: "must be an object"}
		}
		prefix := "comparison." + item + "."
		if err := requireString(itemObj, "summary", prefix); err != nil {
			return err
		}
		if err := requireList(itemObj, "strengths", prefix); err != nil {
			return err
		}
		if err := requireList(itemObj, "weaknesses", prefix); err != nil {
			return err
		}
	}

	for _, field := range []string{"key_differences", "use_case_recommendations"} {
		if err := requireList(obj, field, ""); err != nil {
			return err
		}
	}
	return nil
}

// requireString checks that obj[field] exists and is a scalar string.
// prefix carries the dotted path of enclosing objects for error reporting.
func requireString(obj map[string]any, field, prefix string) error {
	v, ok := obj[field]
	if !ok {
		return &SchemaViolationError{Field: prefix + field, Reason: "missing required field"}
	}
	if _, ok := v.(string); !ok {
		return &SchemaViolationError{Field: prefix + field, Reason: "must be a string"}
	}
	return nil
}

// requireList checks that obj[field] exists and is sequence-typed.
func requireList(obj map[string]any, field, prefix string) error {
	v, ok := obj[field]
	if !ok {
		return &SchemaViolationError{Field: prefix + field, Reason: "missing required field"}
	}
	if _, ok := v.([]any); !ok {
		return &SchemaViolationError{Field: prefix + field, Reason: "must be a list"}
	}
	return nil
}
