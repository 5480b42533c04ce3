package analyze

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean JSON unchanged",
			in:   `{"summary": "ok"}`,
			want: `{"summary": "ok"}`,
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  \n {\"a\": 1} \n ",
			want: `{"a": 1}`,
		},
		{
			name: "json fence stripped",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "plain fence stripped",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "leading and trailing prose sliced away",
			in:   "Here is the JSON you asked for:\n{\"a\": 1}\nHope that helps!",
			want: `{"a": 1}`,
		},
		{
			name: "fence plus prose",
			in:   "Sure!\n```json\n{\"a\": {\"b\": 2}}\n```\nDone.",
			want: `{"a": {"b": 2}}`,
		},
		{
			name: "no braces pass through unchanged",
			in:   "I cannot produce JSON for this request.",
			want: "I cannot produce JSON for this request.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	clean := `{"summary": "s", "key_points": ["a"], "pros": [], "cons": []}`
	once := Normalize(clean)
	twice := Normalize(once)
	if once != clean {
		t.Errorf("Normalize changed clean JSON: %q", once)
	}
	if twice != once {
		t.Errorf("Normalize not idempotent: %q vs %q", twice, once)
	}
}

func TestParse(t *testing.T) {
	obj, err := Parse("```json\n{\"summary\": \"s\"}\n```")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if obj["summary"] != "s" {
		t.Errorf("parsed object missing summary: %v", obj)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no braces at all", "there is nothing JSON-like here"},
		{"truncated object", `{"summary": "s", "key_points": [`},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatal("Parse succeeded on malformed input")
			}
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Errorf("error is %T, want *MalformedResponseError", err)
			}
			if !strings.Contains(err.Error(), "malformed generator response") {
				t.Errorf("unexpected error text: %v", err)
			}
		})
	}
}
