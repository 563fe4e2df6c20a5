package ai

import (
	"testing"
)

func TestCleanAndParse_ReasoningAndFences(t *testing.T) {
	type payload struct {
		A int `json:"a"`
	}

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "reasoning block then fenced json",
			input: "<think>reasoning</think>```json\n{\"a\":1}\n```",
			want:  1,
		},
		{
			name:  "reasoning only before payload",
			input: "<think>long deliberation about the articles</think>\n{\"a\": 2}",
			want:  2,
		},
		{
			name:  "nested reasoning blocks",
			input: "<think>outer <think>inner</think> more</think>{\"a\":3}",
			want:  3,
		},
		{
			name:  "unterminated reasoning block",
			input: "<think>never closed {\"a\":4}",
			want:  4,
		},
		{
			name:  "bare fence without language",
			input: "Here is the result:\n```\n{\"a\": 5}\n```\nDone.",
			want:  5,
		},
		{
			name:  "prose around naked json",
			input: "Sure! The answer is {\"a\": 6} as requested.",
			want:  6,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got payload
			if err := CleanAndParse(tc.input, &got); err != nil {
				t.Fatalf("CleanAndParse() error = %v", err)
			}
			if got.A != tc.want {
				t.Fatalf("CleanAndParse() a = %d, want %d", got.A, tc.want)
			}
		})
	}
}

func TestCleanAndParse_TruncatedJSON(t *testing.T) {
	type payload struct {
		A []int `json:"a"`
	}

	var got payload
	err := CleanAndParse(`{"a": [1, 2`, &got)
	if err != nil {
		// Best-effort repair may legitimately give up, but never panic.
		return
	}
	if len(got.A) != 2 || got.A[0] != 1 || got.A[1] != 2 {
		t.Fatalf("CleanAndParse() got = %+v, want a=[1,2]", got)
	}
}

func TestCleanAndParse_UnterminatedString(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var got payload
	if err := CleanAndParse(`{"name": "John`, &got); err != nil {
		t.Fatalf("CleanAndParse() error = %v", err)
	}
	if got.Name != "John" {
		t.Fatalf("CleanAndParse() name = %q, want %q", got.Name, "John")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object with trailing prose",
			input: `{"a": 1} trailing commentary`,
			want:  `{"a": 1}`,
		},
		{
			name:  "braces inside strings ignored",
			input: `{"quote": "صرح {المسؤول} بذلك"} rest`,
			want:  `{"quote": "صرح {المسؤول} بذلك"}`,
		},
		{
			name:  "truncated object kept to end",
			input: `{"a": [1, 2`,
			want:  `{"a": [1, 2`,
		},
		{
			name:  "no json at all",
			input: "nothing here",
			want:  "nothing here",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.input); got != tc.want {
				t.Fatalf("ExtractJSON(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  person
	}{
		{
			name:  "valid json object",
			input: `{"name":"John"}`,
			want:  person{Name: "John"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{name: 'John'}`,
			want:  person{Name: "John"},
		},
		{
			name:  "trailing comma",
			input: `{"name":"John",}`,
			want:  person{Name: "John"},
		},
		{
			name:  "missing endbracket",
			input: `{"name":"John`,
			want:  person{Name: "John"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{name: 'John'}"`,
			want:  person{Name: "John"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"name\": \"John\"\n}\n",
			want:  person{Name: "John"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got person
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.Name != tc.want.Name || got.Age != tc.want.Age {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type person struct {
		Name string `json:"name"`
	}

	var got person
	if err := UnmarshalFlexible("hello", &got); err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for unrecoverable input")
	}
}
