package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

const (
	reasoningOpen  = "<think>"
	reasoningClose = "</think>"
)

// GenerateSchema creates a JSON Schema from the given Go type.
// It uses reflection to inspect the type structure and generates
// a schema suitable for use with AI structured output.
func GenerateSchema(value any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	v := reflect.New(t).Interface()
	return reflector.Reflect(v)
}

// StripReasoning removes <think> reasoning blocks emitted by reasoning
// models. Everything up to the last closing tag is dropped; unterminated
// or nested opening tags left over after that are removed so that a JSON
// payload following them stays reachable.
func StripReasoning(response string) string {
	if idx := strings.LastIndex(response, reasoningClose); idx >= 0 {
		response = response[idx+len(reasoningClose):]
	}
	response = strings.ReplaceAll(response, reasoningOpen, "")
	return strings.TrimSpace(response)
}

// StripCodeFences unwraps a markdown fenced code block. Both ```json and
// bare ``` fences are handled; an unterminated fence keeps everything
// after the opening marker.
func StripCodeFences(response string) string {
	if !strings.Contains(response, "```") {
		return strings.TrimSpace(response)
	}

	parts := strings.Split(response, "```")
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if rest, ok := strings.CutPrefix(trimmed, "json"); ok {
			return strings.TrimSpace(rest)
		}
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return trimmed
		}
	}
	return strings.TrimSpace(response)
}

// ExtractJSON cuts the first JSON object or array out of free text.
// The scan respects string literals and escapes; when the input is
// truncated before the closing bracket the remainder is returned as-is
// for the repair pass to balance.
func ExtractJSON(response string) string {
	start := strings.IndexAny(response, "{[")
	if start < 0 {
		return strings.TrimSpace(response)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				depth++
			}
		case '}', ']':
			if !inString {
				depth--
				if depth == 0 {
					return response[start : i+1]
				}
			}
		}
	}
	return response[start:]
}

// CleanResponse normalizes a raw model response down to its JSON payload:
// reasoning blocks are stripped, code fences unwrapped, and surrounding
// prose removed. The result may still be malformed or truncated; pair it
// with UnmarshalFlexible.
func CleanResponse(response string) string {
	response = StripReasoning(response)
	response = StripCodeFences(response)
	return ExtractJSON(response)
}

// CleanAndParse cleans a raw model response and unmarshals the remaining
// JSON into out, repairing malformed or truncated output when possible.
func CleanAndParse(response string, out any) error {
	return UnmarshalFlexible(CleanResponse(response), out)
}

func stripDuplicateLeadingBrace(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		rest := strings.TrimSpace(s[1:])
		if strings.HasPrefix(rest, "{") {
			return rest
		}
	}
	return s
}

// UnmarshalFlexible attempts to unmarshal JSON into the target with multiple fallback strategies.
// It first tries standard JSON unmarshaling, then handles double-encoded JSON strings,
// and finally attempts to repair malformed JSON before parsing.
//
// This is useful for parsing AI-generated JSON which may be malformed or wrapped in strings.
//
// Example:
//
//	var result MyStruct
//	// All of these inputs would work:
//	UnmarshalFlexible(`{"name": "test"}`, &result)           // standard JSON
//	UnmarshalFlexible(`"{\"name\": \"test\"}"`, &result)     // double-encoded
//	UnmarshalFlexible(`{name: "test"}`, &result)             // malformed (repaired)
func UnmarshalFlexible(input string, out any) error {
	input = strings.TrimSpace(input)

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	var asString string
	if err := json.Unmarshal([]byte(input), &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if err := json.Unmarshal([]byte(asString), out); err == nil {
			return nil
		}
		input = asString
	}

	input = stripDuplicateLeadingBrace(input)
	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("json repair failed: %w (input: %s)", err, input)
	}

	if err := json.Unmarshal([]byte(repaired), out); err == nil {
		return nil
	}

	return fmt.Errorf(
		"unmarshal failed after repair: input=%s repaired=%s",
		input, repaired,
	)
}
