// Package utils holds small helpers shared by the model gateways and presenters.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a model reply contains no JSON value at all.
var ErrNoJSON = errors.New("no JSON found in response")

var (
	// ,] or ,}
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)

	// {'key': -> {"key":
	singleQuoteKeyRegex = regexp.MustCompile(`([{,]\s*)'(\w+)'(\s*:)`)

	// "a"\n"b" inside arrays of strings
	missingCommaStringsRegex = regexp.MustCompile(`(")\s*\n\s*(")`)

	// } {  or  }\n{  between array objects
	missingCommaObjectsRegex = regexp.MustCompile(`(})\s*\n?\s*({)`)
)

// ExtractAndParseJSON pulls the first JSON value out of a model reply and decodes it into T.
// Markdown fences and trailing prose are ignored. Common syntax slips (trailing commas,
// single-quoted keys, raw newlines inside strings, missing commas between array items)
// are repaired once before giving up.
func ExtractAndParseJSON[T any](response string) (T, error) {
	var result T

	cleaned := stripFences(response)
	if cleaned == "" {
		return result, ErrNoJSON
	}

	// A JSON string wrapping the payload.
	if strings.HasPrefix(cleaned, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(cleaned), &inner); err == nil && inner != cleaned {
			return ExtractAndParseJSON[T](inner)
		}
	}

	idx := strings.IndexAny(cleaned, "{[")
	if idx == -1 {
		return result, ErrNoJSON
	}

	body := cleaned[idx:]
	err := json.NewDecoder(strings.NewReader(body)).Decode(&result)
	if err == nil {
		return result, nil
	}

	repaired := repairJSON(body)
	if repaired != body {
		var second T
		if err2 := json.NewDecoder(strings.NewReader(repaired)).Decode(&second); err2 == nil {
			return second, nil
		}
	}
	return result, fmt.Errorf("parse JSON: %w", err)
}

func repairJSON(input string) string {
	out := escapeControlChars(input)
	out = missingCommaStringsRegex.ReplaceAllString(out, `$1, $2`)
	out = missingCommaObjectsRegex.ReplaceAllString(out, `$1, $2`)
	out = trailingCommaRegex.ReplaceAllString(out, `$1`)
	out = singleQuoteKeyRegex.ReplaceAllString(out, `$1"$2"$3`)
	return out
}

// escapeControlChars escapes raw control characters that appear inside string literals.
func escapeControlChars(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	inString, escaped := false, false
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case escaped:
			escaped = false
			b.WriteByte(c)
		case c == '\\' && inString:
			escaped = true
			b.WriteByte(c)
		case c == '"':
			inString = !inString
			b.WriteByte(c)
		case inString && c == '\n':
			b.WriteString(`\n`)
		case inString && c == '\r':
			b.WriteString(`\r`)
		case inString && c == '\t':
			b.WriteString(`\t`)
		case inString && c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func stripFences(response string) string {
	s := strings.TrimSpace(response)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// drop the language tag on the opening fence
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
