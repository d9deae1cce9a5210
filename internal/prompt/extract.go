package prompt

import (
	"regexp"
	"strings"

	"github.com/davidbz/forge/internal/domain"
)

var (
	fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\n?(.*?)```")
	htmlPattern  = regexp.MustCompile(`(?is)<!DOCTYPE.*</html>`)
)

// JSONBlock returns the first balanced brace-delimited block in raw model
// output, tolerating code fences and surrounding prose. Models routinely
// ignore "no markdown" instructions, so extraction must not assume clean
// output.
func JSONBlock(raw string) (string, error) {
	text := raw
	if match := fencePattern.FindStringSubmatch(raw); match != nil {
		text = match[1]
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &domain.ParseError{Reason: "no opening brace found"}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside string literals do not count.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", &domain.ParseError{Reason: "no balanced brace block found"}
}

// Code strips markdown fences and surrounding prose from generated file
// content. For HTML, a full document embedded in prose wins over fence
// handling.
func Code(raw, fileType string) string {
	if match := fencePattern.FindStringSubmatch(raw); match != nil {
		return strings.TrimSpace(match[1])
	}

	if strings.EqualFold(fileType, "html") {
		if doc := htmlPattern.FindString(raw); doc != "" {
			return doc
		}
	}

	return strings.TrimSpace(raw)
}
