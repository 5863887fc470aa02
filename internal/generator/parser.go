package generator

import (
	"encoding/json"
	"regexp"
	"strings"
)

// listMarker matches numbered-list and bullet prefixes like "1.", "2)", "-", "*"
var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*•]\s+)`)

// ParseQuestions extracts candidate question strings from raw LLM output.
// It is deliberately tolerant: a JSON array is preferred, otherwise the text
// is split line by line with list markers stripped. Lines failing validation
// (empty, too long) are dropped, not errored.
func ParseQuestions(raw string, maxLen int) []string {
	raw = stripCodeFences(raw)

	if questions := parseJSONList(raw, maxLen); len(questions) > 0 {
		return questions
	}

	return parseLines(raw, maxLen)
}

// parseJSONList looks for a JSON array of strings anywhere in the text,
// matching how the model is asked to respond
func parseJSONList(raw string, maxLen int) []string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil
	}

	var items []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil
	}

	var questions []string
	for _, item := range items {
		if q, ok := validQuestion(item, maxLen); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// parseLines splits free-form text into one question per line
func parseLines(raw string, maxLen int) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = listMarker.ReplaceAllString(line, "")
		if q, ok := validQuestion(line, maxLen); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// validQuestion trims a candidate string and checks it against the
// acceptance rules: non-empty, contains letters, below the length cap
func validQuestion(s string, maxLen int) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)

	if s == "" || len(s) > maxLen {
		return "", false
	}
	if !strings.ContainsFunc(s, func(r rune) bool {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
	}) {
		return "", false
	}
	return s, true
}

// stripCodeFences removes surrounding markdown code fences if present
func stripCodeFences(raw string) string {
	clean := strings.TrimSpace(raw)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
