// Package resume extracts plain text and skill keywords from uploaded
// resume files. Extraction failures never abort the generation pipeline:
// a resume that cannot be read yields empty text and no skills.
package resume

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"interviewgen/internal/logging"
	"interviewgen/pkg/utils"
)

// SkillExtractor optionally augments keyword matching with LLM-assisted
// skill extraction. Best-effort; errors are ignored by the extractor.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, resumeText string) ([]string, error)
}

// Extractor turns raw resume bytes into text and a skill list
type Extractor struct {
	vocabulary []string
	ai         SkillExtractor
	logger     logging.Logger
}

// NewExtractor creates an extractor using the built-in skills vocabulary.
// ai may be nil to disable LLM-assisted skill extraction.
func NewExtractor(ai SkillExtractor) *Extractor {
	return &Extractor{
		vocabulary: skillsVocabulary(),
		ai:         ai,
		logger:     logging.GetGlobalLogger(),
	}
}

// Extract parses a PDF resume and returns its text and matched skills.
// Any failure yields ("", nil); the error is logged, never returned.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, []string) {
	text, err := extractPDFText(data)
	if err != nil {
		e.logger.Warn("Resume text extraction failed", map[string]interface{}{
			"error": err.Error(),
			"bytes": len(data),
		})
		return "", nil
	}

	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	skills := e.matchSkills(text)

	if e.ai != nil {
		aiSkills, err := e.ai.ExtractSkills(ctx, text)
		if err != nil {
			e.logger.Warn("AI skill extraction failed, using keyword matches only", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			skills = mergeSkills(skills, aiSkills)
		}
	}

	return text, skills
}

// matchSkills runs a case-insensitive word-boundary match of the vocabulary
// against the resume text
func (e *Extractor) matchSkills(text string) []string {
	lower := strings.ToLower(text)

	var matched []string
	for _, skill := range e.vocabulary {
		if containsWord(lower, strings.ToLower(skill)) {
			matched = append(matched, skill)
		}
	}
	return matched
}

// containsWord reports whether needle occurs in haystack delimited by
// non-alphanumeric characters on both sides
func containsWord(haystack, needle string) bool {
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx == 0 || !isWordChar(haystack[idx-1])
		end := idx + len(needle)
		after := end == len(haystack) || !isWordChar(haystack[end])
		if before && after {
			return true
		}
		start = idx + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// mergeSkills combines two skill lists, deduplicating case-insensitively
// while preserving first-seen order
func mergeSkills(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var merged []string
	for _, list := range [][]string{a, b} {
		for _, skill := range list {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			key := strings.ToLower(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, skill)
		}
	}
	return merged
}

// extractPDFText pulls plain text out of PDF bytes. The pdf library panics
// on some malformed files, so the recover keeps corrupt uploads inside the
// extraction boundary.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = utils.NewExtractionError(fmt.Sprintf("malformed PDF: %v", r))
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(pageText)
	}

	return builder.String(), nil
}
