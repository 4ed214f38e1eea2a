package prompts

import (
	"strconv"
	"strings"
)

// ParseLabelled scans free text for LABEL: value lines. Matching is
// case-insensitive and tolerant: a label matches anywhere in the line, the
// value is everything after the first colon, and the first matching line
// wins per label. Labels that never match are absent from the result.
func ParseLabelled(text string, labels ...string) map[string]string {
	result := make(map[string]string, len(labels))

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		for _, label := range labels {
			if _, seen := result[label]; seen {
				continue
			}
			if !strings.Contains(upper, strings.ToUpper(label)+":") {
				continue
			}
			_, value, found := strings.Cut(line, ":")
			if !found {
				continue
			}
			result[label] = strings.TrimSpace(value)
		}
	}

	return result
}

// minQuestionLength filters out list remnants that are too short to be real
// questions once numbering is stripped.
const minQuestionLength = 10

// ParseQuestions extracts question lines from a numbered-list reply. A line
// qualifies when it starts with a digit or a bullet and, after stripping the
// leading numbering, bullets and punctuation, more than minQuestionLength
// characters remain.
func ParseQuestions(text string) []string {
	var questions []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first := line[0]
		if !(first >= '0' && first <= '9') && first != '-' && first != '*' {
			continue
		}

		question := strings.TrimLeft(line, "0123456789.)-* \t")
		question = strings.TrimSpace(question)
		if len(question) > minQuestionLength {
			questions = append(questions, question)
		}
	}

	return questions
}

// ParseScore reads the numerator of a score given as "7/10" or as a bare
// number. Scores in any other shape report ok=false and are excluded from
// averages.
func ParseScore(raw string) (float64, bool) {
	numerator, _, _ := strings.Cut(raw, "/")
	value, err := strconv.ParseFloat(strings.TrimSpace(numerator), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
