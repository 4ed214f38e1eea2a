package candidate

import (
	"strings"
	"unicode"
)

// StatusScreened is assigned to records of candidates who finished the full
// screening conversation.
const StatusScreened = "screened"

// TechnicalQA is one answered technical question. Entries are created when an
// answer is evaluated and never mutated afterwards.
type TechnicalQA struct {
	Technology string `json:"technology"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Evaluation string `json:"evaluation,omitempty"`
	Score      string `json:"score,omitempty"`
}

// Record is the persisted artifact of one screening session.
type Record struct {
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Experience         string        `json:"experience"`
	Position           string        `json:"position"`
	Location           string        `json:"location"`
	TechStack          string        `json:"techStack"`
	TechnicalQA        []TechnicalQA `json:"technicalQA"`
	Status             string        `json:"status"`
	SubmissionTime     string        `json:"submissionTime,omitempty"`
	ScreeningDecision  string        `json:"screeningDecision,omitempty"`
	ScreeningReasoning string        `json:"screeningReasoning,omitempty"`
}

// Complete reports whether every required field has been collected. A record
// must be complete before it is handed to the store.
func (r *Record) Complete() bool {
	required := []string{
		r.Name, r.Email, r.Phone, r.Experience,
		r.Position, r.Location, r.TechStack,
	}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// Slug returns a filesystem-safe version of the candidate name used in
// persisted filenames. Unknown or empty names produce "unknown".
func (r *Record) Slug() string {
	name := strings.ToLower(strings.TrimSpace(r.Name))
	if name == "" {
		return "unknown"
	}

	var b strings.Builder
	for _, c := range name {
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_':
			b.WriteRune(c)
		case unicode.IsSpace(c):
			b.WriteRune('_')
		}
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "unknown"
	}
	return slug
}
