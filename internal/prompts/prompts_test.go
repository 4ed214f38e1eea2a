package prompts

import (
	"strings"
	"testing"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

var testRecord = candidate.Record{
	Position:   "Backend Engineer",
	TechStack:  "Go, PostgreSQL",
	Experience: "4",
	TechnicalQA: []candidate.TechnicalQA{
		{Question: "What is a goroutine?", Answer: "A lightweight thread managed by the runtime.", Score: "8/10"},
		{Question: "Explain MVCC.", Answer: strings.Repeat("detail ", 30), Score: "6/10"},
	},
}

func TestSystemInstructionEmbedded(t *testing.T) {
	instruction := SystemInstruction()
	if instruction == "" {
		t.Fatal("expected embedded system instruction")
	}
	for _, fragment := range []string{"TalentScout", "SCREEN IN", "SCREEN OUT"} {
		if !strings.Contains(instruction, fragment) {
			t.Fatalf("system instruction missing %q", fragment)
		}
	}
}

func TestFieldFollowUpPersonalisesEmail(t *testing.T) {
	followUp := FieldFollowUp("email", "John Doe")
	if !strings.Contains(followUp, "Thank you, John!") {
		t.Fatalf("expected first-name personalisation, got %q", followUp)
	}

	followUp = FieldFollowUp("email", "")
	if !strings.Contains(followUp, "Thank you!") {
		t.Fatalf("expected plain thanks without a name, got %q", followUp)
	}

	// Unknown fields still produce a usable ask.
	if got := FieldFollowUp("github", ""); !strings.Contains(got, "github") {
		t.Fatalf("unexpected generic follow-up: %q", got)
	}
}

func TestScreeningDecisionTruncatesAnswers(t *testing.T) {
	prompt := ScreeningDecision(&testRecord)

	if !strings.Contains(prompt, "Backend Engineer") {
		t.Fatalf("expected position in decision prompt")
	}
	if !strings.Contains(prompt, "Q2: Explain MVCC.") {
		t.Fatalf("expected second question in decision prompt")
	}

	// The long answer is replayed truncated.
	if strings.Contains(prompt, strings.Repeat("detail ", 30)) {
		t.Fatal("expected long answer to be truncated")
	}
	if !strings.Contains(prompt, "...") {
		t.Fatal("expected ellipsis after truncated answer")
	}
}

func TestConclusionBranchesOnDecision(t *testing.T) {
	in := Conclusion("Jane", "SCREEN IN", "Great work.")
	if !strings.Contains(in, "Congratulations, Jane") {
		t.Fatalf("expected screen-in framing, got %q", in)
	}

	// Substring match, case-insensitive.
	in = Conclusion("Jane", "screen in (borderline)", "Great work.")
	if !strings.Contains(in, "Congratulations, Jane") {
		t.Fatalf("expected screen-in framing for lowercase decision, got %q", in)
	}

	out := Conclusion("Jane", "SCREEN OUT", "Keep practicing.")
	if !strings.Contains(out, "Thank you, Jane.") || !strings.Contains(out, "Keep practicing.") {
		t.Fatalf("expected screen-out framing, got %q", out)
	}

	anon := Conclusion("", "SCREEN OUT", "Thanks.")
	if !strings.Contains(anon, "Thank you, there.") {
		t.Fatalf("expected placeholder name, got %q", anon)
	}
}

func TestFormatQuestion(t *testing.T) {
	got := FormatQuestion("What is a channel?", "Go", 2, 5)
	if !strings.Contains(got, "Question 2 of 5") || !strings.Contains(got, "(Go)") || !strings.Contains(got, "What is a channel?") {
		t.Fatalf("unexpected formatted question: %q", got)
	}
}

func TestInterviewSummary(t *testing.T) {
	withScore := InterviewSummary(5, 7.25, true)
	if !strings.Contains(withScore, "Questions answered: 5") {
		t.Fatalf("expected answered count, got %q", withScore)
	}
	if !strings.Contains(withScore, "Average score: 7.2/10") {
		t.Fatalf("expected one-decimal average, got %q", withScore)
	}

	withoutScore := InterviewSummary(5, 0, false)
	if strings.Contains(withoutScore, "Average score") {
		t.Fatalf("expected no average line without parseable scores, got %q", withoutScore)
	}
}
