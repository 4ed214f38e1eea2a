// Package prompts renders the text sent to the completion service and parses
// the reply shapes those prompts ask for. The format directives embedded in
// the templates and the parsers in parse.go must agree on label spelling;
// they are kept in one package for that reason.
package prompts

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

//go:embed system_instruction.md
var systemInstruction string

// SystemInstruction returns the instruction attached to every conversation
// with the completion service.
func SystemInstruction() string {
	return strings.TrimSpace(systemInstruction)
}

// Greeting is the one-shot instruction that produces the opening message.
func Greeting() string {
	return `Greet the candidate warmly and introduce yourself as TalentScout's Hiring Assistant.
Briefly explain that you'll be conducting an initial screening by:
1. Gathering some basic information
2. Asking a few technical questions based on their skills

Keep it brief, professional, and welcoming. Then ask for their full name.`
}

// GreetingFallback is shown when the greeting call to the provider fails.
func GreetingFallback() string {
	return `Hello! I'm TalentScout's Hiring Assistant. I'll walk you through a short initial screening: first a few basic details, then some technical questions based on your skills.

Let's get started - what is your full name?`
}

// FieldFollowUp returns the canned follow-up asked after a field was
// collected successfully. name is the candidate name when already known; its
// first word personalises the email follow-up.
func FieldFollowUp(field, name string) string {
	switch field {
	case "email":
		greeting := "Thank you"
		if first := firstWord(name); first != "" {
			greeting += ", " + first
		}
		return greeting + "! Could you please provide your email address?"
	case "phone":
		return "Great! What's the best phone number to reach you?"
	case "experience":
		return "Excellent! How many years of professional experience do you have in the tech industry?"
	case "position":
		return "Thank you! What position(s) are you interested in applying for?"
	case "location":
		return "Perfect! What is your current location (city/region)?"
	case "tech_stack":
		return "Now, please tell me about your tech stack. What programming languages, frameworks, databases, and tools are you proficient in?"
	default:
		return fmt.Sprintf("Please provide your %s.", field)
	}
}

// DifficultyFor maps years of experience to the question difficulty tier
// embedded in the generation prompt.
func DifficultyFor(years float64) string {
	switch {
	case years < 2:
		return "junior-level (basic concepts and fundamentals)"
	case years > 5:
		return "senior-level (advanced concepts, architecture, best practices)"
	default:
		return "intermediate"
	}
}

// QuestionGeneration asks the provider for an exact count of numbered
// technical questions scaled to the declared stack and experience. The
// numbered-list directive is what ParseQuestions relies on.
func QuestionGeneration(techStack string, years float64, count int) string {
	return fmt.Sprintf(`Based on the candidate's tech stack: %q and %g years of experience, generate exactly %d technical interview questions.

Requirements:
1. Questions should be %s
2. Cover different technologies mentioned in their tech stack
3. Questions should be practical and assess real-world knowledge
4. Include a mix of conceptual and practical questions
5. Each question should be clear and specific

Format your response as a numbered list with ONLY the questions, one per line. Example:
1. [First question here]
2. [Second question here]
etc.

Generate %d questions now:`, techStack, years, count, DifficultyFor(years), count)
}

// AnswerEvaluation asks the provider to grade one answer. The LABEL: value
// directive matches the labels scanned by ParseLabelled.
func AnswerEvaluation(question, answer, techStack string) string {
	return fmt.Sprintf(`You are evaluating a technical interview answer.

Question: %s

Candidate's Tech Stack: %s

Candidate's Answer: %s

Evaluate this answer and provide:
1. A brief acknowledgment (1 sentence, professional and encouraging)
2. A quality score from 1-10
3. Key strengths (if any)
4. Areas for improvement (if any)

Keep the feedback professional and constructive. Format as:
ACKNOWLEDGMENT: [Your acknowledgment]
SCORE: [1-10]
STRENGTHS: [Brief points or "N/A"]
IMPROVEMENTS: [Brief points or "N/A"]`, question, answer, techStack)
}

// maxAnswerPreview bounds how much of each answer is replayed to the
// provider when asking for the screening decision.
const maxAnswerPreview = 100

// ScreeningDecision asks the provider for the final decision over the whole
// assessment. The DECISION/REASONING/MESSAGE directive matches ParseLabelled.
func ScreeningDecision(rec *candidate.Record) string {
	var qa strings.Builder
	for i, entry := range rec.TechnicalQA {
		score := entry.Score
		if score == "" {
			score = "N/A"
		}
		answer := entry.Answer
		if len(answer) > maxAnswerPreview {
			answer = answer[:maxAnswerPreview] + "..."
		}
		fmt.Fprintf(&qa, "\nQ%d: %s\nAnswer: %s\nScore: %s\n", i+1, entry.Question, answer, score)
	}

	return fmt.Sprintf(`You are conducting a technical screening for a candidate. Based on their performance, decide if they should be SCREENED IN (pass to HR for further evaluation) or SCREENED OUT (rejected).

**Candidate Information:**
- Position Applied: %s
- Tech Stack: %s
- Years of Experience: %s

**Technical Assessment Performance:**
%s

**Decision Criteria:**
- SCREEN IN: Candidate shows good understanding of technologies, scores mostly 6+ or demonstrates potential
- SCREEN OUT: Candidate shows poor understanding, scores mostly below 5, or completely irrelevant answers

**Your Decision:**
Provide your decision in this EXACT format:
DECISION: [SCREEN IN or SCREEN OUT]
REASONING: [Brief 1-2 sentence explanation]
MESSAGE: [A professional message to the candidate - encouraging if SCREEN IN, polite but clear if SCREEN OUT]`,
		orNA(rec.Position), orNA(rec.TechStack), orNA(rec.Experience), qa.String())
}

// QuestionIntro introduces the technical round after the stack is collected.
func QuestionIntro(techStack string) string {
	return fmt.Sprintf(`Great! Thank you for sharing your information.

Based on your tech stack (%s) and experience level, I'm now going to ask you some tailored technical questions to assess your expertise. These questions are specifically designed for your background.

Please answer to the best of your ability. Let me prepare your first question...

**Type 'ready' when you're ready for the first question.**`, techStack)
}

// FormatQuestion renders a question with its position in the round.
func FormatQuestion(question, technology string, number, total int) string {
	return fmt.Sprintf("**Question %d of %d** (%s):\n\n%s", number, total, technology, question)
}

// StaticAcknowledgment is used when the evaluation call failed and no AI
// acknowledgment is available.
func StaticAcknowledgment(remaining int) string {
	if remaining > 0 {
		return "Thank you for your answer! Let's move to the next question."
	}
	return "Thank you for your thoughtful answers!"
}

// InterviewSummary renders the block appended after the last answer.
func InterviewSummary(answered int, avgScore float64, scored bool) string {
	var b strings.Builder
	b.WriteString("\n\n**Interview Summary:**\n")
	fmt.Fprintf(&b, "- Questions answered: %d\n", answered)
	if scored {
		fmt.Fprintf(&b, "- Average score: %.1f/10\n", avgScore)
	}
	b.WriteString("\n")
	return b.String()
}

// Conclusion renders the closing message keyed by the screening decision.
func Conclusion(name, decision, message string) string {
	if name == "" {
		name = "there"
	}

	if strings.Contains(strings.ToUpper(decision), "SCREEN IN") {
		return fmt.Sprintf(`**Congratulations, %s!**

%s

Our HR team will review your profile and contact you within 2-3 business days to schedule the next round of interviews.

Thank you for your time and thoughtful responses. We're excited about the possibility of having you join our team!

**What happens next:**
- HR team reviews your screening results
- You'll receive an email/call for the next interview round
- Keep an eye on your inbox!

Good luck!`, name, message)
	}

	return fmt.Sprintf(`Thank you, %s.

%s

We appreciate the time you took to complete this screening. While you haven't met the criteria for this particular role at this time, we encourage you to:
- Continue building your skills
- Apply for other positions that match your experience
- Reapply in the future as you gain more experience

We wish you all the best in your job search!

**The conversation has ended.** You may close this window.`, name, message)
}

// ConclusionFallback closes the session when the decision call failed.
func ConclusionFallback(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`Thank you, %s, for completing the screening!

Our HR team will review your responses and contact you if you're selected for the next round.

We appreciate your time and interest in our company. Good luck!`, name)
}

// ExitConfirmation acknowledges an exit intent.
func ExitConfirmation() string {
	return `I understand you'd like to end the session. Thank you for your time!
If you'd like to complete the screening process later, feel free to start a new conversation.
Have a great day!`
}

// SessionClosed is returned for any input after the session has ended.
func SessionClosed() string {
	return "The conversation has ended. Please start a new screening session."
}

// Fallback is returned when the engine cannot make sense of its own state.
func Fallback() string {
	return `I didn't quite understand that. Could you please rephrase or provide the requested information?
I'm here to help you through the screening process.`
}

// DefaultDecisionMessage is stored when the decision reply carried no
// MESSAGE label.
func DefaultDecisionMessage() string {
	return "Thank you for your time."
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
