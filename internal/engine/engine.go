// Package engine drives the screening conversation: a linear state machine
// that validates collected fields, delegates open-ended generation to the
// completion service, and accumulates the candidate record. Every provider
// call degrades to deterministic fallback content, so a transient provider
// fault never dead-ends a live interview.
package engine

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/candidate"
	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/prompts"
	"github.com/talentscout/hiring-assistant/internal/validate"
)

// State identifies where the conversation is in its linear progression.
type State string

const (
	StateGreeting          State = "greeting"
	StateCollectName       State = "collect_name"
	StateCollectEmail      State = "collect_email"
	StateCollectPhone      State = "collect_phone"
	StateCollectExperience State = "collect_experience"
	StateCollectPosition   State = "collect_position"
	StateCollectLocation   State = "collect_location"
	StateCollectTechStack  State = "collect_tech_stack"
	StateAskQuestions      State = "ask_technical_questions"
	StateConclusion        State = "conclusion"
	StateEnded             State = "ended"
)

const (
	// DefaultMinQuestions is the smallest usable technical round.
	DefaultMinQuestions = 5
	// DefaultMaxQuestions caps how many generated questions are kept.
	DefaultMaxQuestions = 7
)

// DefaultExitKeywords end the session on a case-insensitive substring match
// in any state.
var DefaultExitKeywords = []string{
	"exit", "quit", "bye", "goodbye", "stop", "end",
	"cancel", "leave", "close", "terminate",
}

// readySynonyms advance from the question intro to the first question
// without consuming the input as an answer.
var readySynonyms = map[string]struct{}{
	"ok":       {},
	"yes":      {},
	"ready":    {},
	"sure":     {},
	"continue": {},
	"let's go": {},
	"proceed":  {},
}

// Question is one generated technical question.
type Question struct {
	Technology string
	Question   string
}

// Config tunes the technical round and the exit-intent keyword set. Zero
// values fall back to the defaults.
type Config struct {
	MinQuestions int
	MaxQuestions int
	ExitKeywords []string
}

func (c Config) withDefaults() Config {
	if c.MinQuestions <= 0 {
		c.MinQuestions = DefaultMinQuestions
	}
	if c.MaxQuestions <= 0 {
		c.MaxQuestions = DefaultMaxQuestions
	}
	if len(c.ExitKeywords) == 0 {
		c.ExitKeywords = DefaultExitKeywords
	}
	return c
}

// Engine is the conversation state machine. One engine handles one session
// at a time; Reset starts the next.
type Engine struct {
	assistant ai.Assistant
	config    Config
	logger    *zap.Logger

	conversation  ai.Conversation
	state         State
	record        candidate.Record
	questions     []Question
	questionIndex int
}

// New creates an engine bound to the provided assistant. The first
// conversation is opened lazily on the greeting so the constructor never
// touches the network.
func New(assistant ai.Assistant, config Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		assistant: assistant,
		config:    config.withDefaults(),
		logger:    log,
		state:     StateGreeting,
	}
}

// State returns the current conversation state.
func (e *Engine) State() State {
	return e.state
}

// IsComplete reports whether the session has reached its terminal state.
func (e *Engine) IsComplete() bool {
	return e.state == StateEnded
}

// CandidateData returns a copy of the record accumulated so far.
func (e *Engine) CandidateData() candidate.Record {
	rec := e.record
	rec.TechnicalQA = append([]candidate.TechnicalQA(nil), e.record.TechnicalQA...)
	return rec
}

// Reset discards all session state and opens a fresh conversation on the
// next greeting.
func (e *Engine) Reset() {
	e.conversation = nil
	e.state = StateGreeting
	e.record = candidate.Record{}
	e.questions = nil
	e.questionIndex = 0
}

// Greeting emits the AI-generated opening message and advances to name
// collection. It is called once per session, before any user input.
func (e *Engine) Greeting(ctx context.Context) string {
	text, err := e.send(ctx, prompts.Greeting())
	if err != nil {
		e.logger.Warn("greeting generation failed, using fallback", zap.Error(err))
		text = prompts.GreetingFallback()
	}

	e.state = StateCollectName
	return text
}

// ProcessMessage handles one user input and returns one response. Exit
// intent is checked first and overrides the current state.
func (e *Engine) ProcessMessage(ctx context.Context, input string) string {
	if e.state != StateEnded && e.exitIntent(input) {
		e.logger.Info("exit intent detected", zap.String("state", string(e.state)))
		e.state = StateEnded
		return prompts.ExitConfirmation()
	}

	switch e.state {
	case StateGreeting:
		return e.Greeting(ctx)
	case StateCollectName:
		return e.collectField(input, validate.Name, &e.record.Name, "email", StateCollectEmail)
	case StateCollectEmail:
		return e.collectField(input, validate.Email, &e.record.Email, "phone", StateCollectPhone)
	case StateCollectPhone:
		return e.collectField(input, validate.Phone, &e.record.Phone, "experience", StateCollectExperience)
	case StateCollectExperience:
		return e.collectField(input, validate.Experience, &e.record.Experience, "position", StateCollectPosition)
	case StateCollectPosition:
		return e.collectField(input, validate.Position, &e.record.Position, "location", StateCollectLocation)
	case StateCollectLocation:
		return e.collectField(input, validate.Location, &e.record.Location, "tech_stack", StateCollectTechStack)
	case StateCollectTechStack:
		return e.collectTechStack(ctx, input)
	case StateAskQuestions:
		if e.questionIndex == 0 && isReady(input) {
			return e.currentQuestion()
		}
		return e.handleAnswer(ctx, input)
	case StateConclusion:
		return e.conclude(ctx)
	case StateEnded:
		return prompts.SessionClosed()
	}

	return prompts.Fallback()
}

func (e *Engine) exitIntent(input string) bool {
	lowered := strings.ToLower(strings.TrimSpace(input))
	for _, keyword := range e.config.ExitKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// collectField runs one validator and, on success, stores the trimmed value
// and advances to the next collection state. On failure the state is left
// unchanged so the same field is implicitly re-asked.
func (e *Engine) collectField(input string, check func(string) error, dest *string, nextField string, next State) string {
	if err := check(input); err != nil {
		return err.Error()
	}

	*dest = strings.TrimSpace(input)
	e.state = next
	return prompts.FieldFollowUp(nextField, e.record.Name)
}

func (e *Engine) collectTechStack(ctx context.Context, input string) string {
	if err := validate.TechStack(input); err != nil {
		return err.Error()
	}

	techStack := strings.TrimSpace(input)

	years, err := strconv.ParseFloat(strings.TrimSpace(e.record.Experience), 64)
	if err != nil {
		years = 0
	}

	reply, sendErr := e.send(ctx, prompts.QuestionGeneration(techStack, years, e.config.MaxQuestions))
	if sendErr != nil {
		e.logger.Warn("question generation failed, using generic questions", zap.Error(sendErr))
		e.questions = fallbackQuestions()
	} else {
		parsed := prompts.ParseQuestions(reply)
		if len(parsed) < e.config.MinQuestions {
			e.logger.Info("not enough questions recovered from reply",
				zap.Int("parsed", len(parsed)),
				zap.Int("minimum", e.config.MinQuestions),
			)
			return "I'm having trouble generating enough questions. Could you please re-enter your tech stack with more details?"
		}

		if len(parsed) > e.config.MaxQuestions {
			parsed = parsed[:e.config.MaxQuestions]
		}

		e.questions = make([]Question, 0, len(parsed))
		for _, q := range parsed {
			e.questions = append(e.questions, Question{Technology: "AI-Generated", Question: q})
		}
	}

	e.record.TechStack = techStack
	e.questionIndex = 0
	e.state = StateAskQuestions

	return prompts.QuestionIntro(techStack)
}

func (e *Engine) currentQuestion() string {
	if e.questionIndex >= len(e.questions) {
		return "No more questions."
	}
	q := e.questions[e.questionIndex]
	return prompts.FormatQuestion(q.Question, q.Technology, e.questionIndex+1, len(e.questions))
}

func (e *Engine) handleAnswer(ctx context.Context, answer string) string {
	q := e.questions[e.questionIndex]

	entry := candidate.TechnicalQA{
		Technology: q.Technology,
		Question:   q.Question,
		Answer:     strings.TrimSpace(answer),
	}

	acknowledgment := ""
	reply, err := e.send(ctx, prompts.AnswerEvaluation(q.Question, answer, e.record.TechStack))
	if err != nil {
		e.logger.Warn("answer evaluation failed, storing answer without scores",
			zap.Int("question_index", e.questionIndex),
			zap.Error(err),
		)
	} else {
		labels := prompts.ParseLabelled(reply, "ACKNOWLEDGMENT", "SCORE")
		entry.Evaluation = reply
		entry.Score = labels["SCORE"]
		if entry.Score == "" {
			entry.Score = "N/A"
		}
		acknowledgment = labels["ACKNOWLEDGMENT"]
		if acknowledgment == "" {
			acknowledgment = "Thank you for your answer."
		}
	}

	e.record.TechnicalQA = append(e.record.TechnicalQA, entry)
	e.questionIndex++

	if e.questionIndex < len(e.questions) {
		if acknowledgment == "" {
			acknowledgment = prompts.StaticAcknowledgment(len(e.questions) - e.questionIndex)
		}
		return acknowledgment + "\n\n" + e.currentQuestion()
	}

	// Last answer: summarise and conclude inline rather than waiting for
	// another input.
	e.state = StateConclusion

	if acknowledgment == "" {
		return e.conclude(ctx)
	}

	avg, scored := e.averageScore()
	summary := prompts.InterviewSummary(len(e.record.TechnicalQA), avg, scored)

	return acknowledgment + summary + e.conclude(ctx)
}

// averageScore averages the entries whose score parses as number/10.
// Unparseable scores are excluded from both numerator and denominator.
func (e *Engine) averageScore() (float64, bool) {
	total := 0.0
	count := 0
	for _, qa := range e.record.TechnicalQA {
		if value, ok := prompts.ParseScore(qa.Score); ok {
			total += value
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

func (e *Engine) conclude(ctx context.Context) string {
	e.state = StateEnded

	reply, err := e.send(ctx, prompts.ScreeningDecision(&e.record))
	if err != nil {
		e.logger.Warn("screening decision failed, using fallback close", zap.Error(err))
		return prompts.ConclusionFallback(e.record.Name)
	}

	labels := prompts.ParseLabelled(reply, "DECISION", "REASONING", "MESSAGE")

	decision := labels["DECISION"]
	if decision == "" {
		decision = "SCREEN OUT"
	}
	message := labels["MESSAGE"]
	if message == "" {
		message = prompts.DefaultDecisionMessage()
	}

	e.record.ScreeningDecision = decision
	e.record.ScreeningReasoning = labels["REASONING"]

	e.logger.Info("screening decision recorded",
		zap.String("decision", decision),
		zap.String("reasoning", logger.TruncateForLog(e.record.ScreeningReasoning, 120)),
	)

	return prompts.Conclusion(e.record.Name, decision, message)
}

// send lazily opens the session conversation and forwards the prompt. Any
// failure, including a failure to open the conversation, is reported as a
// single error for the caller's fallback branch.
func (e *Engine) send(ctx context.Context, prompt string) (string, error) {
	if e.conversation == nil {
		conv, err := e.assistant.StartConversation(ctx)
		if err != nil {
			return "", err
		}
		e.conversation = conv
	}

	return e.conversation.SendMessage(ctx, prompt)
}

func isReady(input string) bool {
	_, ok := readySynonyms[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

func fallbackQuestions() []Question {
	generic := []string{
		"Describe your most challenging technical project and how you solved it.",
		"How do you approach learning new technologies?",
		"Explain your experience with the technologies in your tech stack.",
		"How do you ensure code quality in your projects?",
		"Describe a time when you had to debug a complex issue.",
	}

	questions := make([]Question, 0, len(generic))
	for _, q := range generic {
		questions = append(questions, Question{Technology: "General", Question: q})
	}
	return questions
}
