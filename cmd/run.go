package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/ai/gemini"
	"github.com/talentscout/hiring-assistant/internal/candidate"
	"github.com/talentscout/hiring-assistant/internal/engine"
	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/prompts"
	"github.com/talentscout/hiring-assistant/internal/secrets"
	"github.com/talentscout/hiring-assistant/internal/store"
)

const (
	PromptNewScreening = "Start another screening"
	PromptExit         = "Exit"
	PromptRetrySave    = "Retry saving"
	PromptSkipSave     = "Skip saving"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("data-dir", "", "directory for persisted candidate records")

	viper.BindPFlag("data-dir", runCmd.Flags().Lookup("data-dir"))
}

// message is one transcript entry. The transcript is owned by this driver,
// not by the engine.
type message struct {
	Role    string
	Content string
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hiring-assistant", zap.String("version", version))

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or the ai.gemini section in the configuration file"),
		)
	}

	assistant, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, prompts.SystemInstruction(), config.AI.Gemini.MaxLogLength, logger)
	if err != nil {
		logger.Fatal("creating gemini client", zap.Error(err))
	}

	st, err := store.New(config.DataDir, logger)
	if err != nil {
		logger.Fatal("creating candidate store", zap.Error(err))
	}

	eng := engine.New(assistant, engine.Config{
		MinQuestions: config.Questions.Min,
		MaxQuestions: config.Questions.Max,
		ExitKeywords: config.ExitKeywords,
	}, logger)

	for {
		again, err := runSession(ctx, eng, st, logger)
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if !again {
			return
		}
		eng.Reset()
	}
}

// runSession drives one full screening conversation and reports whether the
// operator asked for another one.
func runSession(ctx context.Context, eng *engine.Engine, st *store.Store, logger *zap.Logger) (bool, error) {
	sessionID := uuid.NewString()
	logger = logger.With(zap.String("session_id", sessionID))
	logger.Info("starting screening session")

	saver := store.NewSessionSaver(st)
	transcript := make([]message, 0)

	greeting := eng.Greeting(ctx)
	transcript = append(transcript, message{Role: "assistant", Content: greeting})
	say(greeting)

	input := promptui.Prompt{Label: "You"}

	for !eng.IsComplete() {
		text, err := input.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("session interrupted by operator")
				return false, nil
			}
			return false, fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		transcript = append(transcript, message{Role: "user", Content: text})

		response := eng.ProcessMessage(ctx, text)
		transcript = append(transcript, message{Role: "assistant", Content: response})
		say(response)
	}

	logger.Info("screening session finished", zap.Int("transcript_messages", len(transcript)))

	for {
		err := saveRecord(eng, saver, logger)
		if err == nil {
			break
		}
		logger.Error("saving candidate record failed", zap.Error(err))

		retry := promptui.Select{
			Label: "Saving the candidate record failed. What next?",
			Items: []string{PromptRetrySave, PromptSkipSave},
		}
		_, action, selErr := retry.Run()
		if selErr != nil || action == PromptSkipSave {
			break
		}
	}

	next := promptui.Select{
		Label: "Session complete",
		Items: []string{PromptNewScreening, PromptExit},
	}

	_, action, err := next.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, fmt.Errorf("reading action: %w", err)
	}

	return action == PromptNewScreening, nil
}

// saveRecord persists the session record when it is complete. Sessions
// abandoned via exit intent lack required fields and are not stored.
func saveRecord(eng *engine.Engine, saver *store.SessionSaver, logger *zap.Logger) error {
	rec := eng.CandidateData()
	if !rec.Complete() {
		logger.Info("session ended before all fields were collected; record not saved")
		return nil
	}

	rec.Status = candidate.StatusScreened

	path, err := saver.Save(&rec)
	if err != nil {
		return fmt.Errorf("saving candidate record: %w", err)
	}

	logger.Info("candidate record persisted", zap.String("path", path))
	return nil
}

func say(text string) {
	fmt.Println()
	fmt.Println(text)
	fmt.Println()
}
