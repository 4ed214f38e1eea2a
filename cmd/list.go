package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted candidate records",
	Run: func(_ *cobra.Command, _ []string) {
		list()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func list() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st, err := store.New(config.DataDir, logger)
	if err != nil {
		logger.Fatal("creating candidate store", zap.Error(err))
	}

	records, err := st.LoadAll()
	if err != nil {
		logger.Fatal("listing candidate records", zap.Error(err))
	}

	if len(records) == 0 {
		fmt.Println("no candidate records found in", st.Dir())
		return
	}

	for _, rec := range records {
		fmt.Printf("%s | %s | %s | %s | answered %d | %s\n",
			rec.SubmissionTime, rec.Name, rec.Position, rec.ScreeningDecision,
			len(rec.TechnicalQA), rec.Email,
		)
	}

	fmt.Printf("\n%d record(s) in %s\n", len(records), st.Dir())
}
