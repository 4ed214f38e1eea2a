package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all candidate records to a CSV file",
	Run: func(cmd *cobra.Command, _ []string) {
		export(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "candidates.csv", "destination CSV file")
}

func export(cmd *cobra.Command) {
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

	output := cmd.Flag("output").Value.String()
	if err := st.ExportCSV(output); err != nil {
		logger.Fatal("exporting candidate records", zap.Error(err))
	}
}
