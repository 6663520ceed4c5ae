package cmd

import (
	"context"
	"log"

	"counter-sync/core/config"
	"counter-sync/core/database"
	"counter-sync/feature/counter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedValue int64

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the counter schema and initial row",
	Long: `Migrates the counter and leaderboard tables and creates the single
counter row if it does not exist yet. An existing row is left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}

		store := counter.NewStore(db)
		if err := store.Seed(context.Background(), seedValue); err != nil {
			logg.Fatal("Seeding failed", zap.Error(err))
		}

		v, err := store.ReadCounter(context.Background())
		if err != nil {
			logg.Fatal("Verification read failed", zap.Error(err))
		}
		logg.Info("Counter ready", zap.Int64("value", v))
	},
}

func init() {
	seedCmd.Flags().Int64Var(&seedValue, "value", 0, "initial counter value when creating the row")
	RootCmd.AddCommand(seedCmd)
}
