package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/config"
	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/logging"
	"github.com/vocabtreasury/vocabtreasury/internal/mockapi"
)

var mockServeCmd = &cobra.Command{
	Use:   "mock-serve",
	Short: "Run an in-memory VocabTreasury backend for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		seed, _ := cmd.Flags().GetBool("seed")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := logging.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}

		backend := mockapi.New()
		if seed {
			userID := backend.AddUser("demo", "demo@example.com", "demo-password")
			backend.AddExample(userID, "German", "die Ameise", "Die Ameise trägt ein Blatt.", "The ant carries a leaf.")
			backend.AddExample(userID, "German", "der Igel", "Der Igel schläft im Laub.", "The hedgehog sleeps in the leaves.")
			backend.AddExample(userID, "Finnish", "sataa", "Ulkona sataa lunta.", "It is snowing outside.")
			logger.Info("seeded demo account: demo@example.com / demo-password")
		}

		logger.WithField("addr", addr).Info("mock backend listening")
		return http.ListenAndServe(addr, backend.Handler())
	},
}

func init() {
	rootCmd.AddCommand(mockServeCmd)

	mockServeCmd.Flags().String("addr", ":5000", "listen address")
	mockServeCmd.Flags().Bool("seed", false, "seed a demo account with a few examples")
}
