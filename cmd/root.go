package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vocabtreasury/vocabtreasury/internal/api"
	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/config"
	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/logging"
	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/session"
	"github.com/vocabtreasury/vocabtreasury/internal/store"
)

const sessionExpiredMessage = "your session has expired, please log in again"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "vocabtreasury",
	Short:         "Manage your personal collection of language-learning examples",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the collaborators every command needs: configuration, the
// backend client and one state container instance.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	client *api.HTTPClient
	store  *store.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	tokens := session.NewFileStorage(cfg.Session.TokenFile)
	client := api.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, tokens, logger)
	st, err := store.New(store.Deps{API: client, Tokens: tokens, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}
	return &app{cfg: cfg, logger: logger, client: client, store: st}, nil
}

// renderAlerts prints pending notifications newest first and dismisses
// them.
func (a *app) renderAlerts(cmd *cobra.Command) {
	state := a.store.State()
	entities := store.SelectAlertEntities(state)
	for _, id := range store.SelectAlertIDs(state) {
		fmt.Fprintf(cmd.OutOrStdout(), "» %s\n", entities[id].Message)
		a.store.RemoveAlert(id)
	}
}

// fail turns an operation failure into the single user-visible alert the
// caller owes per rejected request. An expired session on an
// authenticated operation forces a logout instead.
func (a *app) fail(cmd *cobra.Command, err error) error {
	if api.IsUnauthorized(err) {
		a.store.LogOut(sessionExpiredMessage)
	} else {
		a.store.NotifyUser(err.Error())
	}
	a.renderAlerts(cmd)
	return err
}

// validationAlert surfaces a client-side validation failure as an
// immediate alert; no request is issued and no request status changes.
func (a *app) validationAlert(cmd *cobra.Command, message string) error {
	a.store.NotifyUser(message)
	a.renderAlerts(cmd)
	return fmt.Errorf("%s", message)
}
