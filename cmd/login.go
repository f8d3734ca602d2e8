package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocabtreasury/vocabtreasury/internal/store"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		app, err := newApp()
		if err != nil {
			return err
		}
		if email == "" || password == "" {
			return app.validationAlert(cmd, "email and password are both required")
		}

		if err := app.store.IssueToken(cmd.Context(), email, password); err != nil {
			return app.fail(cmd, err)
		}
		if err := app.store.FetchProfile(cmd.Context()); err != nil {
			return app.fail(cmd, err)
		}

		app.store.NotifyUser("you have logged in successfully")
		app.renderAlerts(cmd)

		if profile := store.SelectLoggedInProfile(app.store.State()); profile != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", profile.Username, profile.Email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("email", "", "account email address")
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and evict the persisted token",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		app.store.LogOut("you have logged out")
		app.renderAlerts(cmd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.store.FetchProfile(cmd.Context()); err != nil {
			return app.fail(cmd, err)
		}

		profile := store.SelectLoggedInProfile(app.store.State())
		fmt.Fprintf(cmd.OutOrStdout(), "ID:       %d\n", profile.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Username: %s\n", profile.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "Email:    %s\n", profile.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Request a password-reset link by email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		app, err := newApp()
		if err != nil {
			return err
		}
		if email == "" {
			return app.validationAlert(cmd, "an email address is required")
		}

		if err := app.store.RequestPasswordReset(cmd.Context(), email); err != nil {
			return app.fail(cmd, err)
		}

		app.store.NotifyUser("a password-reset link is on its way to your email address")
		app.renderAlerts(cmd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetPasswordCmd)

	resetPasswordCmd.Flags().String("email", "", "account email address")
	_ = resetPasswordCmd.MarkFlagRequired("email")
}
