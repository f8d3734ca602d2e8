package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new VocabTreasury account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		confirm, _ := cmd.Flags().GetString("confirm-password")

		app, err := newApp()
		if err != nil {
			return err
		}

		reg := entity.Registration{Username: username, Email: email, Password: password}
		if err := reg.Validate(); err != nil {
			return app.validationAlert(cmd, err.Error())
		}
		if password != confirm {
			return app.validationAlert(cmd, entity.ErrPasswordMismatch.Error())
		}

		if err := app.store.CreateUser(cmd.Context(), reg); err != nil {
			return app.fail(cmd, err)
		}

		app.store.NotifyUser("you have registered successfully, please check your email to confirm your address")
		app.renderAlerts(cmd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("username", "", "username for the new account")
	registerCmd.Flags().String("email", "", "email address for the new account")
	registerCmd.Flags().String("password", "", "password for the new account")
	registerCmd.Flags().String("confirm-password", "", "repeat the password")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	// confirm-password defaults to password when omitted
	registerCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("confirm-password") {
			password, _ := cmd.Flags().GetString("password")
			_ = cmd.Flags().Set("confirm-password", password)
		}
	}
}

var confirmEmailCmd = &cobra.Command{
	Use:   "confirm-email <confirmation-token>",
	Short: "Confirm the email address of a freshly registered account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		message, err := app.store.ConfirmEmailAddress(cmd.Context(), args[0])
		if err != nil {
			return app.fail(cmd, err)
		}

		app.store.NotifyUser(message)
		app.renderAlerts(cmd)
		fmt.Fprintln(cmd.OutOrStdout(), "You can now log in.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(confirmEmailCmd)
}
