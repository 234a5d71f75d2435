package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/login"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long: `Sign in with an admin email and password. On success the token is
written to the session file and the dashboard is shown after a short delay.

The password may also be given in the PANEL_PASSWORD environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client(cmd)
		if err != nil {
			return err
		}
		email := loginEmail
		if email == "" {
			if p, err := loadProfile(appFs, profileFile); err == nil {
				email = p.Email
			}
		}
		password := loginPassword
		if password == "" {
			password = os.Getenv("PANEL_PASSWORD")
		}

		flow := login.NewFlow(c)
		creds := authority.Credentials{Email: email, Password: password}
		if err := flow.Submit(cmd.Context(), store(), creds); err != nil {
			return errors.New(login.Message(err))
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Logged in successfully! Redirecting...")

		arrived := make(chan struct{})
		cancel := flow.ScheduleRedirect(guard.NavigatorFunc(func(string) { close(arrived) }))
		defer cancel()
		select {
		case <-arrived:
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
		return showDashboard(cmd, c)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		flow := login.NewFlow(nil)
		flow.Logout(cmd.Context(), store())
		fmt.Fprintln(cmd.OutOrStdout(), "You have been logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "admin email address (defaults to the profile)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "admin password")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
