package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/config"
	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/session"
)

var (
	sessionFile string
	profileFile string
	apiBaseURL  string
	apiTimeout  time.Duration

	// appFs is swapped for an in-memory filesystem in tests.
	appFs afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "Admin panel command-line client",
	Long: `panelctl signs in to the admin panel's API and shows protected data
from the terminal. The session token is kept in a file so it survives
between invocations.

Available commands:
  login        Sign in and store the session token
  logout       Forget the stored session token
  status       Check whether the stored session is still valid
  dashboard    Show the dashboard counts

Use "panelctl [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile", defaultProfilePath(), "TOML file with default api, timeout and email")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", session.DefaultPath(), "file holding the session token")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "API base URL (defaults to the profile, then PANEL_API_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", 10*time.Second, "timeout for each API request")
}

func store() session.Store {
	return session.NewFileStore(appFs, sessionFile)
}

// client builds the API client. Flags win over the profile, and the
// profile wins over the environment.
func client(cmd *cobra.Command) (*authority.Client, error) {
	p, err := loadProfile(appFs, profileFile)
	if err != nil {
		return nil, err
	}
	timeout := apiTimeout
	if !cmd.Flags().Changed("timeout") {
		timeout = p.timeout(apiTimeout)
	}

	base := apiBaseURL
	if base == "" {
		base = p.API
	}
	if base == "" {
		cfg, err := config.New()
		if err != nil {
			return nil, err
		}
		base = cfg.GetAPIBaseURL()
	}
	return authority.NewClient(base, authority.WithTimeout(timeout)), nil
}

// recorder is a guard.Navigator for the terminal: it remembers where the
// session would have been sent.
type recorder struct {
	dest string
}

func (r *recorder) Navigate(dest string) { r.dest = dest }

// checkSession runs one guard mount against the stored token.
func checkSession(cmd *cobra.Command, c *authority.Client) (*guard.Mount, error) {
	g := guard.New(guard.Options{Validator: c})
	nav := &recorder{}
	m := g.Check(cmd.Context(), store(), nav)
	if m.State() != guard.Authenticated {
		return m, fmt.Errorf("not signed in (%v); run \"panelctl login\"", m.Err())
	}
	return m, nil
}
