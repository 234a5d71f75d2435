package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/guard"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the stored session is still valid",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client(cmd)
		if err != nil {
			return err
		}
		m, err := checkSession(cmd, c)
		if err != nil {
			return err
		}
		defer m.Unmount()

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "Signed in.")
		if u := m.User(); u != nil {
			fmt.Fprintf(out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
		}
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client(cmd)
		if err != nil {
			return err
		}
		return showDashboard(cmd, c)
	},
}

// showDashboard validates the stored session and prints the summary. A
// failed fetch ends the session the same way a rejected token does.
func showDashboard(cmd *cobra.Command, c *authority.Client) error {
	m, err := checkSession(cmd, c)
	if err != nil {
		return err
	}
	defer m.Unmount()

	s, err := c.DashboardSummary(m.Context(), m.Token())
	if err != nil {
		m.Revoke(fmt.Errorf("%w: %w", guard.ErrDataFetchFailed, err))
		return fmt.Errorf("session ended: %w", err)
	}

	color.New(color.FgCyan).Fprintln(cmd.OutOrStdout(), "Dashboard")
	p := message.NewPrinter(language.English)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, row := range []struct {
		label string
		n     int
	}{
		{"Products", s.Products},
		{"Categories", s.Categories},
		{"Brands", s.Brands},
		{"Customers", s.Customers},
		{"Admins", s.Admins},
		{"Roles", s.Roles},
	} {
		p.Fprintf(w, "%s\t%d\n", row.label, row.n)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(statusCmd, dashboardCmd)
}
