package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ridersync/internal/entities"
)

type whoamiView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	University string `json:"university"`
	Balance    string `json:"balance"`
}

type universityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// readPassword - первая строка stdin без перевода строки.
func readPassword(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newSignupCommand(opts *RootOptions) *cobra.Command {
	var form entities.Signup

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new rider account",
		Long: `Register a rider account on the server. The university must be one of
the names printed by "riderctl universities". Signup does not sign in:
run "riderctl login" afterwards.

Without --password the password is read from the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if form.Password == "" {
				var err error
				if form.Password, err = readPassword(cmd); err != nil {
					return err
				}
			}

			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			riderID, err := deps.Sessions.Signup(cmd.Context(), form)
			if err != nil {
				return err
			}

			if opts.Format == FormatJSON {
				return printJSON(cmd, map[string]string{"riderId": riderID})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s, now run riderctl login\n", riderID)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "rider name (required)")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number (required)")
	cmd.Flags().StringVar(&form.University, "university", "", "university name (required)")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	for _, name := range []string{"name", "email", "phone", "university"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newUniversitiesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "universities",
		Short: "List universities the service delivers to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			universities, err := deps.Sessions.Universities(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]universityView, 0, len(universities))
			for _, u := range universities {
				views = append(views, universityView{ID: u.ID, Name: u.Name})
			}
			if opts.Format == FormatJSON {
				return printJSON(cmd, views)
			}

			tw := newTable(cmd.OutOrStdout(), "ID", "NAME")
			for _, v := range views {
				row(tw, v.ID, v.Name)
			}
			return tw.Flush()
		},
	}
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		Long: `Sign in with the rider account. The token is kept in the local database
and used by every other command and by the rider-sync daemon.

Without --password the password is read from the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = readPassword(cmd); err != nil {
					return err
				}
			}

			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			s, err := deps.Sessions.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if opts.Format == FormatJSON {
				return printJSON(cmd, map[string]string{"riderId": s.RiderID})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", s.RiderID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}
			if err := deps.Sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in rider, university and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			rider, err := deps.Sessions.ResolveRider(cmd.Context())
			if err != nil {
				return err
			}

			view := whoamiView{
				ID:         rider.ID,
				Name:       rider.Name,
				University: rider.University,
				Balance:    rider.AvailableBalance.StringFixed(2),
			}
			if opts.Format == FormatJSON {
				return printJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", view.Name, view.ID)
			fmt.Fprintf(out, "university: %s\n", view.University)
			fmt.Fprintf(out, "balance:    %s\n", view.Balance)
			return nil
		},
	}
}
