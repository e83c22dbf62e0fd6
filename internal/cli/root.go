package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"ridersync/internal/service/session"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var ValidFormats = []string{FormatText, FormatJSON}

type RootOptions struct {
	Format string

	load Loader
	deps *Deps
}

// NewRootCommand собирает riderctl. Зависимости грузятся лениво: help и ошибки флагов
// не трогают хранилище.
func NewRootCommand(load Loader) *cobra.Command {
	opts := &RootOptions{load: load}

	cmd := &cobra.Command{
		Use:           "riderctl",
		Short:         "Rider account, orders and wallet from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (json|text)")

	cmd.AddCommand(
		newSignupCommand(opts),
		newUniversitiesCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newOrdersCommand(opts),
		newAcceptCommand(opts),
		newStatusCommand(opts),
		newWithdrawCommand(opts),
		newWithdrawalsCommand(opts),
		newAlertsCommand(opts),
	)

	return cmd
}

func (o *RootOptions) dependencies(ctx context.Context) (*Deps, error) {
	if o.deps != nil {
		return o.deps, nil
	}

	deps, err := o.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	o.deps = deps
	return deps, nil
}

// Hint переводит известные ошибки в подсказку для человека.
func Hint(err error) string {
	switch {
	case errors.Is(err, session.ErrNotSignedIn):
		return "not signed in, run: riderctl login --email <email>"
	case errors.Is(err, session.ErrRiderNotFound):
		return "rider profile not found on the server, sign in again"
	case errors.Is(err, session.ErrUnknownUniversity):
		return err.Error() + ", see: riderctl universities"
	default:
		return err.Error()
	}
}
