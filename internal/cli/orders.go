package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ridersync/internal/dto"
	"ridersync/internal/entities"
	"ridersync/internal/pkg/factory/order_event"
	"ridersync/internal/service/orders"
)

// quietNotifier - в CLI нет событий канала, звонить некому.
type quietNotifier struct{}

func (quietNotifier) Notify(context.Context, entities.Event) {}

// loadOrders собирает разовую коллекцию заказов курьера и заполняет ее с сервера.
// Вызывающий закрывает коллекцию.
func loadOrders(ctx context.Context, deps *Deps) (*orders.Reconciler, error) {
	rider, err := deps.Sessions.ResolveRider(ctx)
	if err != nil {
		return nil, err
	}

	r := orders.New(deps.Log, deps.Orders, quietNotifier{}, order_event.NewStrategyFactory(), rider)
	if err := r.RefreshNow(ctx); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// resolveOrderID принимает и полный id, и короткий, как его видит курьер.
func resolveOrderID(r *orders.Reconciler, arg string) (string, error) {
	arg = strings.TrimPrefix(strings.TrimSpace(arg), "#")
	if _, ok := r.Find(arg); ok {
		return arg, nil
	}

	var found []string
	for _, o := range r.Snapshot() {
		if o.ShortID() == arg {
			found = append(found, o.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", orders.ErrOrderNotFound, arg)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("short id %s is ambiguous, use the full id", arg)
	}
}

func newOrdersCommand(opts *RootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders of your university with counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			r, err := loadOrders(cmd.Context(), deps)
			if err != nil {
				return err
			}
			defer r.Close()

			riderID := r.Rider().ID
			all := r.Snapshot()
			summary := orders.Summarize(all, riderID)
			list := orders.Search(all, query)

			if opts.Format == FormatJSON {
				view := dto.OrdersView{
					Orders: make([]dto.OrderView, 0, len(list)),
					Counters: dto.OrdersCounters{
						Total:     summary.Total,
						New:       summary.New,
						Ongoing:   summary.Ongoing,
						Completed: summary.Completed,
					},
				}
				for _, o := range list {
					view.Orders = append(view.Orders, dto.OrderViewFromEntity(o, riderID))
				}
				return printJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total %d  new %d  ongoing %d  completed %d\n\n",
				summary.Total, summary.New, summary.Ongoing, summary.Completed)

			tw := newTable(out, "ID", "STATUS", "CUSTOMER", "FEE", "NOTE")
			for _, o := range list {
				row(tw, "#"+o.ShortID(), o.Status, o.UserName, o.DeliveryFee.StringFixed(2), orderNote(o, riderID))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by order id, customer or vendor name")
	return cmd
}

func orderNote(o entities.Order, riderID string) string {
	switch {
	case o.AssignedTo(riderID):
		return "yours"
	case !o.IsUnassigned():
		return "taken"
	case entities.EligibleForAssignment(o):
		return "can accept"
	case entities.AwaitingVendors(o):
		return "waiting for vendors"
	default:
		return ""
	}
}

func newAcceptCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <order-id>",
		Short: "Take an unassigned order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			r, err := loadOrders(cmd.Context(), deps)
			if err != nil {
				return err
			}
			defer r.Close()

			id, err := resolveOrderID(r, args[0])
			if err != nil {
				return err
			}

			order, err := r.Accept(cmd.Context(), id)
			if err != nil {
				return err
			}

			if opts.Format == FormatJSON {
				return printJSON(cmd, dto.OrderViewFromEntity(order, r.Rider().ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "accepted order #%s\n", order.ShortID())
			return nil
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id> <Processing|Delivered>",
		Short: "Move your order to the next status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := parseStatus(args[1])

			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			r, err := loadOrders(cmd.Context(), deps)
			if err != nil {
				return err
			}
			defer r.Close()

			id, err := resolveOrderID(r, args[0])
			if err != nil {
				return err
			}

			order, err := r.AdvanceStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}

			if opts.Format == FormatJSON {
				return printJSON(cmd, dto.OrderViewFromEntity(order, r.Rider().ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order #%s is now %s\n", order.ShortID(), order.Status)
			return nil
		},
	}
}

// parseStatus терпит любой регистр: "delivered" -> Delivered.
func parseStatus(s string) entities.OrderStatusType {
	return entities.OrderStatusType(cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s))))
}
