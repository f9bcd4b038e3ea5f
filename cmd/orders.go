package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/spf13/cobra"
)

type orderFlags struct {
	status, search, channel, date, amount string
}

var orderFilter orderFlags

var historyLimit int

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Track orders and change their status",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders matching the filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			orders, err := c.orders.List(ctx, sess, filterFromFlags())
			if err != nil {
				return err
			}
			renderOrders(cmd.OutOrStdout(), orders, c.orders.Counts())
			return nil
		})
	},
}

var ordersWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the order list on screen, refreshed every polling interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			out := cmd.OutOrStdout()
			board := order.NewBoard(c.orders, sess, appConfig.Polling.Orders, c.logger)
			if err := board.SetState(filterFromFlags()); err != nil {
				return err
			}
			board.OnChange(func(view []order.Order) {
				clearScreen(out)
				renderOrders(out, view, board.Counts())
				fmt.Fprintf(out, "\nLive, every %s. Ctrl+C to stop.\n", appConfig.Polling.Orders)
			})

			if err := board.Refresh(ctx); err != nil {
				return err
			}
			board.StartLive(ctx)
			defer board.StopLive()

			<-ctx.Done()
			return nil
		})
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status ORDER STATUS",
	Short: "Change the status of an order",
	Long:  `ORDER is the display id (e.g. ORD-1001) or the backend id. STATUS is one of Pending, Confirmed, Processing, Shipped, Delivered, Cancelled.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			id, err := resolveOrderID(ctx, c, sess, args[0])
			if err != nil {
				return err
			}
			updated, err := c.orders.UpdateStatus(ctx, sess, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", displayID(updated), updated.Status)
			return nil
		})
	},
}

var ordersHistoryCmd = &cobra.Command{
	Use:   "history [ORDER]",
	Short: "Show status changes made from this console",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			if err := permission.Require(sess, permission.ResourceOrders, permission.ActionRead); err != nil {
				return err
			}
			if len(args) == 0 {
				list, err := c.journal.Recent(ctx, historyLimit)
				if err != nil {
					return err
				}
				renderTransitions(cmd.OutOrStdout(), list)
				return nil
			}

			id, err := resolveOrderID(ctx, c, sess, args[0])
			if err != nil {
				return err
			}
			list, err := c.journal.History(ctx, id)
			if err != nil {
				return err
			}
			renderTransitions(cmd.OutOrStdout(), list)
			return nil
		})
	},
}

func filterFromFlags() order.FilterState {
	state := order.DefaultFilterState()
	if orderFilter.status != "" {
		state.Tab = orderFilter.status
	}
	state.Search = orderFilter.search
	if orderFilter.channel != "" {
		state.Side.Channel = orderFilter.channel
	}
	if orderFilter.date != "" {
		state.Side.DateRange = order.DateRange(orderFilter.date)
	}
	if orderFilter.amount != "" {
		state.Side.Amount = order.AmountRange(orderFilter.amount)
	}
	return state
}

// resolveOrderID accepts the display id or the backend id.
func resolveOrderID(ctx context.Context, c *console, sess *session.Session, ref string) (string, error) {
	orders, err := c.orders.Refresh(ctx, sess)
	if err != nil {
		return "", err
	}
	for i := range orders {
		if orders[i].ID == ref || strings.EqualFold(orders[i].OrderID, ref) {
			return orders[i].ID, nil
		}
	}
	return "", internal.NewNotFoundError(fmt.Sprintf("Order %s not found", ref), internal.ErrCodeOrderNotFound)
}

func displayID(o *order.Order) string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return o.ID
}

func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&orderFilter.status, "status", "", "status tab: All, Pending, Confirmed, Processing, Shipped, Delivered, Cancelled")
	cmd.Flags().StringVar(&orderFilter.search, "search", "", "match order id or customer name")
	cmd.Flags().StringVar(&orderFilter.channel, "channel", "", "sales channel, e.g. Website or Amazon")
	cmd.Flags().StringVar(&orderFilter.date, "date", "", "date range: Today, Yesterday, Last 7 Days")
	cmd.Flags().StringVar(&orderFilter.amount, "amount", "", "revenue range: <1000, 1000-5000, >5000")
}

func init() {
	addFilterFlags(ordersListCmd)
	addFilterFlags(ordersWatchCmd)
	ordersHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of recent changes to show")

	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersWatchCmd)
	ordersCmd.AddCommand(ordersStatusCmd)
	ordersCmd.AddCommand(ordersHistoryCmd)
}
