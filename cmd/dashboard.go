package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/crm-console/internal/dashboard"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/spf13/cobra"
)

var (
	dashboardWatch  bool
	dashboardPeriod string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's KPIs, low stock and sales by channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			out := cmd.OutOrStdout()

			if _, err := c.dashboard.Chart(ctx, sess, dashboardPeriod); err != nil {
				return err
			}
			if !dashboardWatch {
				snap, err := c.dashboard.Refresh(ctx, sess)
				renderDashboard(out, snap)
				return err
			}

			monitor := dashboard.NewMonitor(c.dashboard, sess, appConfig.Polling.Dashboard, c.logger)
			monitor.OnChange(func(snap dashboard.Snapshot) {
				clearScreen(out)
				renderDashboard(out, snap)
				fmt.Fprintf(out, "\nLive, every %s. Ctrl+C to stop.\n", appConfig.Polling.Dashboard)
			})
			if err := monitor.Refresh(ctx); err != nil {
				c.logger.Warn("dashboard refresh incomplete", "error", err)
			}
			monitor.Start(ctx)
			defer monitor.Stop()

			<-ctx.Done()
			return nil
		})
	},
}

func init() {
	dashboardCmd.Flags().BoolVarP(&dashboardWatch, "watch", "w", false, "keep refreshing until interrupted")
	dashboardCmd.Flags().StringVar(&dashboardPeriod, "period", string(dashboard.DefaultPeriod), "chart period: today, week, month, all")
}
