package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/spf13/cobra"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export reports",
}

var reportOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Export the filtered order list to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			buf, err := c.reports.ExportOrders(ctx, sess, filterFromFlags())
			if err != nil {
				return err
			}

			out := reportOut
			if out == "" {
				out = c.reports.FileName()
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		})
	},
}

func init() {
	addFilterFlags(reportOrdersCmd)
	reportOrdersCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default orders-<date>.xlsx)")

	reportCmd.AddCommand(reportOrdersCmd)
}
