package cmd

import (
	"fmt"

	"github.com/frahmantamala/crm-console/internal/inventory"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/spf13/cobra"
)

var (
	stockForm  inventory.StockForm
	stockPrice float64
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Stock movements",
}

var stockReceiveCmd = &cobra.Command{
	Use:   "receive PRODUCT --quantity N",
	Short: "Record a received batch for a product",
	Long: `Record a received batch. Unset fields default from the product:
batch code BATCH-<unix millis>, manufactured today, the product's cost price and unit,
reason "Stock received".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		form := stockForm
		if cmd.Flags().Changed("price") {
			price := stockPrice
			form.PurchasePricePerUnit = &price
		}

		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			receipt, err := c.inventory.ReceiveStock(ctx, sess, sess.User.Name, args[0], form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Received %g %s as batch %s\n",
				receipt.Quantity, receipt.BatchData.Unit, receipt.BatchData.BatchCode)
			return nil
		})
	},
}

func init() {
	f := stockReceiveCmd.Flags()
	f.Float64VarP(&stockForm.Quantity, "quantity", "q", 0, "received quantity")
	f.StringVar(&stockForm.BatchCode, "batch", "", "batch code")
	f.StringVar(&stockForm.ManufacturedDate, "manufactured", "", "manufacturing date, YYYY-MM-DD")
	f.StringVar(&stockForm.ExpiryDate, "expiry", "", "expiry date, YYYY-MM-DD")
	f.Float64Var(&stockPrice, "price", 0, "purchase price per unit")
	f.StringVar(&stockForm.Unit, "unit", "", "stock unit")
	f.StringVar(&stockForm.Reason, "reason", "", "reason for the movement")

	stockCmd.AddCommand(stockReceiveCmd)
}
