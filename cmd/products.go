package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/inventory"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/spf13/cobra"
)

var productFile string

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"inventory"},
	Short:   "Manage the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			products, err := c.inventory.List(ctx, sess)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), products)
			return nil
		})
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create --file product.json",
	Short: "Create a product from a JSON form",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		form, err := readProductForm(productFile)
		if err != nil {
			return err
		}
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			if err := c.inventory.Create(ctx, sess, form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %q created\n", form.Name)
			return nil
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update PRODUCT --file product.json",
	Short: "Replace a product with a JSON form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		form, err := readProductForm(productFile)
		if err != nil {
			return err
		}
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			product, err := c.inventory.Find(ctx, sess, args[0])
			if err != nil {
				return err
			}
			if err := c.inventory.Update(ctx, sess, product.ID, form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %q updated\n", form.Name)
			return nil
		})
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete PRODUCT",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			product, err := c.inventory.Find(ctx, sess, args[0])
			if err != nil {
				return err
			}
			if err := c.inventory.Delete(ctx, sess, product.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %q deleted\n", product.Name)
			return nil
		})
	},
}

// readProductForm loads a form written by hand or exported from
// "products list". "-" reads stdin.
func readProductForm(path string) (inventory.ProductForm, error) {
	var form inventory.ProductForm
	if path == "" {
		return form, internal.NewValidationFieldError("file", "file is required", internal.ErrCodeValidationFailed)
	}

	f := os.Stdin
	if path != "-" {
		var err error
		if f, err = os.Open(path); err != nil {
			return form, fmt.Errorf("open product form: %w", err)
		}
		defer f.Close()
	}

	if err := json.NewDecoder(f).Decode(&form); err != nil {
		return form, internal.NewValidationError("product form is not valid JSON: "+err.Error(), internal.ErrCodeValidationFailed)
	}
	return form, nil
}

func init() {
	productsCreateCmd.Flags().StringVarP(&productFile, "file", "f", "", "JSON product form, - for stdin")
	productsUpdateCmd.Flags().StringVarP(&productFile, "file", "f", "", "JSON product form, - for stdin")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
}
