package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cartapp "github.com/dwikikusuma/stylehub/internal/cart/app"
	cartstorage "github.com/dwikikusuma/stylehub/internal/cart/infra/kvstorage"
	"github.com/dwikikusuma/stylehub/internal/storefront/view"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show or change the persisted cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart with totals",
	Args:  cobra.NoArgs,
	RunE: withStack(func(cmd *cobra.Command, st *stack, _ []string) error {
		return nil
	}),
}

var cartAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add one unit of a product",
	Args:  cobra.ExactArgs(1),
	RunE: withProductID(func(cmd *cobra.Command, st *stack, id int) error {
		_, err := st.cart.Add(cmd.Context(), id)
		return err
	}),
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove [product-id]",
	Short: "Remove a product line",
	Args:  cobra.ExactArgs(1),
	RunE: withProductID(func(cmd *cobra.Command, st *stack, id int) error {
		return st.cart.Remove(cmd.Context(), id)
	}),
}

var cartIncCmd = &cobra.Command{
	Use:   "inc [product-id]",
	Short: "Increase a line's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE: withProductID(func(cmd *cobra.Command, st *stack, id int) error {
		return st.cart.SetQuantity(cmd.Context(), id, +1)
	}),
}

var cartDecCmd = &cobra.Command{
	Use:   "dec [product-id]",
	Short: "Decrease a line's quantity by one (never below one)",
	Args:  cobra.ExactArgs(1),
	RunE: withProductID(func(cmd *cobra.Command, st *stack, id int) error {
		return st.cart.SetQuantity(cmd.Context(), id, -1)
	}),
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: withStack(func(cmd *cobra.Command, st *stack, _ []string) error {
		return st.cart.Clear(cmd.Context())
	}),
}

var exportOut string

var cartExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the cart to a JSON file that import can read back",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStack(cmd.Context(), cfg, log, consoleNotifier{w: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer st.Close()

		raw, err := st.transfer.Export(cmd.Context())
		if err != nil {
			return err
		}
		if exportOut == "-" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		}
		if err := os.WriteFile(exportOut, raw, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("cart written to "+exportOut))
		return nil
	},
}

var cartImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the cart with one from an export file",
	Args:  cobra.ExactArgs(1),
	RunE: withStack(func(cmd *cobra.Command, st *stack, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		return st.transfer.Import(cmd.Context(), raw)
	}),
}

func init() {
	cartExportCmd.Flags().StringVarP(&exportOut, "out", "o", cartstorage.ExportFileName, `file to write, or "-" for stdout`)
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartRemoveCmd, cartIncCmd, cartDecCmd, cartClearCmd, cartExportCmd, cartImportCmd)
}

// withStack opens the storefront for one command and prints the cart after
// it ran.
func withStack(fn func(cmd *cobra.Command, st *stack, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := newStack(cmd.Context(), cfg, log, consoleNotifier{w: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer st.Close()

		if err := fn(cmd, st, args); err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), st.board.Cart(), st.cart.Degraded())
		return nil
	}
}

func withProductID(fn func(cmd *cobra.Command, st *stack, id int) error) func(*cobra.Command, []string) error {
	return withStack(func(cmd *cobra.Command, st *stack, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		return fn(cmd, st, id)
	})
}

func parseProductID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: product id must be a positive integer, got %q", cartapp.ErrInvalidInput, s)
	}
	return id, nil
}

func printCart(w io.Writer, v view.CartView, degraded bool) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Cart (%d items)", v.Count)))
	if degraded {
		fmt.Fprintln(w, mutedStyle.Render("storage unavailable, changes are not saved"))
	}
	if v.Empty {
		fmt.Fprintln(w, mutedStyle.Render("Your cart is empty"))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tQTY\tTOTAL")
	for _, l := range v.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", l.ProductID, l.Name, l.UnitPrice, l.Quantity, l.LineTotal)
	}
	tw.Flush()

	fmt.Fprintf(w, "Subtotal: %s\nShipping: %s\nTax:      %s\n", v.Totals.Subtotal, v.Totals.Shipping, v.Totals.Tax)
	fmt.Fprintln(w, totalStyle.Render("Total:    "+v.Totals.GrandTotal))
}
