package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Show or change the wishlist",
}

var wishlistToggleCmd = &cobra.Command{
	Use:   "toggle [product-id]",
	Short: "Add a product to the wishlist, or remove it if already there",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}

		st, err := newStack(cmd.Context(), cfg, log, consoleNotifier{w: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := st.wishlist.Toggle(cmd.Context(), id); err != nil {
			return err
		}
		return printWishlist(cmd, st)
	},
}

var wishlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wishlisted products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStack(cmd.Context(), cfg, log, consoleNotifier{w: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer st.Close()
		return printWishlist(cmd, st)
	},
}

func init() {
	wishlistCmd.AddCommand(wishlistToggleCmd, wishlistListCmd)
}

func printWishlist(cmd *cobra.Command, st *stack) error {
	w := cmd.OutOrStdout()
	ids := st.wishlist.List()

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Wishlist (%d)", len(ids))))
	for _, id := range ids {
		p, err := st.catalog.GetProduct(cmd.Context(), id)
		if err != nil {
			fmt.Fprintf(w, "  %d  %s\n", id, mutedStyle.Render("no longer available"))
			continue
		}
		fmt.Fprintf(w, "  %d  %s\n", p.ID, p.Name)
	}
	return nil
}
