package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/stylehub/internal/pricing"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Pick up to three products to compare side by side",
}

var compareToggleCmd = &cobra.Command{
	Use:   "toggle [product-id]",
	Short: "Add a product to the compare list, or remove it if already there",
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

		if _, err := st.compare.Toggle(cmd.Context(), id); err != nil {
			return err
		}
		return printCompare(cmd, st)
	},
}

var compareListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the compared products side by side",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStack(cmd.Context(), cfg, log, consoleNotifier{w: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer st.Close()
		return printCompare(cmd, st)
	},
}

func init() {
	compareCmd.AddCommand(compareToggleCmd, compareListCmd)
}

func printCompare(cmd *cobra.Command, st *stack) error {
	w := cmd.OutOrStdout()
	ids := st.compare.List()

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Compare (%d)", len(ids))))
	for _, id := range ids {
		p, err := st.catalog.GetProduct(cmd.Context(), id)
		if err != nil {
			fmt.Fprintf(w, "  %d  %s\n", id, mutedStyle.Render("no longer available"))
			continue
		}
		fmt.Fprintf(w, "  %d  %-24s %-10s %s\n", p.ID, p.Name, p.Category, pricing.FormatMoney(p.Price))
	}
	return nil
}
