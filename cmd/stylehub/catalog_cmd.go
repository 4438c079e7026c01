package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/stylehub/internal/catalog/domain"
	"github.com/dwikikusuma/stylehub/internal/notify"
	"github.com/dwikikusuma/stylehub/internal/pricing"
)

var (
	categoryFlag string
	searchFlag   string
	sortFlag     string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the product catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, optionally filtered and sorted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStack(cmd.Context(), cfg, log, notify.Nop{})
		if err != nil {
			return err
		}
		defer st.Close()

		products, err := st.catalog.ListProducts(cmd.Context(), domain.Filter{
			Category: categoryFlag,
			Query:    searchFlag,
			Sort:     domain.SortOrder(sortFlag),
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(products) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("No products match"))
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
		for _, p := range products {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Category, pricing.FormatMoney(p.Price), p.Rating)
		}
		return tw.Flush()
	},
}

func init() {
	catalogListCmd.Flags().StringVar(&categoryFlag, "category", "", "only this category (all for every category)")
	catalogListCmd.Flags().StringVarP(&searchFlag, "search", "q", "", "case-insensitive match on name or category")
	catalogListCmd.Flags().StringVar(&sortFlag, "sort", string(domain.SortDefault), "default, price-low, price-high or name")

	catalogCmd.AddCommand(catalogListCmd)
}
