package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"discount24/internal/directory"
	"discount24/internal/domain"
)

func vendorsCmd() *cobra.Command {
	var (
		search   string
		category string
		near     string
		refresh  bool
	)
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "List vendors, optionally searched, filtered and sorted by distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := directory.Query{Text: search, Category: category}
			if near != "" {
				ref, err := directory.ParseCoordinate(near)
				if err != nil {
					return fmt.Errorf("--near: %w", err)
				}
				q.Near = &ref
			}
			vendors, err := appCtx.Browse(cmd.Context(), q, refresh)
			if err != nil {
				return err
			}
			printVendors(cmd.OutOrStdout(), vendors, q.Near)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&search, "search", "", "match name, description or category")
	f.StringVar(&category, "category", domain.CategoryAll, "category filter")
	f.StringVar(&near, "near", "", "sort by distance from lat,lon")
	f.BoolVar(&refresh, "refresh", true, "fetch the directory instead of using the cache")

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List the categories present in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := appCtx.Vendors.ListAll(cmd.Context()); err != nil {
				return err
			}
			for _, c := range appCtx.Vendors.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	})
	return cmd
}

func vendorCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "vendor <id>",
		Short: "Show one vendor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := appCtx.Vendors.GetByID(cmd.Context(), args[0], refresh)
			if err != nil {
				return err
			}
			printVendor(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the directory before looking up")
	return cmd
}

func printVendors(w io.Writer, vendors []domain.Vendor, ref *domain.Coordinate) {
	if len(vendors) == 0 {
		fmt.Fprintln(w, "No vendors found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tRATING\tDISTANCE\tOFFERS")
	for _, v := range vendors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Name, v.Category, ratingText(v.Rating), distanceText(ref, v), v.Offers)
	}
}

func printVendor(w io.Writer, v domain.Vendor) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	rows := [][2]string{
		{"ID", v.ID},
		{"Name", v.Name},
		{"Category", v.Category.String()},
		{"Description", v.Description},
		{"Location", v.Location},
		{"Rating", ratingText(v.Rating)},
		{"Offers", v.Offers},
		{"Contact", v.Contact},
		{"Image", v.Image},
	}
	for _, r := range rows {
		if r[1] != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
		}
	}
}

func ratingText(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func distanceText(ref *domain.Coordinate, v domain.Vendor) string {
	if ref == nil {
		return "-"
	}
	d, ok := directory.Distance(*ref, v)
	if !ok {
		return "?"
	}
	return strconv.FormatFloat(d, 'f', 1, 64) + " km"
}
