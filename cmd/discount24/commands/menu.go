package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"discount24/internal/domain"
	"discount24/internal/pricing"
	"discount24/internal/services/menu"
)

func menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage menu items",
	}
	cmd.AddCommand(menuListCmd(), menuAddCmd(), menuEditCmd(), menuRemoveCmd())
	return cmd
}

func menuListCmd() *cobra.Command {
	var vendorID, sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a menu (yours unless --vendor is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := appCtx.Menu.List(cmd.Context(), vendorID)
			if err != nil {
				return err
			}
			if sortBy != "" {
				items = menu.SortItems(items, menu.SortKey(sortBy))
			}
			printMenu(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().StringVar(&vendorID, "vendor", "", "vendor id")
	cmd.Flags().StringVar(&sortBy, "sort", "", "price or discount")
	return cmd
}

func menuFormFlags(cmd *cobra.Command, form *menu.Form) {
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "item name")
	f.StringVar(&form.Description, "description", "", "item description")
	f.StringVar(&form.Price, "price", "", "base price")
	f.StringVar(&form.Discount, "discount", "", "discount percent, 0-100")
	f.StringVar(&form.Category, "category", "", "item category")
}

func menuAddCmd() *cobra.Command {
	var form menu.Form
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to your menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := menu.ParseForm(form)
			if err != nil {
				return err
			}
			item, err := appCtx.Menu.Add(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.Name, item.ID)
			return nil
		},
	}
	menuFormFlags(cmd, &form)
	return cmd
}

func menuEditCmd() *cobra.Command {
	var form menu.Form
	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Replace an item on your menu; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := appCtx.Menu.List(cmd.Context(), "")
			if err != nil {
				return err
			}
			var current *domain.MenuItem
			for i := range items {
				if items[i].ID == args[0] {
					current = &items[i]
				}
			}
			if current == nil {
				return fmt.Errorf("menu item %q: %w", args[0], domain.ErrNotFound)
			}

			merged := formFrom(*current)
			f := cmd.Flags()
			if f.Changed("name") {
				merged.Name = form.Name
			}
			if f.Changed("description") {
				merged.Description = form.Description
			}
			if f.Changed("price") {
				merged.Price = form.Price
			}
			if f.Changed("discount") {
				merged.Discount = form.Discount
			}
			if f.Changed("category") {
				merged.Category = form.Category
			}
			draft, err := menu.ParseForm(merged)
			if err != nil {
				return err
			}
			item, err := appCtx.Menu.Update(cmd.Context(), args[0], draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", item.Name, item.ID)
			return nil
		},
	}
	menuFormFlags(cmd, &form)
	return cmd
}

func menuRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Delete an item from your menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := appCtx.Menu.List(cmd.Context(), ""); err != nil {
				return err
			}
			if err := appCtx.Menu.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		},
	}
}

func formFrom(m domain.MenuItem) menu.Form {
	f := menu.Form{
		Name:        m.Name,
		Description: m.Description,
		Price:       fmt.Sprint(m.Price),
		Category:    m.Category,
	}
	if m.Discount != nil {
		f.Discount = fmt.Sprint(*m.Discount)
	}
	return f
}

func printMenu(w io.Writer, items []domain.MenuItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No menu items")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDISCOUNT\tYOU PAY\tCATEGORY")
	for _, m := range items {
		discount := "-"
		if m.Discount != nil && *m.Discount > 0 {
			discount = fmt.Sprintf("%g%% OFF", *m.Discount)
		}
		pays := "?"
		if p, err := pricing.ForItem(m); err == nil {
			pays = pricing.Format(p)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.Name, pricing.Format(m.Price), discount, pays, m.Category)
	}
}
