package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"discount24/internal/directory"
	"discount24/internal/domain"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your shop profile",
	}
	cmd.AddCommand(profileUpdateCmd())
	return cmd
}

func profileUpdateCmd() *cobra.Command {
	var (
		name, description, category, image string
		location, offers, contact, coords  string
	)
	cmd := &cobra.Command{
		Use:   "update <vendor-id>",
		Short: "Change profile fields; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := appCtx.EditProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			f := cmd.Flags()
			d := &edit.Draft
			if f.Changed("name") {
				d.Name = name
			}
			if f.Changed("description") {
				d.Description = description
			}
			if f.Changed("category") {
				d.Category = domain.Category(category)
			}
			if f.Changed("image") {
				d.Image = image
			}
			if f.Changed("location") {
				d.Location = location
			}
			if f.Changed("offers") {
				d.Offers = offers
			}
			if f.Changed("contact") {
				d.Contact = contact
			}
			if f.Changed("coords") {
				c, err := directory.ParseCoordinate(coords)
				if err != nil {
					return fmt.Errorf("--coords: %w", err)
				}
				d.Coordinates = &c
			}
			if !edit.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to update")
				return nil
			}

			v, err := edit.Commit(cmd.Context())
			if err != nil {
				edit.Rollback()
				return fmt.Errorf("profile not saved, changes discarded: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			printVendor(cmd.OutOrStdout(), v)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "shop name")
	f.StringVar(&description, "description", "", "description")
	f.StringVar(&category, "category", "", "one of "+categoryList())
	f.StringVar(&image, "image", "", "image URL")
	f.StringVar(&location, "location", "", "location")
	f.StringVar(&offers, "offers", "", "current offers")
	f.StringVar(&contact, "contact", "", "contact details")
	f.StringVar(&coords, "coords", "", "shop position as lat,lon")
	return cmd
}
