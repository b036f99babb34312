package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"discount24/internal/domain"
)

// readSecret returns flagValue, or the first line of r when it is empty.
func readSecret(r io.Reader, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a vendor (password from --password or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := domain.Credentials{Email: email, Password: readSecret(cmd.InOrStdin(), password)}
			res, err := appCtx.Auth.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Message != "" {
				fmt.Fprintln(out, res.Message)
			}
			if res.Vendor != nil {
				fmt.Fprintf(out, "Signed in as %s (%s)\n", res.Vendor.Name, res.Vendor.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func registerCmd() *cobra.Command {
	var (
		reg       domain.Registration
		category  string
		imagePath string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg.Category = domain.Category(category)
			if reg.RetypePassword == "" {
				reg.RetypePassword = reg.Password
			}
			if imagePath != "" {
				f, err := os.Open(imagePath)
				if err != nil {
					return err
				}
				defer f.Close()
				reg.Image = f
				reg.ImageName = filepath.Base(imagePath)
			}

			res, err := appCtx.Auth.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			if res.Vendor != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", res.Vendor.Name, res.Vendor.ID)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Registered")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&reg.VendorName, "vendor-name", "", "your name")
	f.StringVar(&reg.Email, "email", "", "account email")
	f.StringVar(&reg.ShopName, "shop", "", "shop name")
	f.StringVar(&reg.Description, "description", "", "shop description")
	f.StringVar(&reg.Location, "location", "", "shop location")
	f.StringVar(&reg.Phone, "phone", "", "contact phone")
	f.StringVar(&category, "category", "", "one of "+categoryList())
	f.StringVar(&reg.Password, "password", "", "password")
	f.StringVar(&reg.RetypePassword, "retype-password", "", "password again (defaults to --password)")
	f.StringVar(&imagePath, "image", "", "optional shop image file")
	for _, name := range []string{"vendor-name", "email", "shop", "description", "location", "phone", "category", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is saved",
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Session.IsAuthenticated() {
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in (session %s)\n", appCtx.Session.Fingerprint())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			}
			return nil
		},
	}
}

func categoryList() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
