package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"discount24/internal/app"
	"discount24/internal/telemetry"
	"discount24/pkg/logging"
)

var (
	home       string
	passphrase string
	apiURL     string
	timeout    time.Duration
	logLevel   string

	appCtx          *app.App
	shutdownTracing func(context.Context) error
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "discount24",
		Short:        "Vendor marketplace client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			if flags.Changed("api") {
				cfg.APIURL = apiURL
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			log, err := logging.Setup(cfg.LogLevel)
			if err != nil {
				return err
			}
			cfg.Logger = log
			shutdownTracing = telemetry.SetupTracing("discount24")

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			w.Transport.OnAuthExpired(func() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Your session has expired. Run `discount24 login` to sign in again.")
			})
			appCtx = app.New(w)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if shutdownTracing == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return shutdownTracing(ctx)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "config dir (default ~/.discount24)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the saved session token")
	pf.StringVar(&apiURL, "api", app.DefaultAPIURL, "marketplace API base URL")
	pf.DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default from LOG_LEVEL)")

	root.AddCommand(
		loginCmd(), registerCmd(), logoutCmd(), statusCmd(),
		vendorsCmd(), vendorCmd(), profileCmd(), menuCmd(),
	)
	return root
}
