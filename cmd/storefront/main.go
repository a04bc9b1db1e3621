package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/client"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/config"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/relay"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/shell"
	pkgconfig "github.com/Mohahamed99-by/shoe-store-morocco/pkg/config"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/httpclient"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/logger"
)

// env is the configuration and logger shared by every subcommand.
type env struct {
	cfg *config.Storefront
	log *slog.Logger
}

func (e *env) catalog() *client.Catalog {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = e.cfg.HTTPTimeout()
	return client.NewCatalogWithBreaker(e.cfg.CatalogURL, httpCfg, e.log)
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the shoe catalog and place cash-on-delivery orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Apply a local .env file, if any, before reading the environment.
			if err := pkgconfig.LoadDotEnv(); err != nil {
				return fmt.Errorf("load .env file: %w", err)
			}
			cfg, err := config.LoadStorefront()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.NewWithWriter("storefront", cfg.LogLevel, errOut)
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newShopCmd(e), newProductsCmd(e))
	return root
}

func newShopCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Start an interactive shopping session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, closeRelay, err := relay.New(e.cfg, e.log)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeRelay(); err != nil {
					e.log.Warn("failed to close relay", slog.String("error", err.Error()))
				}
			}()

			session := shell.NewSession(e.catalog(), r, cmd.OutOrStdout(), e.log)
			e.log.Debug("shopping session",
				slog.String("session_id", session.ID()),
				slog.String("relay", r.Name()),
				slog.String("catalog_url", e.cfg.CatalogURL),
			)
			err = session.Run(cmd.Context(), cmd.InOrStdin())
			if errors.Is(err, context.Canceled) {
				// Interrupted: end the session like quit.
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			return err
		},
	}
}

func newProductsCmd(e *env) *cobra.Command {
	var brand string

	cmd := &cobra.Command{
		Use:   "products [category|all] [type|all]",
		Short: "List catalog products once and exit",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := e.catalog()

			var (
				products []domain.Product
				err      error
			)
			if brand != "" {
				products, err = catalog.ListByBrand(cmd.Context(), brand)
			} else {
				var f domain.Filter
				if len(args) > 0 {
					f.Category = args[0]
				}
				if len(args) > 1 {
					f.Type = args[1]
				}
				products, err = catalog.List(cmd.Context(), f)
			}
			if err != nil {
				return err
			}
			shell.RenderProducts(cmd.OutOrStdout(), products, nil)
			return nil
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "", "only list products of this brand")
	return cmd
}

func main() {
	// Create a context that is cancelled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		slog.Error("storefront error", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
}
