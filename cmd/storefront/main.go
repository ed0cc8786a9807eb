// Command storefront fills a cart from the hardware catalog and optionally
// checks it out against the configured order endpoint.
//
//	storefront [-checkout] [-empty] <item-id>...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/diagnostics"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/storefront"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

var errCheckoutFailed = errors.New("something went wrong")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		doCheckout bool
		doEmpty    bool
		list       bool
	)
	fs.BoolVar(&doCheckout, "checkout", false, "check the cart out after adding the items")
	fs.BoolVar(&doEmpty, "empty", false, "empty the cart at the end")
	fs.BoolVar(&list, "list", false, "list the catalog and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("env", cfg.Env))

	otel.SetTextMapPropagator(propagation.TraceContext{})

	reporter := diagnostics.NewScope(log, diagnostics.DefaultMaxBreadcrumbs)

	store, err := storefront.New(cfg, reporter, log, storefront.Options{})
	if err != nil {
		return fmt.Errorf("storefront.New: %w", err)
	}

	if list {
		printCatalog(out, store)
		return nil
	}

	for _, id := range fs.Args() {
		if _, err := store.Buy(id); err != nil {
			return fmt.Errorf("buy: %w", err)
		}
	}

	if doCheckout {
		if !store.Summary().CanCheckout() {
			return fmt.Errorf("checkout: %w", domain.ErrEmptyCart)
		}
		store.PlaceOrder(ctx)
	}

	summary := store.Summary()
	printSummary(out, summary)

	if doEmpty {
		store.EmptyCart()
		fmt.Fprintln(out, "Cart emptied")
	}

	if summary.State == domain.CheckoutFailure {
		return errCheckoutFailed
	}
	return nil
}

func printCatalog(out io.Writer, store *storefront.Storefront) {
	for _, item := range store.Catalog().Items() {
		fmt.Fprintf(out, "%-8s %-8s %s\n", item.ID, item.Name, item.Price())
	}
}

func printSummary(out io.Writer, s storefront.Summary) {
	fmt.Fprintf(out, "Hi, %s!\n", s.Email)

	if s.View.IsEmpty() {
		fmt.Fprintln(out, "Your cart is empty")
	} else {
		for _, line := range s.View.Lines {
			fmt.Fprintf(out, "%s x%d\t%s\n", line.Item.Name, line.Quantity, line.Subtotal())
		}
		fmt.Fprintf(out, "Total\t%s\n", s.View.Total())
	}

	switch s.State {
	case domain.CheckoutSuccess:
		fmt.Fprintln(out, "Thank you for your purchase!")
	case domain.CheckoutFailure:
		fmt.Fprintln(out, "Something went wrong")
	}
}
