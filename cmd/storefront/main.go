// Command storefront is the terminal client of the coffee shop.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Skotchmaster/coffee_shop/internal/notice"
	"github.com/Skotchmaster/coffee_shop/internal/session"
	"github.com/Skotchmaster/coffee_shop/internal/storefront"
	"github.com/Skotchmaster/coffee_shop/pkg/apiclient"
	"github.com/Skotchmaster/coffee_shop/pkg/config"
	"github.com/Skotchmaster/coffee_shop/pkg/kvstore"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(execute(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr))
}

// shop is everything a command can reach.
type shop struct {
	cfg       *config.Config
	out       io.Writer
	notify    notice.Notifier
	session   *session.Controller
	catalog   *storefront.Catalog
	cart      *storefront.Cart
	favorites *storefront.Favorites
	orders    *storefront.Orders
	account   *storefront.Account
}

var errUsage = errors.New("usage")

func execute(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	logger := logging.NewWithWriter(stderr, cfg.LogLevel)
	ctx = logging.IntoContext(ctx, logger)
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	store, err := kvstore.Open(ctx, cfg.StoreURL)
	if err != nil {
		logger.Error("store_open_failed", "error", err)
		fmt.Fprintf(stderr, "cannot open local store: %v\n", err)
		return 1
	}
	defer store.Close()

	notifier := notice.NewWriter(stdout)
	client := apiclient.New(cfg.APIURL)
	sess := session.New(client, store, session.WithNotifier(notifier), session.WithLogger(logger))
	sess.Restore(ctx)

	s := &shop{
		cfg:       cfg,
		out:       stdout,
		notify:    notifier,
		session:   sess,
		catalog:   storefront.NewCatalog(client, sess),
		cart:      storefront.NewCart(client, sess),
		favorites: storefront.NewFavorites(client, sess),
		orders:    storefront.NewOrders(client, sess),
		account:   storefront.NewAccount(client, sess),
	}

	if err := cmd.run(ctx, s, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: storefront %s %s\n", args[0], cmd.usage)
			return 2
		}
		notifier.Notify(ctx, notice.FromError(cmd.title, err, fallbackMessage(err, cmd.fallback)))
		if apiclient.IsUnauthorized(err) && sess.State() == session.Authenticated {
			fmt.Fprintln(stdout, "Your session may have expired; run \"storefront login\" again.")
		}
		return 1
	}
	return 0
}

// fallbackMessage covers the client-side failures that never reached the
// server.
func fallbackMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, storefront.ErrNotAuthenticated):
		return "Please log in first"
	case errors.Is(err, storefront.ErrForbidden):
		return "Admins only"
	case errors.Is(err, storefront.ErrEmptyCart):
		return "Your cart is empty"
	case errors.Is(err, storefront.ErrNotInCart):
		return "That product is not in your cart"
	case errors.Is(err, storefront.ErrPasswordMismatch):
		return "New passwords do not match"
	case errors.Is(err, storefront.ErrValidation), errors.Is(err, session.ErrValidation):
		return validationMessage(err)
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to answer"
	default:
		return fallback
	}
}

// validationMessage turns "price must be a positive number: validation" into
// "Price must be a positive number".
func validationMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": validation")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: storefront <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-15s %s\n", name, commands[name].usage)
	}
}
