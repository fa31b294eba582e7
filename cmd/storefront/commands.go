package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Skotchmaster/coffee_shop/internal/notice"
	"github.com/Skotchmaster/coffee_shop/internal/session"
	"github.com/Skotchmaster/coffee_shop/internal/storefront"
)

type command struct {
	usage    string
	title    string
	fallback string
	run      func(ctx context.Context, s *shop, args []string) error
}

var commands = map[string]command{
	"login":          {usage: "-email E -password P", title: "Login failed", fallback: "Invalid email or password", run: runLogin},
	"logout":         {usage: "", title: "Logout failed", fallback: "Could not log out", run: runLogout},
	"register":       {usage: "-name N -email E -password P", title: "Registration failed", fallback: "Could not create the account", run: runRegister},
	"whoami":         {usage: "", title: "Error", fallback: "Could not read the session", run: runWhoami},
	"home":           {usage: "[-category ID]", title: "Error", fallback: "Failed to load the menu", run: runHome},
	"cart":           {usage: "", title: "Error", fallback: "Failed to load cart", run: runCart},
	"cart-add":       {usage: "-product ID [-qty N]", title: "Error", fallback: "Failed to add to cart", run: runCartAdd},
	"cart-inc":       {usage: "-product ID", title: "Error", fallback: "Failed to update quantity", run: runCartInc},
	"cart-dec":       {usage: "-product ID", title: "Error", fallback: "Failed to update quantity", run: runCartDec},
	"cart-rm":        {usage: "-product ID", title: "Error", fallback: "Failed to remove item", run: runCartRemove},
	"favorites":      {usage: "", title: "Error", fallback: "Failed to load favorites", run: runFavorites},
	"fav-toggle":     {usage: "-product ID", title: "Error", fallback: "Failed to update favorites", run: runFavToggle},
	"checkout":       {usage: "[-payment METHOD]", title: "Order failed", fallback: "Failed to place order", run: runCheckout},
	"orders":         {usage: "", title: "Error", fallback: "Failed to load orders", run: runOrders},
	"profile-update": {usage: "-name N -email E", title: "Update failed", fallback: "Failed to update profile", run: runProfileUpdate},
	"password":       {usage: "-current P -new P -confirm P", title: "Update failed", fallback: "Failed to change password", run: runPassword},
	"category-add":   {usage: "-name N", title: "Error", fallback: "Failed to add category", run: runCategoryAdd},
	"category-rm":    {usage: "-id ID", title: "Error", fallback: "Failed to delete category", run: runCategoryRemove},
	"product-add":    {usage: "-name N -price P [-image URL] [-category ID]", title: "Error", fallback: "Failed to add product", run: runProductAdd},
	"product-rm":     {usage: "-id ID", title: "Error", fallback: "Failed to delete product", run: runProductRemove},
}

func flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q: %w", fs.Arg(0), errUsage)
	}
	return nil
}

func noFlags(name string, args []string) error {
	return parse(flags(name), args)
}

func productFlag(name string, args []string) (string, error) {
	fs := flags(name)
	id := fs.String("product", "", "product id")
	if err := parse(fs, args); err != nil {
		return "", err
	}
	if *id == "" {
		return "", fmt.Errorf("-product is required: %w", errUsage)
	}
	return *id, nil
}

func idFlag(name string, args []string) (string, error) {
	fs := flags(name)
	id := fs.String("id", "", "id")
	if err := parse(fs, args); err != nil {
		return "", err
	}
	if *id == "" {
		return "", fmt.Errorf("-id is required: %w", errUsage)
	}
	return *id, nil
}

func runLogin(ctx context.Context, s *shop, args []string) error {
	fs := flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}
	u, err := s.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Login successful", "Welcome back, "+u.Name))
	return nil
}

func runLogout(ctx context.Context, s *shop, args []string) error {
	if err := noFlags("logout", args); err != nil {
		return err
	}
	s.session.Logout(ctx)
	return nil
}

func runRegister(ctx context.Context, s *shop, args []string) error {
	fs := flags("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}
	u, err := s.session.Register(ctx, session.RegisterInput{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Registration successful", "Welcome, "+u.Name))
	return nil
}

func runWhoami(_ context.Context, s *shop, args []string) error {
	if err := noFlags("whoami", args); err != nil {
		return err
	}
	u, ok := s.session.User()
	if !ok {
		fmt.Fprintln(s.out, "anonymous")
		return nil
	}
	fmt.Fprintf(s.out, "%s <%s> role=%s\n", u.Name, u.Email, u.Role)
	return nil
}

func runHome(ctx context.Context, s *shop, args []string) error {
	fs := flags("home")
	category := fs.String("category", "", "only show this category")
	if err := parse(fs, args); err != nil {
		return err
	}
	home, err := s.catalog.Home(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tID")
	for _, c := range home.Categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.ID)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PRODUCT\tPRICE\tCATEGORY\tID")
	for _, p := range storefront.FilterByCategory(home.Products, *category) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Price, p.Category.Name, p.ID)
	}
	return tw.Flush()
}

func printCart(s *shop, items []storefront.CartItem) error {
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Your cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tPRICE\tQTY\tID")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", it.Product.Name, it.Product.Price, it.Quantity, it.Product.ID)
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t\t\n", storefront.FormatMoney(storefront.CartTotal(items)))
	return tw.Flush()
}

func runCart(ctx context.Context, s *shop, args []string) error {
	if err := noFlags("cart", args); err != nil {
		return err
	}
	items, err := s.cart.Refresh(ctx)
	if err != nil {
		return err
	}
	return printCart(s, items)
}

func runCartAdd(ctx context.Context, s *shop, args []string) error {
	fs := flags("cart-add")
	product := fs.String("product", "", "product id")
	qty := fs.Int("qty", 1, "quantity")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := s.cart.Add(ctx, *product, *qty); err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Added to cart", ""))
	return nil
}

// cartStep runs a line change and prints the cart the server now holds.
func cartStep(name string, step func(*storefront.Cart, context.Context, string) error) func(context.Context, *shop, []string) error {
	return func(ctx context.Context, s *shop, args []string) error {
		id, err := productFlag(name, args)
		if err != nil {
			return err
		}
		if err := step(s.cart, ctx, id); err != nil {
			return err
		}
		items, err := s.cart.Refresh(ctx)
		if err != nil {
			return err
		}
		return printCart(s, items)
	}
}

var (
	runCartInc    = cartStep("cart-inc", (*storefront.Cart).Increase)
	runCartDec    = cartStep("cart-dec", (*storefront.Cart).Decrease)
	runCartRemove = cartStep("cart-rm", (*storefront.Cart).Remove)
)

func runFavorites(ctx context.Context, s *shop, args []string) error {
	if err := noFlags("favorites", args); err != nil {
		return err
	}
	favs, err := s.favorites.Refresh(ctx)
	if err != nil {
		return err
	}
	if len(favs) == 0 {
		fmt.Fprintln(s.out, "No favorites yet")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tPRICE\tID")
	for _, f := range favs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Product.Name, f.Product.Price, f.Product.ID)
	}
	return tw.Flush()
}

func runFavToggle(ctx context.Context, s *shop, args []string) error {
	id, err := productFlag("fav-toggle", args)
	if err != nil {
		return err
	}
	added, err := s.favorites.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if added {
		s.notify.Notify(ctx, notice.Success("Added to favorites", ""))
	} else {
		s.notify.Notify(ctx, notice.Success("Removed from favorites", ""))
	}
	return nil
}

func runCheckout(ctx context.Context, s *shop, args []string) error {
	fs := flags("checkout")
	payment := fs.String("payment", s.cfg.PaymentMethod, "payment method")
	if err := parse(fs, args); err != nil {
		return err
	}
	items, err := s.cart.Refresh(ctx)
	if err != nil {
		return err
	}
	order, err := s.orders.PlaceOrder(ctx, items, *payment)
	if err != nil {
		return err
	}
	s.cart.Invalidate()
	s.notify.Notify(ctx, notice.Success("Order placed", fmt.Sprintf("Order %s, total %s", order.ID, order.TotalPrice)))
	return nil
}

func runOrders(ctx context.Context, s *shop, args []string) error {
	if err := noFlags("orders", args); err != nil {
		return err
	}
	orders, err := s.orders.History(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(s.out, "No orders yet")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tDATE\tSTATUS\tTOTAL\tITEMS")
	for _, o := range orders {
		names := make([]string, 0, len(o.OrderItems))
		for _, it := range o.OrderItems {
			names = append(names, fmt.Sprintf("%s x%d", it.Product.Name, it.Quantity))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, o.TotalPrice, strings.Join(names, ", "))
	}
	return tw.Flush()
}

func runProfileUpdate(ctx context.Context, s *shop, args []string) error {
	fs := flags("profile-update")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	if err := parse(fs, args); err != nil {
		return err
	}
	u, err := s.account.UpdateProfile(ctx, *name, *email)
	if err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Profile updated", fmt.Sprintf("%s <%s>", u.Name, u.Email)))
	return nil
}

func runPassword(ctx context.Context, s *shop, args []string) error {
	fs := flags("password")
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	confirm := fs.String("confirm", "", "new password again")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := s.account.ChangePassword(ctx, *current, *next, *confirm); err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Password updated", ""))
	return nil
}

func runCategoryAdd(ctx context.Context, s *shop, args []string) error {
	fs := flags("category-add")
	name := fs.String("name", "", "category name")
	if err := parse(fs, args); err != nil {
		return err
	}
	c, err := s.catalog.AddCategory(ctx, *name)
	if err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Category added", c.Name+" "+c.ID))
	return nil
}

func runCategoryRemove(ctx context.Context, s *shop, args []string) error {
	id, err := idFlag("category-rm", args)
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Category deleted", ""))
	return nil
}

func runProductAdd(ctx context.Context, s *shop, args []string) error {
	fs := flags("product-add")
	var in storefront.ProductInput
	fs.StringVar(&in.Name, "name", "", "product name")
	fs.StringVar(&in.Price, "price", "", "price")
	fs.StringVar(&in.ImageURL, "image", "", "image url")
	fs.StringVar(&in.CategoryID, "category", "", "category id")
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := s.catalog.AddProduct(ctx, in)
	if err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Product added", p.Name+" "+p.ID))
	return nil
}

func runProductRemove(ctx context.Context, s *shop, args []string) error {
	id, err := idFlag("product-rm", args)
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.notify.Notify(ctx, notice.Success("Product deleted", ""))
	return nil
}
