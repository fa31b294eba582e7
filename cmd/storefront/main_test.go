package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/devtest"
	"github.com/Skotchmaster/coffee_shop/pkg/config"
)

type cli struct {
	t   *testing.T
	cfg *config.Config
}

func newCLI(t *testing.T) cli {
	t.Helper()
	srv := devtest.Start(t)
	return cli{t: t, cfg: &config.Config{
		APIURL:         srv.APIURL(),
		StoreURL:       "sqlite://" + filepath.Join(t.TempDir(), "storefront.db"),
		LogLevel:       "error",
		RequestTimeout: 10 * time.Second,
		PaymentMethod:  "COD",
	}}
}

func (c cli) run(args ...string) (int, string) {
	c.t.Helper()
	var out bytes.Buffer
	code := execute(context.Background(), c.cfg, args, &out, io.Discard)
	return code, out.String()
}

func (c cli) mustRun(args ...string) string {
	c.t.Helper()
	code, out := c.run(args...)
	require.Equal(c.t, 0, code, out)
	return out
}

// lastField picks the id printed at the end of an "added" notice.
func lastField(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

func TestExecute_Usage(t *testing.T) {
	t.Parallel()

	c := newCLI(t)
	code, out := c.run()
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "cart-add")

	code, _ = c.run("brew")
	assert.Equal(t, 2, code)

	code, _ = c.run("whoami", "extra")
	assert.Equal(t, 2, code)

	code, _ = c.run("cart-inc")
	assert.Equal(t, 2, code)
}

func TestExecute_ShoppingSession(t *testing.T) {
	t.Parallel()

	c := newCLI(t)
	assert.Equal(t, "anonymous\n", c.mustRun("whoami"))

	code, out := c.run("cart")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Please log in first")

	code, out = c.run("login", "-email", devtest.AdminEmail, "-password", "wrong")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Login failed: Invalid email or password")

	c.mustRun("login", "-email", devtest.AdminEmail, "-password", devtest.AdminPassword)
	catID := lastField(c.mustRun("category-add", "-name", "Espresso"))
	require.NotEmpty(t, catID)
	productID := lastField(c.mustRun("product-add", "-name", "Latte", "-price", "2.5", "-category", catID))
	require.NotEmpty(t, productID)

	code, out = c.run("product-add", "-name", "Free", "-price", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Price must be a positive number")

	assert.Contains(t, c.mustRun("logout"), "Logged out")
	assert.Equal(t, "anonymous\n", c.mustRun("whoami"))

	c.mustRun("register", "-name", "Ann", "-email", "ann@coffee.test", "-password", "pw")
	assert.Equal(t, "Ann <ann@coffee.test> role=user\n", c.mustRun("whoami"))

	code, out = c.run("category-add", "-name", "Tea")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Admins only")

	home := c.mustRun("home", "-category", catID)
	assert.Contains(t, home, "Espresso")
	assert.Contains(t, home, "Latte")
	assert.Contains(t, home, "2.50")

	c.mustRun("cart-add", "-product", productID)
	cart := c.mustRun("cart-inc", "-product", productID)
	assert.Contains(t, cart, "5.00")

	fav := c.mustRun("fav-toggle", "-product", productID)
	assert.Contains(t, fav, "Added to favorites")
	assert.Contains(t, c.mustRun("favorites"), "Latte")

	assert.Contains(t, c.mustRun("checkout"), "Order placed")
	assert.Equal(t, "Your cart is empty\n", c.mustRun("cart"))

	code, out = c.run("checkout")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Your cart is empty")

	assert.Contains(t, c.mustRun("orders"), "Latte x2")

	code, out = c.run("password", "-current", "pw", "-new", "a", "-confirm", "b")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "New passwords do not match")
	assert.Contains(t, c.mustRun("password", "-current", "pw", "-new", "brew", "-confirm", "brew"), "Password updated")

	assert.Contains(t, c.mustRun("profile-update", "-name", "Annie", "-email", "annie@coffee.test"), "Annie <annie@coffee.test>")
}

func TestValidationMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "price must be a positive number: validation", want: "Price must be a positive number"},
		{in: "quantity must be more than zero: validation", want: "Quantity must be more than zero"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validationMessage(errorString(tt.in)))
		})
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }
