package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/session"
)

func TestCatalog_Home(t *testing.T) {
	t.Parallel()

	api := newStubAPI().
		reply(http.MethodGet, "/categories", `[{"_id":"c1","categoryName":"Coffee"},{"_id":"c2","categoryName":"Tea"}]`).
		reply(http.MethodGet, "/products", `[
			{"_id":"p1","productName":"Latte","price":3.5,"category":{"_id":"c1","categoryName":"Coffee"}},
			{"_id":"p2","productName":"Sencha","price":2,"category":"c2"}
		]`)
	c := NewCatalog(api, anonymous())

	page, err := c.Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, page.Categories, 2)
	assert.Len(t, page.Products, 2)

	calls := api.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, "/categories", calls[0].path)
	assert.Equal(t, "/products", calls[1].path)

	tea := FilterByCategory(page.Products, "c2")
	require.Len(t, tea, 1)
	assert.Equal(t, "p2", tea[0].ID)
	assert.Len(t, FilterByCategory(page.Products, ""), 2)
	assert.Empty(t, FilterByCategory(page.Products, "missing"))
}

func TestCatalog_HomeStopsOnCategoryError(t *testing.T) {
	t.Parallel()

	api := newStubAPI().fail(http.MethodGet, "/categories", badRequest("boom"))
	_, err := NewCatalog(api, anonymous()).Home(context.Background())
	require.Error(t, err)
	assert.Len(t, api.recorded(), 1)
}

func TestCatalog_AdminGuards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, s := range []Session{anonymous(), signedIn("user")} {
		api := newStubAPI()
		c := NewCatalog(api, s)

		_, err := c.AddCategory(ctx, "Tea")
		assert.Error(t, err)
		assert.Error(t, c.DeleteCategory(ctx, "c1"))
		_, err = c.AddProduct(ctx, ProductInput{Name: "Latte", Price: "3"})
		assert.Error(t, err)
		assert.Error(t, c.DeleteProduct(ctx, "p1"))

		assert.Empty(t, api.recorded())
	}
}

func TestCatalog_AddCategory(t *testing.T) {
	t.Parallel()

	api := newStubAPI().reply(http.MethodPost, "/categories", `{"_id":"c9","categoryName":"Cocoa"}`)
	c := NewCatalog(api, signedIn(session.RoleAdmin))

	_, err := c.AddCategory(context.Background(), "   ")
	require.ErrorIs(t, err, ErrValidation)

	got, err := c.AddCategory(context.Background(), " Cocoa ")
	require.NoError(t, err)
	assert.Equal(t, "c9", got.ID)

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"categoryName":"Cocoa"}`, calls[0].body)
}

func TestCatalog_AddProductValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ProductInput
		ok   bool
	}{
		{name: "valid", in: ProductInput{Name: "Latte", Price: "3.50", CategoryID: "c1"}, ok: true},
		{name: "no name", in: ProductInput{Price: "3"}},
		{name: "no price", in: ProductInput{Name: "Latte"}},
		{name: "not a number", in: ProductInput{Name: "Latte", Price: "abc"}},
		{name: "zero", in: ProductInput{Name: "Latte", Price: "0"}},
		{name: "negative", in: ProductInput{Name: "Latte", Price: "-1"}},
		{name: "nan", in: ProductInput{Name: "Latte", Price: "NaN"}},
		{name: "inf", in: ProductInput{Name: "Latte", Price: "+Inf"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newStubAPI().reply(http.MethodPost, "/products", `{"_id":"p1","productName":"Latte","price":3.5}`)
			c := NewCatalog(api, signedIn(session.RoleAdmin))

			_, err := c.AddProduct(context.Background(), tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, ErrValidation)
				assert.Empty(t, api.recorded())
				return
			}
			require.NoError(t, err)
			calls := api.recorded()
			require.Len(t, calls, 1)
			assert.JSONEq(t, `{"productName":"Latte","price":3.5,"imageURL":"","category":"c1"}`, calls[0].body)
		})
	}
}

func TestCatalog_DeleteEscapesID(t *testing.T) {
	t.Parallel()

	api := newStubAPI()
	c := NewCatalog(api, signedIn(session.RoleAdmin))

	require.NoError(t, c.DeleteProduct(context.Background(), "a/b"))
	require.ErrorIs(t, c.DeleteCategory(context.Background(), ""), ErrValidation)

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/products/a%2Fb", calls[0].path)
}
