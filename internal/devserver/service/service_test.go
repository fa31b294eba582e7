package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
	"github.com/Skotchmaster/coffee_shop/internal/events"
	"github.com/Skotchmaster/coffee_shop/pkg/db"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

func newRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := db.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := &repo.GormRepo{DB: gdb}
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	rec := &events.Recorder{}
	svc := &AuthService{Repo: newRepo(t), JWTSecret: []byte("service-test-secret"), TokenTTL: time.Hour, Events: rec}
	ctx := context.Background()

	res, err := svc.Register(ctx, "Ann", "ann@coffee.test", "pw")
	require.NoError(t, err)

	claims, err := tokens.AccessClaimsFromToken(res.Token, []byte("service-test-secret"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims.Role)

	_, err = svc.Register(ctx, "Ann", "ann@coffee.test", "pw")
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Register(ctx, "", "x@coffee.test", "pw")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(ctx, "ann@coffee.test", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ann@coffee.test", "pw")
	require.NoError(t, err)

	require.Len(t, rec.Events(), 1)
	assert.Equal(t, events.TypeUserRegistered, rec.Events()[0].Event.(events.UserRegistered).Type)
}

func TestAuthService_SeedAdminIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newRepo(t), JWTSecret: []byte("service-test-secret"), TokenTTL: time.Hour}
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin@coffee.test", "pw"))
	require.NoError(t, svc.SeedAdmin(ctx, "admin@coffee.test", "other"))

	res, err := svc.Login(ctx, "admin@coffee.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
}

func TestOrderService_PricesFromCatalog(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	ctx := context.Background()
	p := &models.Product{Name: "Latte", Price: 2.5}
	require.NoError(t, r.CreateProduct(ctx, p))

	rec := &events.Recorder{}
	svc := &OrderService{Repo: r, Events: rec}
	userID := uuid.New()

	order, err := svc.CreateOrder(ctx, userID, transport.CreateOrderRequest{
		OrderItems: []transport.OrderItemRequest{{Product: p.ID.String(), Quantity: 3, Price: 0.01}},
		TotalPrice: 0.03,
	})
	require.NoError(t, err)
	assert.Equal(t, 7.5, order.TotalPrice)
	assert.Equal(t, DefaultPaymentMethod, order.PaymentMethod)
	assert.Equal(t, 2.5, order.Items[0].Price)
	require.Len(t, rec.Events(), 1)

	tests := []struct {
		name string
		req  transport.CreateOrderRequest
		want error
	}{
		{name: "no items", req: transport.CreateOrderRequest{}, want: ErrValidation},
		{name: "bad id", req: transport.CreateOrderRequest{OrderItems: []transport.OrderItemRequest{{Product: "x", Quantity: 1}}}, want: ErrValidation},
		{name: "zero quantity", req: transport.CreateOrderRequest{OrderItems: []transport.OrderItemRequest{{Product: p.ID.String()}}}, want: ErrValidation},
		{name: "unknown product", req: transport.CreateOrderRequest{OrderItems: []transport.OrderItemRequest{{Product: uuid.NewString(), Quantity: 1}}}, want: ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, userID, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.ProductRequest{Name: "", Price: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, transport.ProductRequest{Name: "Latte", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, transport.ProductRequest{Name: "Latte", Price: 1, Category: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := svc.CreateProduct(ctx, transport.ProductRequest{Name: " Latte ", Price: 1})
	require.NoError(t, err)
	assert.Equal(t, "Latte", p.Name)
}
