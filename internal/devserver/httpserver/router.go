package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/service"
	"github.com/Skotchmaster/coffee_shop/internal/events"
	authmw "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/coffee_shop/pkg/middleware/logging"
)

type Deps struct {
	DB           *gorm.DB
	Auth         *authmw.BearerAuth
	AuthHandler  *AuthHTTP
	Catalog      *CatalogHTTP
	CartHandler  *CartHTTP
	FavHandler   *FavoriteHTTP
	OrderHandler *OrderHTTP
}

// NewDeps wires the services over one database and event publisher.
func NewDeps(db *gorm.DB, secret []byte, ttl time.Duration, pub events.Publisher) *Deps {
	r := &repo.GormRepo{DB: db}
	return &Deps{
		DB:   db,
		Auth: authmw.NewBearerAuth(secret),
		AuthHandler: &AuthHTTP{Svc: &service.AuthService{
			Repo: r, JWTSecret: secret, TokenTTL: ttl, Events: pub,
		}},
		Catalog:      &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:  &CartHTTP{Svc: &service.CartService{Repo: r}},
		FavHandler:   &FavoriteHTTP{Svc: &service.FavoriteService{Repo: r}},
		OrderHandler: &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: pub}},
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/register", d.AuthHandler.Register)
	auth.GET("/me", d.AuthHandler.Me, d.Auth.RequireAuth)
	auth.PUT("/updateUser", d.AuthHandler.UpdateUser, d.Auth.RequireAuth)
	auth.PUT("/changePassword", d.AuthHandler.ChangePassword, d.Auth.RequireAuth)

	api.GET("/categories", d.Catalog.ListCategories)
	api.POST("/categories", d.Catalog.CreateCategory, d.Auth.RequireAdmin)
	api.DELETE("/categories/:id", d.Catalog.DeleteCategory, d.Auth.RequireAdmin)

	api.GET("/products", d.Catalog.ListProducts)
	api.POST("/products", d.Catalog.CreateProduct, d.Auth.RequireAdmin)
	api.DELETE("/products/:id", d.Catalog.DeleteProduct, d.Auth.RequireAdmin)

	carts := api.Group("/carts", d.Auth.RequireAuth)
	carts.GET("", d.CartHandler.GetCart)
	carts.POST("/add", d.CartHandler.AddToCart)
	carts.PUT("/update/:productId", d.CartHandler.UpdateCart)
	carts.DELETE("/remove/:productId", d.CartHandler.RemoveFromCart)

	favs := api.Group("/favorites", d.Auth.RequireAuth)
	favs.GET("", d.FavHandler.List)
	favs.POST("/add", d.FavHandler.Add)
	favs.DELETE("/remove/:productId", d.FavHandler.Remove)

	orders := api.Group("/orders", d.Auth.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/my-orders", d.OrderHandler.MyOrders)
}

// New builds the echo instance with the shared middleware stack.
func New(log *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), loggingmw.RequestLogger(log))
	Register(e, d)
	return e
}
