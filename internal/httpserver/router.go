package httpserver

import (
	"context"
	"errors"
	"log"
	"strings"

	"boomstore/internal/cartstore"
	"boomstore/internal/domain"
	"boomstore/internal/service/admin"
	"boomstore/internal/service/catalog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService serves the public product listing.
type CatalogService interface {
	List(ctx context.Context, p catalog.Params) ([]domain.Product, catalog.Pagination, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// AuthService resolves sessions and issues tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	UserFromToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

// AdminService performs the back-office mutations.
type AdminService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in admin.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in admin.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error)
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, in domain.Settings) (*domain.Settings, error)
	GetAnalytics(ctx context.Context, rangeKey string) (*admin.Analytics, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	Catalog CatalogService
	Auth    AuthService
	Admin   AdminService
	Carts   cartstore.Storage
}

// buildRouter wires all routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins string) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.Auth == nil || deps.Admin == nil || deps.Carts == nil {
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if allowedOrigins == "" || allowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", cartSessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(logger, deps.Catalog))
	router.GET("/products/:slug", getProductHandler(logger, deps.Catalog))
	router.GET("/categories", listCategoriesHandler(logger, deps.Catalog))

	router.POST("/auth/login", loginHandler(logger, deps.Auth))
	router.POST("/auth/logout", logoutHandler(deps.Auth))
	router.GET("/auth/me", meHandler(deps.Auth))

	cart := router.Group("/cart")
	{
		cart.GET("", getCartHandler(logger, deps.Carts))
		cart.DELETE("", clearCartHandler(logger, deps.Carts))
		cart.POST("/items", addCartItemHandler(logger, deps.Carts))
		cart.PUT("/items/:productId", updateCartItemHandler(logger, deps.Carts))
		cart.DELETE("/items/:productId", removeCartItemHandler(logger, deps.Carts))
	}

	adminGroup := router.Group("/admin", requireAdmin(deps.Auth))
	{
		adminGroup.GET("/products", adminListProductsHandler(logger, deps.Admin))
		adminGroup.POST("/products", adminCreateProductHandler(logger, deps.Admin))
		adminGroup.PUT("/products/:id", adminUpdateProductHandler(logger, deps.Admin))
		adminGroup.DELETE("/products/:id", adminDeleteProductHandler(logger, deps.Admin))
		adminGroup.GET("/orders", adminListOrdersHandler(logger, deps.Admin))
		adminGroup.PUT("/orders/:id", adminUpdateOrderHandler(logger, deps.Admin))
		adminGroup.GET("/users", adminListUsersHandler(logger, deps.Admin))
		adminGroup.PUT("/users/:id", adminUpdateUserHandler(logger, deps.Admin))
		adminGroup.GET("/settings", adminGetSettingsHandler(logger, deps.Admin))
		adminGroup.PUT("/settings", adminUpdateSettingsHandler(logger, deps.Admin))
		adminGroup.GET("/analytics", adminAnalyticsHandler(logger, deps.Admin))
	}

	return router, nil
}
