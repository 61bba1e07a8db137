package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"shopfront/internal/cache"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler      *AuthHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	CouponHandler    *CouponHandler
	OrderHandler     *OrderHandler
	ReviewHandler    *ReviewHandler
	AddressHandler   *AddressHandler
	DashboardHandler *DashboardHandler
}

func NewDeps(db *sqlx.DB, cch *cache.Cache) *Deps {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	addrRepo := repos.NewAddressRepo(db)
	statsRepo := repos.NewStatsRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	stockSvc := services.NewStockService(prodRepo)
	couponSvc := services.NewCouponService(couponRepo)
	orderSvc := services.NewOrderService(prodRepo, orderRepo, couponSvc)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)
	addrSvc := services.NewAddressService(addrRepo)
	dashSvc := services.NewDashboardService(userRepo, prodRepo, statsRepo, cch)

	return &Deps{
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Stock: stockSvc},
		CouponHandler:    &CouponHandler{Coupons: couponSvc},
		OrderHandler:     &OrderHandler{Orders: orderSvc},
		ReviewHandler:    &ReviewHandler{Reviews: reviewSvc},
		AddressHandler:   &AddressHandler{Addrs: addrSvc},
		DashboardHandler: &DashboardHandler{Dash: dashSvc},
	}
}

// Register mounts the API under /api/v1.
func (d *Deps) Register(app *fiber.App) {
	// Attach user to context when a session is present, so public
	// endpoints can make admin-only data visible where appropriate.
	app.Use(func(c *fiber.Ctx) error {
		if sid := SessionID(c); sid != "" {
			if u, err := d.Auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	api := app.Group("/api/v1")

	// Auth (register/login throttled)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry later"})
		},
	})
	api.Post("/auth/register", authLimiter, d.AuthHandler.Register)
	api.Post("/auth/login", authLimiter, d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)
	api.Get("/auth/me", RequireUser(d.Auth), d.AuthHandler.Me)

	// Catalog
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/categories/:id", d.CategoryHandler.Get)
	api.Post("/categories", RequireAdmin(d.Auth), d.CategoryHandler.Create)
	api.Put("/categories/:id", RequireAdmin(d.Auth), d.CategoryHandler.Update)
	api.Delete("/categories/:id", RequireAdmin(d.Auth), d.CategoryHandler.Delete)

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Get)
	api.Post("/products", RequireAdmin(d.Auth), d.ProductHandler.Create)
	api.Put("/products/:id", RequireAdmin(d.Auth), d.ProductHandler.Update)
	api.Delete("/products/:id", RequireAdmin(d.Auth), d.ProductHandler.Delete)
	api.Patch("/products/:id/stock", RequireAdmin(d.Auth), d.ProductHandler.AdjustStock)

	// Reviews
	api.Get("/products/:id/reviews", d.ReviewHandler.List)
	api.Post("/products/:id/reviews", RequireUser(d.Auth), d.ReviewHandler.Create)
	api.Put("/reviews/:id", RequireUser(d.Auth), d.ReviewHandler.Update)
	api.Delete("/reviews/:id", RequireUser(d.Auth), d.ReviewHandler.Delete)

	// Coupons
	api.Post("/coupons/validate", RequireUser(d.Auth), d.CouponHandler.Validate)
	api.Get("/coupons", RequireAdmin(d.Auth), d.CouponHandler.List)
	api.Get("/coupons/:id", RequireAdmin(d.Auth), d.CouponHandler.Get)
	api.Post("/coupons", RequireAdmin(d.Auth), d.CouponHandler.Create)
	api.Put("/coupons/:id", RequireAdmin(d.Auth), d.CouponHandler.Update)
	api.Delete("/coupons/:id", RequireAdmin(d.Auth), d.CouponHandler.Delete)

	// Orders
	api.Post("/orders", RequireUser(d.Auth), d.OrderHandler.Create)
	api.Get("/orders", RequireUser(d.Auth), d.OrderHandler.History)
	api.Get("/orders/:id", RequireUser(d.Auth), d.OrderHandler.Get)

	// Addresses
	api.Get("/addresses", RequireUser(d.Auth), d.AddressHandler.List)
	api.Post("/addresses", RequireUser(d.Auth), d.AddressHandler.Create)
	api.Put("/addresses/:id", RequireUser(d.Auth), d.AddressHandler.Update)
	api.Delete("/addresses/:id", RequireUser(d.Auth), d.AddressHandler.Delete)

	// Admin
	admin := api.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/dashboard", d.DashboardHandler.Stats)
	admin.Get("/orders", d.OrderHandler.ListLatest)
	admin.Patch("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.Get("/users", d.AuthHandler.ListUsers)
	admin.Post("/users", d.AuthHandler.RegisterAdmin)
}
