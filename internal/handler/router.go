package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/handler/api"
	"food-delivery-api/internal/handler/middleware"
	"food-delivery-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine   *gin.Engine
	Config   config.Config
	Logger   *middleware.Logger
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
	Limiter  *middleware.RateLimiter
	Auth     *middleware.AuthMiddleware

	AuthHandler     *api.AuthHandler
	UserHandler     *api.UserHandler
	OutletHandler   *api.OutletHandler
	AddressHandler  *api.AddressHandler
	CatalogHandler  *api.CatalogHandler
	CartHandler     *api.CartHandler
	OrderHandler    *api.OrderHandler
	DeliveryHandler *api.DeliveryHandler
	CouponHandler   *api.CouponHandler
	ReviewHandler   *api.ReviewHandler
	ReportHandler   *api.ReportHandler
}

var (
	customerOnly = []user.Role{user.RoleCustomer}
	courierOnly  = []user.Role{user.RoleDelivery}
	staffSide    = []user.Role{user.RoleStaff, user.RoleManager, user.RoleSuperAdmin}
	management   = []user.Role{user.RoleManager, user.RoleSuperAdmin}
	superAdmin   = []user.Role{user.RoleSuperAdmin}
	cancellers   = []user.Role{user.RoleCustomer, user.RoleSuperAdmin}
)

func NewRouter(p RouterParams) {
	setupMiddleware(p)
	setupRoutes(p)
}

func setupMiddleware(p RouterParams) {
	slogger := p.Logger.GetSlogLogger()
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery(slogger))
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS, slogger))
	p.Engine.Use(p.Logger.LoggingMiddleware())
	p.Engine.Use(p.Metrics.Handler())
	p.Engine.Use(middleware.ErrorHandler(slogger))
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authMw := p.Auth
	requireAuth := authMw.RequireAuth()
	roles := func(rs []user.Role) []gin.HandlerFunc {
		return []gin.HandlerFunc{authMw.RequireRoles(rs...)}
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: p.AuthHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: p.AuthHandler.Login, Mw: []gin.HandlerFunc{p.Limiter.Handler()}},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: p.AuthHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: p.AuthHandler.Me},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(requireAuth)
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "", Handler: p.UserHandler.List, Mw: roles(management)},
				{Method: http.MethodPost, Path: "", Handler: p.UserHandler.Create, Mw: roles(management)},
				{Method: http.MethodGet, Path: "/staff", Handler: p.UserHandler.Staff, Mw: roles(management)},
				{Method: http.MethodGet, Path: "/delivery-persons", Handler: p.UserHandler.DeliveryPersons, Mw: roles(staffSide)},
				{Method: http.MethodGet, Path: "/:id", Handler: p.UserHandler.Get, Mw: roles(management)},
				{Method: http.MethodPatch, Path: "/:id/block", Handler: p.UserHandler.Block, Mw: roles(management)},
				{Method: http.MethodPatch, Path: "/:id/unblock", Handler: p.UserHandler.Unblock, Mw: roles(management)},
				{Method: http.MethodPatch, Path: "/:id/role", Handler: p.UserHandler.ChangeRole, Mw: roles(management)},
			})
		}

		outlets := apiGroup.Group("/outlets")
		{
			addRoutes(outlets, []route{
				{Method: http.MethodGet, Path: "", Handler: p.OutletHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: p.OutletHandler.Get},
				{Method: http.MethodPost, Path: "", Handler: p.OutletHandler.Create, Mw: append([]gin.HandlerFunc{requireAuth}, roles(superAdmin)...)},
				{Method: http.MethodPatch, Path: "/:id", Handler: p.OutletHandler.Update, Mw: append([]gin.HandlerFunc{requireAuth}, roles(superAdmin)...)},
			})
		}

		addresses := apiGroup.Group("/addresses")
		addresses.Use(requireAuth, authMw.RequireRoles(customerOnly...))
		{
			addRoutes(addresses, []route{
				{Method: http.MethodGet, Path: "", Handler: p.AddressHandler.List},
				{Method: http.MethodPost, Path: "", Handler: p.AddressHandler.Create},
				{Method: http.MethodGet, Path: "/default", Handler: p.AddressHandler.Default},
				{Method: http.MethodGet, Path: "/:id", Handler: p.AddressHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: p.AddressHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: p.AddressHandler.Delete},
				{Method: http.MethodPatch, Path: "/:id/default", Handler: p.AddressHandler.SetDefault},
			})
		}

		items := apiGroup.Group("/items")
		{
			addRoutes(items, []route{
				{Method: http.MethodGet, Path: "", Handler: p.CatalogHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: p.CatalogHandler.Get},
				{Method: http.MethodGet, Path: "/:id/reviews", Handler: p.ReviewHandler.ListByItem},
				{Method: http.MethodPost, Path: "", Handler: p.CatalogHandler.Create, Mw: append([]gin.HandlerFunc{requireAuth}, roles(management)...)},
				{Method: http.MethodPatch, Path: "/:id", Handler: p.CatalogHandler.Update, Mw: append([]gin.HandlerFunc{requireAuth}, roles(management)...)},
				{Method: http.MethodPatch, Path: "/:id/availability", Handler: p.CatalogHandler.SetAvailability, Mw: append([]gin.HandlerFunc{requireAuth}, roles(management)...)},
				{Method: http.MethodDelete, Path: "/:id", Handler: p.CatalogHandler.Delete, Mw: append([]gin.HandlerFunc{requireAuth}, roles(management)...)},
				{Method: http.MethodPost, Path: "/:id/reviews", Handler: p.ReviewHandler.Create, Mw: append([]gin.HandlerFunc{requireAuth}, roles(customerOnly)...)},
			})
		}

		cart := apiGroup.Group("/cart")
		cart.Use(requireAuth, authMw.RequireRoles(customerOnly...))
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: p.CartHandler.Get},
				{Method: http.MethodPost, Path: "/items", Handler: p.CartHandler.AddItem},
				{Method: http.MethodPatch, Path: "/items/:lineId", Handler: p.CartHandler.UpdateLine},
				{Method: http.MethodDelete, Path: "/items/:lineId", Handler: p.CartHandler.RemoveLine},
				{Method: http.MethodPatch, Path: "/coupon", Handler: p.CartHandler.ApplyCoupon},
				{Method: http.MethodDelete, Path: "/coupon", Handler: p.CartHandler.RemoveCoupon},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(requireAuth)
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "/start-checkout", Handler: p.OrderHandler.StartCheckout, Mw: roles(customerOnly)},
				{Method: http.MethodPost, Path: "/checkout", Handler: p.OrderHandler.Checkout, Mw: roles(customerOnly)},
				{Method: http.MethodGet, Path: "/my", Handler: p.OrderHandler.Mine, Mw: roles(customerOnly)},
				// Ownership is checked by the query, not the role.
				{Method: http.MethodGet, Path: "/:id", Handler: p.OrderHandler.Get},
				{Method: http.MethodGet, Path: "", Handler: p.OrderHandler.List, Mw: roles(staffSide)},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: p.OrderHandler.UpdateStatus, Mw: roles(staffSide)},
				{Method: http.MethodPatch, Path: "/:id/assign", Handler: p.OrderHandler.Assign, Mw: roles(staffSide)},
				{Method: http.MethodPatch, Path: "/:id/cancel", Handler: p.OrderHandler.Cancel, Mw: roles(cancellers)},
				{Method: http.MethodPost, Path: "/:id/refund", Handler: p.OrderHandler.Refund, Mw: roles(management)},
				{Method: http.MethodPost, Path: "/:id/repeat", Handler: p.OrderHandler.Repeat, Mw: roles(customerOnly)},
				{Method: http.MethodDelete, Path: "/:id", Handler: p.OrderHandler.Delete, Mw: roles(management)},
			})
		}

		delivery := apiGroup.Group("/delivery")
		delivery.Use(requireAuth, authMw.RequireRoles(courierOnly...))
		{
			addRoutes(delivery, []route{
				{Method: http.MethodGet, Path: "/assigned", Handler: p.DeliveryHandler.Assigned},
				{Method: http.MethodPatch, Path: "/:orderId/pick", Handler: p.DeliveryHandler.Pick},
				{Method: http.MethodPatch, Path: "/:orderId/location", Handler: p.DeliveryHandler.Location},
				{Method: http.MethodPatch, Path: "/:orderId/out-for-delivery", Handler: p.DeliveryHandler.OutForDelivery},
				{Method: http.MethodPatch, Path: "/:orderId/delivered", Handler: p.DeliveryHandler.Delivered},
			})
		}

		coupons := apiGroup.Group("/coupons")
		coupons.Use(requireAuth, authMw.RequireRoles(management...))
		{
			addRoutes(coupons, []route{
				{Method: http.MethodPost, Path: "", Handler: p.CouponHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: p.CouponHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: p.CouponHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: p.CouponHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: p.CouponHandler.Delete},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(requireAuth, authMw.RequireRoles(management...))
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "/:id/reply", Handler: p.ReviewHandler.Reply},
			})
		}

		reports := apiGroup.Group("/reports")
		reports.Use(requireAuth, authMw.RequireRoles(management...))
		{
			addRoutes(reports, []route{
				{Method: http.MethodGet, Path: "/sales", Handler: p.ReportHandler.Sales},
				{Method: http.MethodGet, Path: "/top-items", Handler: p.ReportHandler.TopItems},
				{Method: http.MethodGet, Path: "/customers", Handler: p.ReportHandler.Customers},
				{Method: http.MethodGet, Path: "/delivery-performance", Handler: p.ReportHandler.DeliveryPerformance},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
