package router

import (
	"time"

	"repairs/internal/config"
	"repairs/internal/dto"
	"repairs/internal/gateway"
	"repairs/internal/handler"
	"repairs/internal/middleware"
	"repairs/internal/model"
	"repairs/internal/resource"
	"repairs/internal/session"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Resource ← Gateway, with the session store
// supplying every token. rdb and queue may be nil when e-mailing is off.
func New(cfg *config.Config, gw *gateway.Gateway, store *session.Store, rdb *redis.Client, queue handler.EmailQueue) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Resources ────────────────────────────────────────────────────────────
	set := resource.NewSet(gw)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(set.Auth, store)
	jobsH := handler.NewJobsHandler(set.Jobs, set.JobCards, store)
	inventoryH := handler.NewInventoryHandler(set.Products, set.Sales, store)
	billingH := handler.NewBillingHandler(set, store)
	adminH := handler.NewAdminHandler(set, store)
	dashboardH := handler.NewDashboardHandler(set, store)
	invoiceDocsH := handler.NewInvoiceDocsHandler(set, store, queue, cfg.PDFStoragePath, cfg.CompanyName)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(gw, store, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/accept-invite", middleware.LoginRateLimiter(), authH.AcceptInvite)
		auth.POST("/forgot-password", middleware.LoginRateLimiter(), authH.ForgotPassword)
		auth.POST("/reset-password", authH.ResetPassword)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/logout", authH.Logout)
		auth.GET("/session", authH.Session)
	}
	r.GET("/v1/invites/verify/:token", adminH.VerifyInvite)

	// Protected routes
	v1 := r.Group("/v1", middleware.RequireSession(store))

	var adminOnly []gin.HandlerFunc
	if cfg.AdminPermission != "" {
		adminOnly = append(adminOnly, middleware.RequirePermission(store, cfg.AdminPermission))
	}

	{
		v1.POST("/auth/change-password", authH.ChangePassword)
		v1.GET("/dashboard", dashboardH.Get)

		handler.NewEntityHandler[model.Client, dto.ClientRequest, dto.ClientRequest](set.Clients, store, "clients").
			Register(v1.Group("/clients"))
		handler.NewEntityHandler[model.Contractor, dto.ContractorRequest, dto.ContractorRequest](set.Contractors, store, "contractors").
			Register(v1.Group("/contractors"))

		jobs := v1.Group("/jobs")
		handler.NewEntityHandler[model.Job, dto.JobRequest, dto.JobRequest](set.Jobs, store, "jobs").Register(jobs)
		{
			jobs.GET("/slug/:slug", jobsH.GetBySlug)
			jobs.PATCH("/:id/status", jobsH.UpdateStatus)
			jobs.GET("/:id/cards", jobsH.Cards)
		}

		cards := v1.Group("/job-cards")
		handler.NewEntityHandler[model.JobCard, dto.JobCardRequest, dto.JobCardRequest](set.JobCards, store, "job-cards").Register(cards)
		{
			cards.PATCH("/:id/status", jobsH.UpdateCardStatus)
			cards.POST("/:id/attachments", jobsH.AddAttachment)
			cards.DELETE("/:id/attachments/:attachmentId", jobsH.RemoveAttachment)
			cards.POST("/:id/products", jobsH.AddProduct)
			cards.DELETE("/:id/products/:productId", jobsH.RemoveProduct)
		}

		products := v1.Group("/products")
		handler.NewEntityHandler[model.Product, dto.ProductRequest, dto.ProductRequest](set.Products, store, "products").Register(products)
		{
			products.GET("/low-stock", inventoryH.LowStock)
			products.GET("/category/:category", inventoryH.ByCategory)
		}

		handler.NewEntityHandler[model.Supplier, dto.SupplierRequest, dto.SupplierRequest](set.Suppliers, store, "suppliers").
			Register(v1.Group("/suppliers"))
		handler.NewEntityHandler[model.Stock, dto.StockRequest, dto.StockRequest](set.Stock, store, "stock").
			Register(v1.Group("/stock"))

		sales := v1.Group("/sales")
		handler.NewEntityHandler[model.Sale, dto.SaleRequest, dto.SaleRequest](set.Sales, store, "sales").Register(sales)
		sales.PATCH("/:id/status", inventoryH.UpdateSaleStatus)

		invoices := v1.Group("/invoices")
		handler.NewEntityHandler[model.Invoice, dto.InvoiceRequest, dto.InvoiceRequest](set.Invoices, store, "invoices").Register(invoices)
		{
			invoices.GET("/slug/:slug", billingH.InvoiceBySlug)
			invoices.PATCH("/:id/status", billingH.UpdateInvoiceStatus)
			invoices.GET("/:id/payments", billingH.InvoicePayments)
			invoices.GET("/:id/pdf", invoiceDocsH.PDF)
			invoices.POST("/:id/email", invoiceDocsH.Email)
		}

		payments := v1.Group("/payments")
		handler.NewEntityHandler[model.Payment, dto.PaymentRequest, dto.PaymentRequest](set.Payments, store, "payments").Register(payments)
		{
			payments.GET("/recent", billingH.RecentPayments)
			payments.GET("/summary", billingH.PaymentSummary)
		}

		expenses := v1.Group("/expenses")
		handler.NewEntityHandler[model.Expense, dto.ExpenseRequest, dto.ExpenseRequest](set.Expenses, store, "expenses").Register(expenses)
		{
			expenses.GET("/recent", billingH.RecentExpenses)
			expenses.GET("/stats", billingH.ExpenseStats)
		}

		// The signed-in user's own profile needs no admin rights.
		v1.GET("/users/me", adminH.Me)
		v1.PUT("/users/me", adminH.UpdateProfile)
		v1.GET("/company", adminH.GetCompany)
		v1.GET("/permissions", adminH.Permissions)

		handler.NewEntityHandler[model.User, dto.UserRequest, dto.UserRequest](set.Users, store, "users").
			Register(v1.Group("/users", adminOnly...))
		handler.NewEntityHandler[model.Role, dto.RoleRequest, dto.RoleRequest](set.Roles, store, "roles").
			Register(v1.Group("/roles", adminOnly...))

		invites := v1.Group("/invites", adminOnly...)
		{
			invites.GET("", adminH.ListInvites)
			invites.GET("/:id", adminH.GetInvite)
			invites.POST("", adminH.CreateInvite)
			invites.POST("/:id/resend", adminH.ResendInvite)
			invites.DELETE("/:id", adminH.DeleteInvite)
		}

		v1.PUT("/company", append(adminOnly, adminH.UpdateCompany)...)
	}

	// Swagger UI outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
