package routes

import (
	"revendapro/internal/adapters/gateway/asaas"
	"revendapro/internal/adapters/gateway/wppconnect"
	"revendapro/internal/adapters/http/handlers"
	"revendapro/internal/adapters/http/middleware"
	"revendapro/internal/adapters/persistence/repositories"
	"revendapro/internal/config"
	"revendapro/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Services groups the wired service layer so main can reach the pieces
// that need lifecycle management.
type Services struct {
	Cron *services.CronService
}

// Setup wires repositories, gateways, services and handlers onto the app
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *Services {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	personnelRepo := repositories.NewPersonnelRepository(db)
	bankRepo := repositories.NewBankRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	financingRepo := repositories.NewFinancingRepository(db)
	eventRepo := repositories.NewFinancingEventRepository(db)
	connRepo := repositories.NewConnectionRepository(db)

	// Gateways
	paymentGateway := asaas.New(cfg.Payment.APIKey, cfg.Payment.BaseURL)
	wppClient := wppconnect.NewClient(cfg.Messaging.BaseURL, cfg.Messaging.SecretKey)

	// Services
	authService := services.NewAuthService(userRepo, tokenRepo, cfg.JWT)
	userService := services.NewUserService(userRepo)
	masterService := services.NewMasterService(customerRepo, personnelRepo, bankRepo, vehicleRepo)
	financingService := services.NewFinancingService(financingRepo, eventRepo, customerRepo, bankRepo, vehicleRepo, personnelRepo)
	paymentService := services.NewPaymentService(paymentGateway)
	whatsappService := services.NewWhatsAppService(connRepo, wppClient, cfg.Messaging.DailyLimit)
	notificationService := services.NewNotificationService(whatsappService)
	financingService.SetNotifier(notificationService)
	dashboardService := services.NewDashboardService(financingService, paymentService, vehicleRepo, connRepo)
	cronService := services.NewCronService(connRepo, tokenRepo, wppClient)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(masterService, financingService)
	personnelHandler := handlers.NewPersonnelHandler(masterService)
	vehicleHandler := handlers.NewVehicleHandler(masterService)
	financingHandler := handlers.NewFinancingHandler(financingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/health", healthHandler.Check)

	// Auth (public)
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Everything below requires a valid access token
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Profile)
	protected.Post("/auth/register", middleware.AdminOnly(), authHandler.Register)

	// User administration (admin only)
	users := protected.Group("/users", middleware.AdminOnly())
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", middleware.ManagerOrAdmin(), customerHandler.Delete)
	customers.Get("/:id/financings", customerHandler.Financings)

	// Personnel (managers and admins)
	personnel := protected.Group("/personnel", middleware.ManagerOrAdmin())
	personnel.Post("/", personnelHandler.Create)
	personnel.Get("/", personnelHandler.List)
	personnel.Get("/:id", personnelHandler.Get)
	personnel.Put("/:id", personnelHandler.Update)
	personnel.Delete("/:id", personnelHandler.Delete)

	// Banks
	protected.Get("/banks", vehicleHandler.ListBanks)
	protected.Post("/banks", middleware.AdminOnly(), vehicleHandler.CreateBank)

	// Vehicles
	vehicles := protected.Group("/vehicles")
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.Get)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", middleware.ManagerOrAdmin(), vehicleHandler.Delete)

	// Financing proposals
	financings := protected.Group("/financings")
	financings.Post("/", financingHandler.Create)
	financings.Get("/", financingHandler.List)
	financings.Get("/summary", financingHandler.Summary)
	financings.Get("/:id", financingHandler.Get)
	financings.Put("/:id", financingHandler.Update)
	financings.Put("/:id/status", middleware.ManagerOrAdmin(), financingHandler.ChangeStatus)
	financings.Get("/:id/events", financingHandler.Events)

	// Payment gateway (managers and admins, uncached responses)
	payments := protected.Group("/payments", middleware.ManagerOrAdmin(), middleware.NoCacheHeaders())
	payments.Get("/balance", paymentHandler.Balance)
	payments.Get("/customers", paymentHandler.ListCustomers)
	payments.Get("/", paymentHandler.ListPayments)
	payments.Post("/", paymentHandler.CreatePayment)
	payments.Get("/:id", paymentHandler.GetPayment)
	payments.Delete("/:id", paymentHandler.CancelPayment)

	// WhatsApp messaging
	whatsapp := protected.Group("/whatsapp/connections")
	whatsapp.Post("/", middleware.ManagerOrAdmin(), whatsappHandler.Create)
	whatsapp.Get("/", whatsappHandler.List)
	whatsapp.Get("/:id", whatsappHandler.Get)
	whatsapp.Get("/:id/status", whatsappHandler.Status)
	whatsapp.Get("/:id/qrcode", whatsappHandler.QRCode)
	whatsapp.Delete("/:id", middleware.ManagerOrAdmin(), whatsappHandler.Delete)
	whatsapp.Post("/:id/send-message", whatsappHandler.SendMessage)
	whatsapp.Post("/:id/send-file", whatsappHandler.SendFile)
	whatsapp.Get("/:id/contacts", whatsappHandler.Contacts)
	whatsapp.Get("/:id/check-number", whatsappHandler.CheckNumber)

	// Dashboard
	protected.Get("/dashboard", dashboardHandler.Get)

	return &Services{Cron: cronService}
}
