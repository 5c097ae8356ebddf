package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"confreg/handlers"
	"confreg/middleware"
	"confreg/utils"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/me", hb.GetMeHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterRegistrationRoutes registers pricing and registration endpoints.
func RegisterRegistrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/registrations")
	{
		// Pricing preview is public so the fee table can drive the form.
		api.POST("/price", hb.PricePreviewHandler)

		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.UpsertRegistrationHandler)
		api.GET("/me", hb.GetMyRegistrationHandler)
	}
}

// RegisterPaymentRoutes registers payment endpoints. The webhook stays
// outside the auth group: the gateway authenticates by signature.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.GatewayWebhookHandler)

	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/order", hb.CreateOrderHandler)
		api.POST("/verify", hb.VerifyPaymentHandler)
		api.POST("/failure", hb.ReportFailureHandler)
		api.GET("/ref/:refId", hb.ListPaymentsHandler)
	}
}

// RegisterAccommodationRoutes registers hotel booking endpoints.
func RegisterAccommodationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accommodations")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.BookAccommodationHandler)
		api.GET("/me", hb.GetMyAccommodationsHandler)
	}
}

// RegisterAbstractRoutes registers submission endpoints.
func RegisterAbstractRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/abstracts")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.SubmitAbstractHandler)
		api.GET("/me", hb.ListMyAbstractsHandler)
	}
}

// RegisterAttendanceRoutes registers badge and check-in endpoints.
func RegisterAttendanceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/attendance")
	{
		api.GET("/badge", middleware.JWTAuthUserMiddleware(), hb.GetMyBadgeHandler)
		// Scanning stations authenticate with the admin token.
		api.POST("/checkin", middleware.JWTAuthAdminMiddleware(), hb.CheckInHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the back-office console.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/users", hb.AdminHandler.ListUsersHandler)
		adminGroup.GET("/registrations", hb.AdminHandler.ListRegistrationsHandler)
		adminGroup.POST("/registrations/manual", hb.AdminHandler.CreateManualRegistrationHandler)
		adminGroup.GET("/registrations/:id", hb.AdminHandler.GetRegistrationHandler)
		adminGroup.DELETE("/registrations/:id", hb.AdminHandler.DeleteRegistrationHandler)
		adminGroup.POST("/registrations/:id/resend-confirmation", hb.AdminHandler.ResendConfirmationHandler)
		adminGroup.GET("/counter", hb.AdminHandler.GetCounterHandler)
		adminGroup.PUT("/counter", hb.AdminHandler.SetCounterHandler)
		adminGroup.POST("/payments/:orderId/reconcile", hb.AdminHandler.ReconcileOrderHandler)
		adminGroup.GET("/abstracts", hb.AdminHandler.ListAbstractsHandler)
		adminGroup.POST("/abstracts/:id/review", hb.AdminHandler.ReviewAbstractHandler)
		adminGroup.POST("/abstracts/:id/decision", hb.AdminHandler.DecideAbstractHandler)
	}
}

// RegisterHealthRoute registers the health probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterRegistrationRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAccommodationRoutes(r, hb)
	RegisterAbstractRoutes(r, hb)
	RegisterAttendanceRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
