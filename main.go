package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"confreg/config"
	"confreg/database"
	abstractRepoPkg "confreg/database/repository/abstract"
	accommodationRepoPkg "confreg/database/repository/accommodation"
	attendanceRepoPkg "confreg/database/repository/attendance"
	counterRepoPkg "confreg/database/repository/counter"
	paymentRepoPkg "confreg/database/repository/payment"
	registrationRepoPkg "confreg/database/repository/registration"
	userRepoPkg "confreg/database/repository/user"
	"confreg/handlers"
	"confreg/middleware"
	"confreg/routes"
	"confreg/services/abstract"
	"confreg/services/accommodation"
	"confreg/services/attendance"
	"confreg/services/notification"
	"confreg/services/payment"
	"confreg/services/registration"
	"confreg/services/user"
	"confreg/utils"
)

func main() {
	config.LoadConfig()
	config.LoadPricingTable()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepository := userRepoPkg.NewMongoUserRepo()
	registrationRepository := registrationRepoPkg.NewMongoRegistrationRepo()
	paymentRepository := paymentRepoPkg.NewMongoPaymentRepo()
	counterRepository := counterRepoPkg.NewMongoCounterRepo()
	attendanceRepository := attendanceRepoPkg.NewMongoAttendanceRepo()
	accommodationRepository := accommodationRepoPkg.NewMongoAccommodationRepo()
	abstractRepository := abstractRepoPkg.NewMongoAbstractRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepository,
	}

	registrationService := registration.NewRegistrationService(
		registrationRepository,
		userRepository,
		counterRepository,
		paymentRepository,
		attendanceRepository,
	)

	attendanceService := &attendance.DefaultAttendanceService{
		Repo:          attendanceRepository,
		Registrations: registrationRepository,
	}

	accommodationService := accommodation.NewAccommodationService(accommodationRepository)

	abstractService := &abstract.DefaultAbstractService{
		Repo: abstractRepository,
	}

	paymentService := &payment.DefaultPaymentService{
		Payments:       paymentRepository,
		Registrations:  registrationRepository,
		Accommodations: accommodationRepository,
		Users:          userRepository,
		Gateway:        payment.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret),
		Badges:         attendanceService,
		Notifier:       notification.NewSMTPNotifier(),
		Logger:         logger,
		KeySecret:      config.AppConfig.RazorpayKeySecret,
		WebhookSecret:  config.AppConfig.RazorpayWebhookSecret,
		Currency:       config.Pricing.Currency,
	}

	// handlers.
	userHandler := handlers.NewUserHandler(userService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	webhookHandler := handlers.NewWebhookHandler(paymentService)
	accommodationHandler := handlers.NewAccommodationHandler(accommodationService)
	abstractHandler := handlers.NewAbstractHandler(abstractService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, registrationService)
	adminHandler := handlers.NewAdminHandler(registrationService, paymentService, userService, abstractService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Account endpoints.
		RegisterUserHandler:     userHandler.RegisterUserHandler,
		AuthenticateUserHandler: userHandler.AuthenticateUserHandler,
		GetMeHandler:            userHandler.GetMeHandler,
		UpdateProfileHandler:    userHandler.UpdateProfileHandler,
		LogoutHandler:           userHandler.LogoutHandler,

		// Pricing and registration endpoints.
		PricePreviewHandler:       registrationHandler.PricePreviewHandler,
		UpsertRegistrationHandler: registrationHandler.UpsertRegistrationHandler,
		GetMyRegistrationHandler:  registrationHandler.GetMyRegistrationHandler,

		// Payment endpoints.
		CreateOrderHandler:    paymentHandler.CreateOrderHandler,
		VerifyPaymentHandler:  paymentHandler.VerifyPaymentHandler,
		ReportFailureHandler:  paymentHandler.ReportFailureHandler,
		ListPaymentsHandler:   paymentHandler.ListPaymentsHandler,
		GatewayWebhookHandler: webhookHandler.GatewayWebhookHandler,

		// Accommodation endpoints.
		BookAccommodationHandler:   accommodationHandler.BookAccommodationHandler,
		GetMyAccommodationsHandler: accommodationHandler.GetMyAccommodationsHandler,

		// Abstract endpoints.
		SubmitAbstractHandler:  abstractHandler.SubmitAbstractHandler,
		ListMyAbstractsHandler: abstractHandler.ListMyAbstractsHandler,

		// Attendance endpoints.
		GetMyBadgeHandler: attendanceHandler.GetMyBadgeHandler,
		CheckInHandler:    attendanceHandler.CheckInHandler,

		// Admin console.
		AdminHandler: adminHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
