package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Account endpoints.
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetMeHandler            gin.HandlerFunc
	UpdateProfileHandler    gin.HandlerFunc
	LogoutHandler           gin.HandlerFunc

	// Pricing and registration endpoints.
	PricePreviewHandler       gin.HandlerFunc
	UpsertRegistrationHandler gin.HandlerFunc
	GetMyRegistrationHandler  gin.HandlerFunc

	// Payment endpoints.
	CreateOrderHandler    gin.HandlerFunc
	VerifyPaymentHandler  gin.HandlerFunc
	ReportFailureHandler  gin.HandlerFunc
	ListPaymentsHandler   gin.HandlerFunc
	GatewayWebhookHandler gin.HandlerFunc

	// Accommodation endpoints.
	BookAccommodationHandler   gin.HandlerFunc
	GetMyAccommodationsHandler gin.HandlerFunc

	// Abstract endpoints.
	SubmitAbstractHandler  gin.HandlerFunc
	ListMyAbstractsHandler gin.HandlerFunc

	// Attendance endpoints.
	GetMyBadgeHandler gin.HandlerFunc
	CheckInHandler    gin.HandlerFunc

	// Admin console.
	AdminHandler *AdminHandler
}
