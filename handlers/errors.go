package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	registrationRepo "confreg/database/repository/registration"
	"confreg/services/abstract"
	"confreg/services/accommodation"
	"confreg/services/payment"
	"confreg/services/pricing"
	"confreg/services/registration"
	"confreg/services/user"
	"confreg/utils"
)

// statusFor maps a service error to an HTTP status. Anything unrecognized
// is a server fault.
func statusFor(err error) int {
	code := ""

	var pe *pricing.PricingError
	var re *registration.RegError
	var ye *payment.PayError
	var ue *user.UserError
	var ae *accommodation.AccError
	var be *abstract.AbsError

	switch {
	case errors.As(err, &pe):
		code = pe.Code
	case errors.As(err, &re):
		code = re.Code
	case errors.As(err, &ye):
		code = ye.Code
	case errors.As(err, &ue):
		code = ue.Code
	case errors.As(err, &ae):
		code = ae.Code
	case errors.As(err, &be):
		code = be.Code
	case errors.Is(err, registrationRepo.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}

	switch code {
	case registration.CodeNotFound:
		return http.StatusNotFound
	case registration.CodeConflict, registration.CodeCapacityFull, user.CodeDuplicate, "frozen":
		return http.StatusConflict
	case user.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case payment.CodeGatewayFailure:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// respondError renders a service error in the standard envelope. Server
// faults are logged and masked with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
