package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg/response"
	"github.com/nimeshabuddhika/donation-service/services/donation-api/internal/billing"
	"go.uber.org/zap"
)

type BillingHandler struct {
	logger  *zap.Logger
	intents billing.PaymentIntentCreator
}

func NewBillingHandler(logger *zap.Logger, intents billing.PaymentIntentCreator) *BillingHandler {
	return &BillingHandler{logger: logger, intents: intents}
}

// RegisterRoutes registers the billing route behind the given middleware.
func (h *BillingHandler) RegisterRoutes(r gin.IRoutes, middleware ...gin.HandlerFunc) {
	r.POST("/billing", append(middleware, h.CreatePaymentIntent)...)
}

// CreatePaymentIntent reads the amount in cents from the raw body.
func (h *BillingHandler) CreatePaymentIntent(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Respond(c, h.logger, response.Wrap("", billing.ErrInvalidAmount))
		return
	}
	response.Respond(c, h.logger, billing.ServeCreatePaymentIntent(c.Request.Context(), h.intents, string(body)))
}
