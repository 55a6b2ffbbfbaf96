package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg"
	"github.com/nimeshabuddhika/donation-service/pkg/response"
	"github.com/nimeshabuddhika/donation-service/services/donation-api/internal/webhook"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	logger     *zap.Logger
	verifier   webhook.EventVerifier
	dispatcher webhook.Dispatcher
}

func NewWebhookHandler(logger *zap.Logger, verifier webhook.EventVerifier, dispatcher webhook.Dispatcher) *WebhookHandler {
	return &WebhookHandler{logger: logger, verifier: verifier, dispatcher: dispatcher}
}

func (h *WebhookHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/webhook", h.ReceiveEvent)
}

// ReceiveEvent passes the raw payload and its signature header on unchanged;
// the signature covers the exact bytes.
func (h *WebhookHandler) ReceiveEvent(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Respond(c, h.logger, response.Wrap[any](nil, fmt.Errorf("read webhook body: %w", err)))
		return
	}
	signature := c.GetHeader(pkg.HeaderStripeSignature)
	response.Respond(c, h.logger, webhook.ServeReceiveEvent(h.verifier, h.dispatcher, signature, payload))
}
