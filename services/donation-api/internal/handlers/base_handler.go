package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg/response"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

func (b *BaseHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", response.Serve(b.logger, b.GetHealth))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (b *BaseHandler) GetHealth(*gin.Context) (gin.H, error) {
	return gin.H{"status": "ok"}, nil
}
