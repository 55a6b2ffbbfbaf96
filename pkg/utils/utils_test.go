package utils

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/donation-service/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sampleConfig struct {
	Port   string `mapstructure:"PORT" validate:"required"`
	Secret string `mapstructure:"STRIPE_SECRET_KEY" validate:"required"`
	Hook   string `mapstructure:"WEBHOOK_URL" validate:"required,url"`
}

func TestFormatConfigErrors(t *testing.T) {
	cfg := sampleConfig{Port: "3000", Hook: "not a url"}
	err := validator.New().Struct(&cfg)
	require.Error(t, err)

	out := FormatConfigErrors(zap.NewNop(), err, cfg)

	require.Error(t, out)
	assert.Contains(t, out.Error(), "STRIPE_SECRET_KEY")
	assert.Contains(t, out.Error(), "WEBHOOK_URL")
	assert.NotContains(t, out.Error(), "PORT")
	assert.NotContains(t, out.Error(), "not a url")
}

func TestFormatConfigErrors_Passthrough(t *testing.T) {
	cause := errors.New("boom")
	assert.Same(t, cause, FormatConfigErrors(zap.NewNop(), cause, sampleConfig{}))
}

func TestGetTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetTraceID(c)
	assert.ErrorIs(t, err, pkg.ErrEmptyTraceID)

	c.Set(pkg.TraceId, "abc")
	id, err := GetTraceID(c)
	assert.NoError(t, err)
	assert.Equal(t, "abc", id)
}
