package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	r.POST("/billing", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": c.GetString(pkg.TraceId)})
	})
	return r
}

func TestTraceID_Generated(t *testing.T) {
	r := newEngine(TraceID())
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/billing", nil))

	traceID := w.Header().Get(pkg.HeaderTraceId)
	assert.NotEmpty(t, traceID)
	assert.JSONEq(t, `{"data":"`+traceID+`"}`, w.Body.String())
}

func TestTraceID_Propagated(t *testing.T) {
	r := newEngine(TraceID())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/billing", nil)
	req.Header.Set(pkg.HeaderTraceId, "trace-123")

	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(pkg.HeaderTraceId))
}

func TestRateLimit(t *testing.T) {
	limiter := pkg.NewDistributedLimiter(nil, "test", 1, 1, time.Minute, zap.NewNop())
	r := newEngine(RateLimit(limiter))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/billing", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/billing", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, second.Body.String())
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(TraceID(), AccessLog(zap.New(core)))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/billing", nil)
	req.Header.Set(pkg.HeaderTraceId, "trace-456")

	r.ServeHTTP(w, req)

	entries := logs.FilterMessage("response").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "trace-456", fields[pkg.TraceId])
		assert.Equal(t, "/billing", fields["matched_path"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	}
}

func TestMetrics_UnmatchedPath(t *testing.T) {
	r := newEngine(Metrics())
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
	assert.Equal(t, before+1, after)
	assert.Zero(t, testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetrics_SkippedRoute(t *testing.T) {
	r := newEngine(Metrics("/billing"))
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/billing", "200"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/billing", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/billing", "200"))
	assert.Equal(t, before, after)
}

func TestAccessLog_WithoutTraceID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(AccessLog(zap.New(core)))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/billing", nil))

	entries := logs.FilterMessage("response").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.NotContains(t, fields, pkg.TraceId)
		assert.Equal(t, pkg.ErrEmptyTraceID.Error(), fields["trace_error"])
	}
}
