package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg"
	"github.com/nimeshabuddhika/donation-service/pkg/utils"
	"go.uber.org/zap"
)

// Envelope is the uniform JSON reply of a handler: {"data": ...} on success
// and {"error": "..."} on failure.
type Envelope struct {
	Status int
	Body   gin.H
	err    error
}

// Err returns the failure the envelope was built from, if any.
func (e Envelope) Err() error { return e.err }

// Wrap turns a handler outcome into an Envelope. A nil err is a success and
// data is serialized as structured JSON under "data".
func Wrap[T any](data T, err error) Envelope {
	if err == nil {
		return Envelope{Status: http.StatusOK, Body: gin.H{"data": data}}
	}
	status, message := ToResponse(err)
	return Envelope{Status: status, Body: gin.H{"error": message}, err: err}
}

// Respond writes env to the client. Failures are logged with the request
// trace id, including the hidden cause.
func Respond(c *gin.Context, logger *zap.Logger, env Envelope) {
	if env.err != nil {
		logger.Error("handler error",
			TraceField(c),
			zap.Int("status", env.Status),
			zap.Error(env.err),
		)
	}
	c.JSON(env.Status, env.Body)
}

// TraceField returns the request trace id as a log field, or the reason it
// is missing when no trace middleware ran.
func TraceField(c *gin.Context) zap.Field {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		return zap.NamedError("trace_error", err)
	}
	return zap.String(pkg.TraceId, traceID)
}

// Serve adapts a business function to a gin handler that always answers
// with an Envelope.
func Serve[T any](logger *zap.Logger, fn func(c *gin.Context) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		Respond(c, logger, Wrap(fn(c)))
	}
}
