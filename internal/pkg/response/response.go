package response

import (
	"github.com/fekuna/omnipos-storefront-service/internal/apperror"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Translator interface {
	Translate(acceptLanguage, messageID string) string
}

// Error renders err as {"error": message}. The status comes from the
// error kind; internal causes are logged and never echoed to the client.
func Error(c *gin.Context, log logger.ZapLogger, tr Translator, err error) {
	appErr := apperror.From(err)

	if appErr.Kind == apperror.KindInternal {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Error(appErr.Err),
		)
	}

	msg := appErr.MessageID
	if tr != nil {
		msg = tr.Translate(c.GetHeader("Accept-Language"), appErr.MessageID)
	}
	c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), gin.H{"error": msg})
}

// RequestIDKey is the gin context key the request id middleware sets.
const RequestIDKey = "request_id"
