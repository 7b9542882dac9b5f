package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyprep-api/internal/identity"
	"studyprep-api/internal/transport/http/response"
)

const ContextIdentityKey = "identity"

// Authenticate resolves the caller's identity before any record access.
// Missing and rejected credentials get the same 401 response.
func Authenticate(verifier identity.Verifier, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		id, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			logger.Info("authentication rejected",
				slog.String("error", err.Error()),
				slog.String("path", c.FullPath()),
				slog.String("request_id", GetRequestID(c)),
			)
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgAuthenticationFailed)
			return
		}

		c.Set(ContextIdentityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c *gin.Context) (identity.Identity, bool) {
	v, exists := c.Get(ContextIdentityKey)
	if !exists {
		return "", false
	}
	id, ok := v.(identity.Identity)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
