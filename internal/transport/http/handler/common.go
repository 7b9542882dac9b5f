package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyprep-api/internal/app"
	"studyprep-api/internal/identity"
	"studyprep-api/internal/transport/http/middleware"
	"studyprep-api/internal/transport/http/response"
)

// requireIdentity fetches the authenticated identity or writes a 401.
func requireIdentity(c *gin.Context) (identity.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgAuthenticationFailed)
		return "", false
	}
	return id, true
}

// writeServiceError maps service errors to the envelope; anything unknown
// becomes a generic failure with fallback as its message.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrNoOwner):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgAuthenticationFailed)
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
