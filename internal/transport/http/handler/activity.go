package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"studyprep-api/internal/app"
	"studyprep-api/internal/transport/http/response"
)

type ActivityHandler struct {
	activityService *app.ActivityService
}

func NewActivityHandler(activityService *app.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	events, err := h.activityService.ListActivity(c.Request.Context(), id, limit)
	if err != nil {
		writeServiceError(c, err, "list activity failed")
		return
	}

	response.OK(c, events)
}
