package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyprep-api/internal/app"
	"studyprep-api/internal/transport/http/response"
)

type CareerHandler struct {
	careerService *app.CareerService
}

type CreateCareerReportRequest struct {
	Role          string `json:"role" binding:"required,max=256"`
	ReportContent string `json:"report_content" binding:"required"`
}

func NewCareerHandler(careerService *app.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

func (h *CareerHandler) Create(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req CreateCareerReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	report, err := h.careerService.CreateCareerReport(c.Request.Context(), app.CreateCareerReportInput{
		Owner:         id,
		Role:          req.Role,
		ReportContent: req.ReportContent,
	})
	if err != nil {
		writeServiceError(c, err, "create career report failed")
		return
	}

	response.Created(c, report)
}

func (h *CareerHandler) List(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	reports, err := h.careerService.ListCareerReports(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "list career reports failed")
		return
	}

	response.OK(c, reports)
}
