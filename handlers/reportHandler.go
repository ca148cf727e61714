package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MediClaim/models"
	"MediClaim/repositories"
	"MediClaim/services"
	"MediClaim/utils"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req services.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, report)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	report, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, report)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	filter := repositories.ReportFilter{
		ReportType: models.ReportType(c.Query("report_type")),
		Page:       utils.ParsePagination(c.Query("page"), c.Query("limit")),
	}
	if appointmentID, err := strconv.ParseUint(c.Query("appointment_id"), 10, 32); err == nil {
		filter.AppointmentID = uint(appointmentID)
	}

	reports, total, err := h.service.List(c.Request.Context(), p, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.NewPagedResult(reports, filter.Page, total))
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.service.Update(c.Request.Context(), p, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(204)
}
