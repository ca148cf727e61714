package handlers

import (
	"github.com/gin-gonic/gin"

	"MediClaim/models"
	"MediClaim/repositories"
	"MediClaim/services"
	"MediClaim/utils"
)

type ClaimHandler struct {
	service *services.ClaimService
}

func NewClaimHandler(service *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req services.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	claim, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, claim)
}

func (h *ClaimHandler) GetClaim(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	claim, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, claim)
}

func (h *ClaimHandler) ListClaims(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	filter := repositories.ClaimFilter{
		Status: models.ClaimStatus(c.Query("status")),
		Page:   utils.ParsePagination(c.Query("page"), c.Query("limit")),
	}

	claims, total, err := h.service.List(c.Request.Context(), p, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.NewPagedResult(claims, filter.Page, total))
}

func (h *ClaimHandler) UpdateClaim(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	claim, err := h.service.Update(c.Request.Context(), p, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, claim)
}

// TransitionClaim drives the claim lifecycle via PATCH.
func (h *ClaimHandler) TransitionClaim(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.TransitionClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	claim, err := h.service.Transition(c.Request.Context(), p, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, claim)
}

func (h *ClaimHandler) DeleteClaim(c *gin.Context) {
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

type attachReportRequest struct {
	ReportID uint `json:"report_id"`
}

func (h *ClaimHandler) AttachReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	claimID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req attachReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReportID == 0 {
		c.JSON(400, gin.H{"error": "report_id is required"})
		return
	}

	attachment, err := h.service.AttachReport(c.Request.Context(), p, claimID, req.ReportID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, attachment)
}

func (h *ClaimHandler) DetachReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	claimID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req attachReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReportID == 0 {
		c.JSON(400, gin.H{"error": "report_id is required"})
		return
	}

	if err := h.service.DetachReport(c.Request.Context(), p, claimID, req.ReportID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(204)
}
