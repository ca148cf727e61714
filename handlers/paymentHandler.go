package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MediClaim/models"
	"MediClaim/repositories"
	"MediClaim/services"
	"MediClaim/utils"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	payment, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, payment)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	payment, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, payment)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	filter := repositories.PaymentFilter{
		Status: models.PaymentStatus(c.Query("status")),
		Page:   utils.ParsePagination(c.Query("page"), c.Query("limit")),
	}
	if claimID, err := strconv.ParseUint(c.Query("claim_id"), 10, 32); err == nil {
		filter.ClaimID = uint(claimID)
	}

	payments, total, err := h.service.List(c.Request.Context(), p, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.NewPagedResult(payments, filter.Page, total))
}

// UpdatePayment drives the payment lifecycle via PATCH.
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	payment, err := h.service.UpdateStatus(c.Request.Context(), p, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, payment)
}
