package handlers

import (
	"github.com/gin-gonic/gin"

	"MediClaim/models"
	"MediClaim/services"
	"MediClaim/utils"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers returns a paginated user directory, optionally filtered by role.
func (h *UserHandler) ListUsers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	role := models.Role(c.Query("role"))
	page := utils.ParsePagination(c.Query("page"), c.Query("limit"))

	users, total, err := h.service.ListUsers(c.Request.Context(), p, role, page)
	if err != nil {
		respondError(c, err)
		return
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}
	c.JSON(200, utils.NewPagedResult(profiles, page, total))
}

// GetUser returns a single user's profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, user.Profile())
}
