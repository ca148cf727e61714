package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"MediClaim/middlewares"
	"MediClaim/policy"
	"MediClaim/services"
)

// respondError maps service errors onto HTTP statuses. Anything outside the
// known sentinels is logged and returned as a generic 500 so internals never
// leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrDenied):
		c.JSON(403, gin.H{"error": stripSentinel(err, policy.ErrDenied)})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(404, gin.H{"error": stripSentinel(err, services.ErrNotFound)})
	case errors.Is(err, services.ErrInvalid):
		c.JSON(400, gin.H{"error": stripSentinel(err, services.ErrInvalid)})
	default:
		middlewares.HttpError(c, "Internal server error", 500, err)
	}
}

// stripSentinel drops the sentinel prefix so clients see only the human
// message ("forbidden: only patients can create claims" -> the latter).
func stripSentinel(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// principal pulls the authenticated caller set by the token middleware. A
// missing principal on a protected route means the middleware chain is
// misconfigured, so it is treated as 401.
func principal(c *gin.Context) (policy.Principal, bool) {
	p, err := middlewares.Principal(c.Request.Context())
	if err != nil {
		log.Printf("missing principal on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return policy.Principal{}, false
	}
	return p, true
}
