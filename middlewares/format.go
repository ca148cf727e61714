package middlewares

import (
	"log"

	"github.com/gin-gonic/gin"
)

// HttpError logs the underlying error server-side and returns only the safe
// message to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"error": message})
}
