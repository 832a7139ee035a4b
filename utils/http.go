// utils/http.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a JSON error body with the given status.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
