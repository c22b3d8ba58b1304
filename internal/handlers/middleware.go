package handlers

import (
	"errors"
	"log"
	"net/http"
	"parts_market/internal/models"
	"parts_market/internal/services"
	"strings"

	"github.com/gin-gonic/gin"
)

const userContextKey = "current_user"

// AuthRequired resolves "Authorization: Token <token>" to an actor. Identity
// verification happens upstream; this only binds requests to a known user.
func AuthRequired(userService services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Token ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		user, err := userService.GetByAPIToken(token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, _ := c.Get(userContextKey)
	user, _ := value.(*models.User)
	return user
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var errResp *models.ErrorResponse
	if errors.As(err, &errResp) {
		c.JSON(errResp.StatusCode, gin.H{"error": errResp.Message})
		return
	}
	log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
