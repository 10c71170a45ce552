package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/config"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/utils"
)

// TokenParser validates a bearer token and returns the Casdoor claims.
// The Casdoor client satisfies it; tests can plug in their own parser.
type TokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// NewCasdoorClient builds a Casdoor client from the service configuration.
func NewCasdoorClient(cfg config.CasdoorConfig) *casdoorsdk.Client {
	return casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.Organization,
		cfg.Application,
	)
}

// AuthMiddleware validates the Authorization header and stores the
// authenticated user ID under the "user_id" context key.
func AuthMiddleware(parser TokenParser, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing Authorization header",
			})
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header must be a bearer token",
			})
			return
		}

		claims, err := parser.ParseJwtToken(token)
		if err != nil {
			logger.Warn("Token validation failed",
				"path", c.Request.URL.Path,
				"error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		userID := claims.User.Id
		if userID == "" {
			userID = claims.Subject
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Token carries no user identity",
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("user_name", claims.User.Name)
		c.Next()
	}
}
