package middleware

import (
	"net/http"
	"strings"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"
	"github.com/Siva2k2k/ES-TM-sub001/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireRole.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// RequireRole validates the JWT token and checks that its role claim is one of allowedRoles.
// The token is read from the access_token cookie, falling back to the Authorization header.
func RequireRole(secret []byte, allowedRoles ...model.ApproverRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Subject not found in token"))
			return
		}

		rawRole, ok := claims["role"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}
		userRole, err := model.ParseApproverRole(rawRole)
		if err != nil || !roleAllowed(userRole, allowedRoles) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, userRole)

		c.Next()
	}
}

// Approver returns the identity stored by RequireRole.
func Approver(c *gin.Context) (string, model.ApproverRole) {
	id := c.GetString(ContextUserID)
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(model.ApproverRole)
	return id, r
}

func tokenFromRequest(c *gin.Context) (string, bool) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
		return "", false
	}
	return parts[1], true
}

func roleAllowed(role model.ApproverRole, allowed []model.ApproverRole) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
