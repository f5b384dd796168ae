package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gold2201/LocalNetworkProject/internal/auth/jwt"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
)

// JWTAuthMiddleware creates a middleware that validates JWT tokens
func JWTAuthMiddleware(jwtService *jwt.Service, errs *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errs.HandleError(c, errorx.UnauthorizedError())
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errs.HandleError(c, errorx.UnauthorizedError())
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			errs.HandleError(c, errorx.UnauthorizedError().WithCause(err))
			return
		}

		c.Set(cnst.CtxKeyClaims, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose token lacks role. It must run after
// JWTAuthMiddleware.
func RequireRole(role string, errs *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(cnst.CtxKeyClaims)
		claims, isClaims := v.(*jwt.Claims)
		if !ok || !isClaims {
			errs.HandleError(c, errorx.UnauthorizedError())
			return
		}
		if claims.Role != role {
			errs.HandleError(c, errorx.ForbiddenError())
			return
		}
		c.Next()
	}
}

// GetClaims returns the validated claims, if any
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(cnst.CtxKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
