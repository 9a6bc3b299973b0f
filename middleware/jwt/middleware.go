// Package jwt provides route middleware for host applications that gate
// resources behind an MFA-issued bearer token.
package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tech-arch1tect/mfakit/services/jwt"
)

const (
	IdentityKey = "_jwt_identity"
	ClaimsKey   = "_jwt_claims"
)

// RequireJWT accepts only access tokens. Refresh tokens authenticate the
// refresh endpoint, never a resource.
func RequireJWT(jwtService *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "JWT token required")
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrExpiredToken):
					return echo.NewHTTPError(http.StatusUnauthorized, "JWT token has expired")
				case errors.Is(err, jwt.ErrMalformedToken):
					return echo.NewHTTPError(http.StatusUnauthorized, "Malformed JWT token")
				case errors.Is(err, jwt.ErrInvalidSignature):
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid JWT token signature")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid JWT token")
				}
			}

			if claims.TokenType != jwt.TokenTypeAccess {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			c.Set(IdentityKey, claims.Identity)
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}

func GetIdentity(c echo.Context) string {
	if identity, ok := c.Get(IdentityKey).(string); ok {
		return identity
	}
	return ""
}

func GetClaims(c echo.Context) *jwt.Claims {
	if claims, ok := c.Get(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
