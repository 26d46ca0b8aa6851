package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopbase/internal/repository"
	"shopbase/pkg/jwtutil"
	"shopbase/pkg/logger"
)

// OptionalJWTAuth parses a Bearer token when one is present and stores the
// claims under the "user" context key. Requests without a token pass through
// unauthenticated so public endpoints and the tenant resolver keep working;
// a malformed or expired token is still rejected outright.
func OptionalJWTAuth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			c.Set("user", claims)
			log.Debug("JWT token validated successfully",
				zap.String("username", claims.Username),
				zap.String("full_username", claims.FullUsername))

			return next(c)
		}
	}
}

// RequireAuth rejects requests that did not authenticate through
// OptionalJWTAuth, and re-checks that the account and its tenant are still
// active so a disabled staff user or a suspended store cannot keep using an
// old token.
func RequireAuth(tenantUsers repository.TenantUserRepository, tenants repository.TenantRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			claims, ok := c.Get("user").(*jwtutil.TenantUserClaims)
			if !ok || claims == nil {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
			}

			if claims.TenantID != nil {
				account, err := tenantUsers.FindByTenantAndUsername(c.Request().Context(), *claims.TenantID, claims.Username)
				if err != nil || !account.Active {
					log.Warn("Token refers to a disabled or unknown account",
						zap.String("username", claims.Username))
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Account is disabled"})
				}

				tenant, err := tenants.FindByID(c.Request().Context(), *claims.TenantID)
				if err != nil || !tenant.Active {
					log.Warn("Token refers to an inactive tenant", zap.Uintp("tenant_id", claims.TenantID))
					return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "This store is temporarily unavailable."})
				}
			}

			return next(c)
		}
	}
}

// ClaimsFromEcho returns the authenticated claims, or nil for anonymous
// requests.
func ClaimsFromEcho(c echo.Context) *jwtutil.TenantUserClaims {
	claims, _ := c.Get("user").(*jwtutil.TenantUserClaims)
	return claims
}
