package multitenancy

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
	"shopbase/pkg/jwtutil"
	"shopbase/pkg/logger"
)

// Request-boundary signal names. Exact spellings matter for compatibility
// with the storefront and admin frontends.
const (
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
	HeaderTenantHost      = "X-Tenant-Host"

	localDevHost = "localhost"
)

// TenantLookup is the slice of the store the resolver needs.
type TenantLookup interface {
	FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error)
}

// MetricsRecorder receives resolver outcomes; nil disables recording.
type MetricsRecorder interface {
	RecordTenantResolution(source, outcome string)
}

// Resolver determines the current tenant once per inbound request and binds
// it to the request context. Precedence, first match wins:
//
//  1. an authenticated identity carrying a tenant_id claim (high trust);
//  2. the X-Tenant-Subdomain header;
//  3. a subdomain extracted from X-Tenant-Host, else from the request host.
//
// An extracted subdomain must resolve to a registered, active tenant or the
// request fails with 404/503. No signal at all leaves the request unbound.
type Resolver struct {
	tenants    TenantLookup
	rootDomain string
	metrics    MetricsRecorder
	skipPaths  []string
}

// NewResolver builds a Resolver for the given root domain, e.g. "diploma.ru".
func NewResolver(tenants TenantLookup, rootDomain string, metrics MetricsRecorder) *Resolver {
	return &Resolver{
		tenants:    tenants,
		rootDomain: strings.ToLower(strings.TrimPrefix(rootDomain, ".")),
		metrics:    metrics,
		skipPaths: []string{
			"/api/v1/auth/",
			"/health",
			"/metrics",
			"/swagger",
		},
	}
}

// Middleware returns the echo middleware performing the resolution. It must
// be registered after the authentication middleware so token claims are
// already available.
func (r *Resolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.isIgnoredPath(c.Request().URL.Path) {
				return next(c)
			}

			log := logger.FromEcho(c)

			if tenantID, ok := tenantIDFromClaims(c); ok {
				log.Debug("tenant resolved from token claims", zap.Uint("tenant_id", tenantID))
				r.record("token", "bound")
				return next(r.bind(c, tenantID))
			}

			subdomain := r.resolveSubdomain(c.Request())
			if subdomain == "" {
				// Genuinely tenant-agnostic request; downstream authorization
				// decides whether that is acceptable.
				r.record("none", "unbound")
				return next(c)
			}

			tenant, err := r.tenants.FindBySubdomain(c.Request().Context(), subdomain)
			if err != nil {
				if apperr.IsNotFound(err) {
					log.Warn("unknown store subdomain", zap.String("subdomain", subdomain))
					r.record("subdomain", "not_found")
					return echo.NewHTTPError(http.StatusNotFound,
						"The store at '"+c.Request().Host+"' was not found.")
				}
				log.Error("tenant lookup failed", zap.String("subdomain", subdomain), zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError, "tenant resolution failed")
			}

			if !tenant.Active {
				log.Warn("inactive store", zap.String("subdomain", subdomain), zap.Uint("tenant_id", tenant.ID))
				r.record("subdomain", "inactive")
				return echo.NewHTTPError(http.StatusServiceUnavailable,
					"This store is temporarily unavailable.")
			}

			log.Debug("tenant resolved from subdomain",
				zap.String("subdomain", subdomain), zap.Uint("tenant_id", tenant.ID))
			r.record("subdomain", "bound")
			return next(r.bind(c, tenant.ID))
		}
	}
}

func (r *Resolver) bind(c echo.Context, tenantID uint) echo.Context {
	ctx := WithTenant(c.Request().Context(), tenantID)
	c.SetRequest(c.Request().WithContext(ctx))
	return c
}

func (r *Resolver) record(source, outcome string) {
	if r.metrics != nil {
		r.metrics.RecordTenantResolution(source, outcome)
	}
}

func (r *Resolver) isIgnoredPath(path string) bool {
	for _, prefix := range r.skipPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (r *Resolver) resolveSubdomain(req *http.Request) string {
	if subdomain := req.Header.Get(HeaderTenantSubdomain); subdomain != "" {
		return strings.ToLower(strings.TrimSpace(subdomain))
	}
	if tenantHost := req.Header.Get(HeaderTenantHost); tenantHost != "" {
		return r.extractSubdomain(tenantHost)
	}
	return r.extractSubdomain(req.Host)
}

// extractSubdomain returns the shop label of host, or "" when host is the
// bare root domain, localhost, or outside the configured root domain.
func (r *Resolver) extractSubdomain(host string) string {
	if host == "" {
		return ""
	}

	if colon := strings.Index(host, ":"); colon != -1 {
		host = host[:colon]
	}
	host = strings.ToLower(host)

	if host == localDevHost || host == r.rootDomain {
		return ""
	}

	suffix := "." + r.rootDomain
	if strings.HasSuffix(host, suffix) {
		subdomain := strings.TrimSuffix(host, suffix)
		if subdomain != "" && !strings.Contains(subdomain, ".") {
			return subdomain
		}
	}

	return ""
}

func tenantIDFromClaims(c echo.Context) (uint, bool) {
	claims, ok := c.Get("user").(*jwtutil.TenantUserClaims)
	if !ok || claims == nil || claims.TenantID == nil {
		return 0, false
	}
	return *claims.TenantID, true
}
