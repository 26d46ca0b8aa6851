package multitenancy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbase/internal/model"
	"shopbase/internal/repository/memstore"
	"shopbase/pkg/jwtutil"
)

type resolverFixture struct {
	resolver *Resolver
	shop1    *model.Tenant
	closed   *model.Tenant
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()

	store := memstore.New()
	shop1 := &model.Tenant{Name: "Shop One", Subdomain: "shop1", Active: true}
	require.NoError(t, store.Tenants().Create(context.Background(), shop1))
	closed := &model.Tenant{Name: "Closed Shop", Subdomain: "closed", Active: false}
	require.NoError(t, store.Tenants().Create(context.Background(), closed))

	return &resolverFixture{
		resolver: NewResolver(store.Tenants(), "diploma.ru", nil),
		shop1:    shop1,
		closed:   closed,
	}
}

// resolve runs one request through the middleware and reports the bound
// tenant id, or the terminal HTTP error.
func (f *resolverFixture) resolve(t *testing.T, configure func(*http.Request), claims *jwtutil.TenantUserClaims) (uint, bool, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	if configure != nil {
		configure(req)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if claims != nil {
		c.Set("user", claims)
	}

	var boundID uint
	var bound bool
	handler := f.resolver.Middleware()(func(c echo.Context) error {
		boundID, bound = FromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return boundID, bound, err
}

func TestResolveFromHostSubdomain(t *testing.T) {
	f := newResolverFixture(t)

	id, bound, err := f.resolve(t, func(req *http.Request) {
		req.Host = "shop1.diploma.ru"
	}, nil)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, f.shop1.ID, id)
}

func TestBareRootDomainStaysUnbound(t *testing.T) {
	f := newResolverFixture(t)

	_, bound, err := f.resolve(t, func(req *http.Request) {
		req.Host = "diploma.ru"
	}, nil)
	require.NoError(t, err)
	assert.False(t, bound)
}

func TestLocalhostStaysUnbound(t *testing.T) {
	f := newResolverFixture(t)

	_, bound, err := f.resolve(t, func(req *http.Request) {
		req.Host = "localhost:8080"
	}, nil)
	require.NoError(t, err)
	assert.False(t, bound)
}

func TestUnknownSubdomainIs404(t *testing.T) {
	f := newResolverFixture(t)

	_, _, err := f.resolve(t, func(req *http.Request) {
		req.Host = "ghost.diploma.ru"
	}, nil)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Contains(t, httpErr.Message, "was not found")
}

func TestInactiveTenantIs503(t *testing.T) {
	f := newResolverFixture(t)

	_, _, err := f.resolve(t, func(req *http.Request) {
		req.Host = "closed.diploma.ru"
	}, nil)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
	assert.Contains(t, httpErr.Message, "temporarily unavailable")
}

func TestSubdomainHeaderBeatsHost(t *testing.T) {
	f := newResolverFixture(t)

	id, bound, err := f.resolve(t, func(req *http.Request) {
		req.Host = "ghost.diploma.ru"
		req.Header.Set(HeaderTenantSubdomain, "shop1")
	}, nil)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, f.shop1.ID, id)
}

func TestTenantHostHeaderBeatsRequestHost(t *testing.T) {
	f := newResolverFixture(t)

	id, bound, err := f.resolve(t, func(req *http.Request) {
		req.Host = "admin.internal"
		req.Header.Set(HeaderTenantHost, "shop1.diploma.ru")
	}, nil)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, f.shop1.ID, id)
}

func TestClaimsBeatSubdomainSignal(t *testing.T) {
	f := newResolverFixture(t)

	// Identity bound to shop1 wins over a host pointing at the closed shop;
	// the closed shop's 503 never fires because the claim short-circuits.
	id, bound, err := f.resolve(t, func(req *http.Request) {
		req.Host = "closed.diploma.ru"
	}, &jwtutil.TenantUserClaims{TenantID: &f.shop1.ID})
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, f.shop1.ID, id)
}

func TestClaimsWithoutTenantFallThrough(t *testing.T) {
	f := newResolverFixture(t)

	id, bound, err := f.resolve(t, func(req *http.Request) {
		req.Host = "shop1.diploma.ru"
	}, &jwtutil.TenantUserClaims{})
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, f.shop1.ID, id)
}

func TestBypassPathsSkipResolution(t *testing.T) {
	f := newResolverFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Host = "ghost.diploma.ru"
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := f.resolver.Middleware()(func(c echo.Context) error {
		_, bound := FromContext(c.Request().Context())
		assert.False(t, bound)
		return c.NoContent(http.StatusOK)
	})
	// An unknown subdomain on a bypass path must not 404.
	assert.NoError(t, handler(c))
}

func TestExtractSubdomain(t *testing.T) {
	r := NewResolver(nil, "diploma.ru", nil)

	cases := map[string]string{
		"shop1.diploma.ru":      "shop1",
		"SHOP1.diploma.ru":      "shop1",
		"shop1.diploma.ru:8080": "shop1",
		"diploma.ru":            "",
		"localhost":             "",
		"localhost:3000":        "",
		"a.b.diploma.ru":        "",
		"otherdomain.com":       "",
		"":                      "",
	}
	for host, want := range cases {
		assert.Equal(t, want, r.extractSubdomain(host), "host %q", host)
	}
}
