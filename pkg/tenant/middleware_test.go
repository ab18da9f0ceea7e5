package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/pkg/tenant"
)

type stubProvider struct {
	orgs  map[string]*tenant.Organization
	calls atomic.Int64
}

func (p *stubProvider) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Organization, error) {
	p.calls.Add(1)
	org, ok := p.orgs[identifier]
	if !ok {
		return nil, tenant.ErrOrganizationNotFound
	}
	return org, nil
}

func newStubProvider(orgs ...*tenant.Organization) *stubProvider {
	p := &stubProvider{orgs: make(map[string]*tenant.Organization)}
	for _, org := range orgs {
		p.orgs[org.Slug] = org
	}
	return p
}

func echoOrgHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if org, ok := tenant.FromContext(r.Context()); ok {
			w.Header().Set("X-Resolved-Org", org.Slug)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("resolves organization into context", func(t *testing.T) {
		t.Parallel()

		org := testOrg()
		provider := newStubProvider(org)
		handler := tenant.Middleware(
			tenant.NewHeaderResolver(""),
			provider,
			tenant.WithCache(tenant.NewNoOpCache()),
		)(echoOrgHandler(t))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Organization-ID", org.Slug)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, org.Slug, rec.Header().Get("X-Resolved-Org"))
	})

	t.Run("no identifier passes through without organization", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider()
		handler := tenant.Middleware(tenant.NewHeaderResolver(""), provider)(echoOrgHandler(t))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Resolved-Org"))
		assert.Zero(t, provider.calls.Load())
	})

	t.Run("unknown organization yields 404", func(t *testing.T) {
		t.Parallel()

		handler := tenant.Middleware(
			tenant.NewHeaderResolver(""),
			newStubProvider(),
			tenant.WithCache(tenant.NewNoOpCache()),
		)(echoOrgHandler(t))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Organization-ID", "nao-existe")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inactive organization is rejected", func(t *testing.T) {
		t.Parallel()

		org := testOrg()
		org.Active = false
		handler := tenant.Middleware(
			tenant.NewHeaderResolver(""),
			newStubProvider(org),
			tenant.WithCache(tenant.NewNoOpCache()),
		)(echoOrgHandler(t))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Organization-ID", org.Slug)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("inactive organization allowed when not required", func(t *testing.T) {
		t.Parallel()

		org := testOrg()
		org.Active = false
		handler := tenant.Middleware(
			tenant.NewHeaderResolver(""),
			newStubProvider(org),
			tenant.WithCache(tenant.NewNoOpCache()),
			tenant.WithRequireActive(false),
		)(echoOrgHandler(t))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Organization-ID", org.Slug)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, org.Slug, rec.Header().Get("X-Resolved-Org"))
	})

	t.Run("skip paths bypass resolution", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider()
		handler := tenant.Middleware(
			tenant.NewHeaderResolver(""),
			provider,
			tenant.WithSkipPaths([]string{"/health"}),
		)(echoOrgHandler(t))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Organization-ID", "clinica-sorriso")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, provider.calls.Load())
	})

	t.Run("caches resolved organizations", func(t *testing.T) {
		t.Parallel()

		org := testOrg()
		provider := newStubProvider(org)
		cache := tenant.NewInMemoryCache()
		t.Cleanup(func() { _ = cache.Close() })

		handler := tenant.Middleware(
			tenant.NewHeaderResolver(""),
			provider,
			tenant.WithCache(cache),
		)(echoOrgHandler(t))

		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Organization-ID", org.Slug)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		assert.Equal(t, int64(1), provider.calls.Load())
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()

		handler := tenant.Middleware(
			tenant.NewHeaderResolver(""),
			newStubProvider(),
			tenant.WithCache(tenant.NewNoOpCache()),
			tenant.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				w.WriteHeader(http.StatusTeapot)
			}),
		)(echoOrgHandler(t))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Organization-ID", "nao-existe")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestRequireOrganization(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("organization present", func(t *testing.T) {
		t.Parallel()

		handler := tenant.RequireOrganization(nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(tenant.WithOrganization(req.Context(), testOrg()))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("organization missing", func(t *testing.T) {
		t.Parallel()

		handler := tenant.RequireOrganization(nil)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
