package tenant

import (
	"net/http"
	"strings"
	"time"
)

// Middleware resolves the organization for each request and stores it in
// the request context. Requests without an identifier pass through without
// an organization; routes that require one should stack RequireOrganization.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:         NewInMemoryCache(),
		cacheTTL:      5 * time.Minute,
		errorHandler:  defaultErrorHandler,
		requireActive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := cfg.cache.Get(r.Context(), identifier); ok {
				if cfg.requireActive && !cached.Active {
					cfg.errorHandler(w, r, ErrInactiveOrganization)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithOrganization(r.Context(), cached)))
				return
			}

			org, err := provider.GetByIdentifier(r.Context(), identifier)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && !org.Active {
				cfg.errorHandler(w, r, ErrInactiveOrganization)
				return
			}

			cfg.cache.Set(r.Context(), identifier, org, cfg.cacheTTL)
			next.ServeHTTP(w, r.WithContext(WithOrganization(r.Context(), org)))
		})
	}
}

// RequireOrganization ensures an organization is present in the context.
// Use it on routes that cannot operate without a tenant.
func RequireOrganization(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			org, ok := FromContext(r.Context())
			if !ok || org == nil {
				errorHandler(w, r, ErrNoOrganizationInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
