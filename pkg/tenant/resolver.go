package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts an organization identifier from an HTTP request.
type Resolver interface {
	// Resolve returns the identifier found in the request, or an empty
	// string when the request carries none.
	Resolve(r *http.Request) (string, error)
}

// HeaderResolver reads the identifier from an HTTP header.
type HeaderResolver struct {
	HeaderName string
}

// NewHeaderResolver creates a header resolver, defaulting to X-Organization-ID.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Organization-ID"
	}
	return &HeaderResolver{HeaderName: headerName}
}

func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// SubdomainResolver extracts the identifier from the request subdomain,
// e.g. "sorriso" from "sorriso.clinicore.app".
type SubdomainResolver struct {
	// Suffix to strip from the host (e.g. ".clinicore.app").
	// If empty, only the first subdomain part is used.
	Suffix string
}

// NewSubdomainResolver creates a subdomain resolver.
func NewSubdomainResolver(suffix string) *SubdomainResolver {
	return &SubdomainResolver{Suffix: suffix}
}

func (r *SubdomainResolver) Resolve(req *http.Request) (string, error) {
	host := req.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	// A bare domain.tld has no tenant subdomain.
	if len(strings.Split(host, ".")) < 3 {
		return "", nil
	}

	if r.Suffix != "" && strings.HasSuffix(host, r.Suffix) && len(host) > len(r.Suffix) {
		host = host[:len(host)-len(r.Suffix)]
	}

	parts := strings.Split(host, ".")
	if len(parts) == 0 || parts[0] == "" {
		return "", nil
	}

	subdomain := parts[0]
	if subdomain == "www" {
		if len(parts) < 2 {
			return "", nil
		}
		subdomain = parts[1]
	}
	return subdomain, nil
}

// PathResolver extracts the identifier from a URL path segment.
type PathResolver struct {
	// Position is the 1-based position in the path (e.g. 2 for /orgs/{id}/...).
	Position int
}

// NewPathResolver creates a path resolver.
func NewPathResolver(position int) *PathResolver {
	return &PathResolver{Position: position}
}

func (r *PathResolver) Resolve(req *http.Request) (string, error) {
	if r.Position < 1 {
		return "", errors.New("invalid path position")
	}

	path := strings.Trim(req.URL.Path, "/")
	if path == "" {
		return "", nil
	}

	parts := strings.Split(path, "/")
	if r.Position > len(parts) {
		return "", nil
	}
	return parts[r.Position-1], nil
}

// CompositeResolver tries multiple resolvers in order until one yields an
// identifier.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error
	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver errors: %w", errors.Join(errs...))
	}
	return "", nil
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(r *http.Request) (string, error)

func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}
