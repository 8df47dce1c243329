// Package module mounts self-contained HTTP routers under single-segment
// path prefixes, each with its own middleware stack.
package module

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/organizer/pkg/middleware"
)

// Module errors.
var (
	// ErrInvalidPrefix indicates a module prefix that is not a single-level sub-path.
	ErrInvalidPrefix = errors.New("invalid module prefix")
	// ErrDuplicatePrefix indicates a second module mounted at an occupied prefix.
	ErrDuplicatePrefix = errors.New("module prefix already mounted")
)

// Module is a router served under a prefix. Requests reach the inner router
// with the prefix removed, so routes are registered relative to it.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System

	mu      sync.Mutex
	handler http.Handler
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics with ErrInvalidPrefix if the prefix is empty or not a single-level path.
func New(prefix string, router http.Handler) *Module {
	if err := ValidatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.middleware.Use(mw)
	m.handler = nil
}

// Handler returns the inner router wrapped with the module's middleware stack.
// The chain is built once and rebuilt only after Use.
func (m *Module) Handler() http.Handler {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handler == nil {
		m.handler = m.middleware.Apply(m.router)
	}
	return m.handler
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the module prefix from the request path and dispatches to the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}
	m.Handler().ServeHTTP(w, cloneRequest(req, path))
}

// ValidatePrefix reports whether prefix can be used to mount a Module.
func ValidatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("%w: empty", ErrInvalidPrefix)
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("%w: must start with /: %s", ErrInvalidPrefix, prefix)
	case prefix == "/" || strings.Count(prefix, "/") != 1:
		return fmt.Errorf("%w: must be single-level sub-path: %s", ErrInvalidPrefix, prefix)
	}
	return nil
}

func cloneRequest(req *http.Request, path string) *http.Request {
	r := req.Clone(req.Context())
	u := *req.URL
	u.Path = path
	u.RawPath = ""
	r.URL = &u
	return r
}

