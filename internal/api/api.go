// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/organizer/internal/config"
	"github.com/JaimeStill/organizer/internal/infrastructure"
	"github.com/JaimeStill/organizer/pkg/middleware"
	"github.com/JaimeStill/organizer/pkg/module"
)

// API is the mounted API module together with the domain systems behind it.
type API struct {
	*module.Module
	Domain  *Domain
	runtime *Runtime
}

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*API, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.MaxBodySize(runtime.MaxBodySize))

	return &API{
		Module:  m,
		Domain:  domain,
		runtime: runtime,
	}, nil
}

// Start registers the initial library load with the lifecycle coordinator.
// Call it after the infrastructure has started so the schema exists.
func (a *API) Start() error {
	return a.Domain.Engine.Start(a.runtime.Lifecycle)
}
