package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/organizer/internal/api"
	"github.com/JaimeStill/organizer/internal/config"
	"github.com/JaimeStill/organizer/internal/infrastructure"
	"github.com/JaimeStill/organizer/pkg/module"
)

// Modules holds every module mounted on the root router.
type Modules struct {
	API *api.API
}

// NewModules creates all application modules.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount registers every module with router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API.Module)
}

// Start registers module startup hooks. Infrastructure must be started first.
func (m *Modules) Start() error {
	return m.API.Start()
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
