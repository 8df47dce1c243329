package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/organizer/internal/archive"
	"github.com/JaimeStill/organizer/internal/config"
	"github.com/JaimeStill/organizer/internal/organizer"
	"github.com/JaimeStill/organizer/pkg/openapi"
	"github.com/JaimeStill/organizer/pkg/routes"
)

// Groups returns the route groups served by the API module.
// Route definitions do not touch domain state, so a zero Domain can be used
// to describe the API without starting it.
func Groups(domain *Domain, logger *slog.Logger) []routes.Group {
	return []routes.Group{
		organizer.NewHandler(domain.Engine, logger).Routes(),
		archive.NewHandler(domain.Archive, logger).Routes(),
	}
}

// Spec builds the OpenAPI document for groups mounted under the configured base path.
func Spec(cfg *config.Config, groups ...routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer("http://" + cfg.Server.Addr())

	routes.Document(spec, cfg.API.BasePath, groups...)
	spec.AddOperation(cfg.API.BasePath+"/openapi.json", http.MethodGet, &openapi.Operation{
		OperationID: "getOpenAPI",
		Summary:     "This document",
		Tags:        []string{"Meta"},
		Responses: map[int]*openapi.Response{
			200: {Description: "OpenAPI 3.1 document"},
		},
	})

	return spec
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := Groups(domain, runtime.Logger)
	routes.Register(mux, groups...)

	specBytes, err := openapi.MarshalJSON(Spec(cfg, groups...))
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
