package organizer

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/organizer/internal/prompts"
	"github.com/JaimeStill/organizer/pkg/handlers"
	"github.com/JaimeStill/organizer/pkg/routes"
)

// Handler provides HTTP endpoints over an Engine.
type Handler struct {
	engine *Engine
	logger *slog.Logger
}

// NewHandler creates a Handler for engine.
func NewHandler(engine *Engine, logger *slog.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger.With("handler", "prompts"),
	}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/prompts",
		Tags:    []string{"Prompts"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: ops.list},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: ops.create},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: ops.search},
			{Method: "GET", Pattern: "/tags", Handler: h.Tags, OpenAPI: ops.tags},
			{Method: "GET", Pattern: "/query", Handler: h.Query, OpenAPI: ops.query},
			{Method: "PUT", Pattern: "/query", Handler: h.SetQuery, OpenAPI: ops.setQuery},
			{Method: "GET", Pattern: "/view", Handler: h.View, OpenAPI: ops.view},
			{Method: "POST", Pattern: "/refresh", Handler: h.Refresh, OpenAPI: ops.refresh},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: ops.find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: ops.update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: ops.delete},
		},
	}
}

// List returns the view for a query given as URL parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := QueryFromValues(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondView(w, q)
}

// Search returns the view for a query given as a JSON body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var q Query
	if err := handlers.DecodeJSON(r, &q); err != nil {
		handlers.RespondError(w, h.logger, decodeStatus(err), err)
		return
	}
	h.respondView(w, q)
}

func (h *Handler) respondView(w http.ResponseWriter, q Query) {
	view, err := h.engine.ViewOf(q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, view)
}

// Tags returns every tag in the library.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.engine.Tags())
}

// Query returns the current view query.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.engine.Query())
}

// SetQuery replaces the current view query and returns it normalized.
func (h *Handler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var q Query
	if err := handlers.DecodeJSON(r, &q); err != nil {
		handlers.RespondError(w, h.logger, decodeStatus(err), err)
		return
	}

	if err := h.engine.SetQuery(q); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.engine.Query())
}

// View returns the view for the current query.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.engine.View())
}

// Refresh reloads the working set from the store.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Refresh(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Find returns a single prompt by its id path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	p, err := h.engine.Find(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Create saves a new prompt from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0, http.StatusCreated)
}

// Update replaces every field of an existing prompt from a JSON body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.save(w, r, id, http.StatusOK)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id int64, status int) {
	var fields prompts.Fields
	if err := handlers.DecodeJSON(r, &fields); err != nil {
		handlers.RespondError(w, h.logger, decodeStatus(err), err)
		return
	}

	if err := fields.Validate(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	p, err := h.engine.Save(r.Context(), Intent{ID: id, Fields: fields})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, status, p)
}

// Delete removes a prompt by its id path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.engine.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// decodeStatus lets sort validation errors raised during decoding keep their status.
func decodeStatus(err error) int {
	if status := MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return handlers.DecodeStatus(err)
}
