package archive

import (
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/JaimeStill/organizer/pkg/handlers"
	"github.com/JaimeStill/organizer/pkg/openapi"
	"github.com/JaimeStill/organizer/pkg/routes"
)

// Handler provides HTTP endpoints for snapshot operations.
type Handler struct {
	archive *Archive
	logger  *slog.Logger
}

// ImportResult reports how many prompts an import created.
type ImportResult struct {
	Key      string `json:"key"`
	Imported int    `json:"imported"`
}

// NewHandler creates a Handler for archive.
func NewHandler(archive *Archive, logger *slog.Logger) *Handler {
	return &Handler{
		archive: archive,
		logger:  logger.With("handler", "archive"),
	}
}

// Routes returns the route group definition for archive endpoints.
func (h *Handler) Routes() routes.Group {
	keyParam := []*openapi.Parameter{openapi.KeyParam("key", "Snapshot storage key")}

	return routes.Group{
		Prefix: "/archive",
		Tags:   []string{"Archive"},
		Schemas: map[string]*openapi.Schema{
			"Manifest": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"id":         {Type: "string", Format: "uuid"},
					"key":        {Type: "string"},
					"count":      {Type: "integer"},
					"size":       {Type: "integer", Format: "int64"},
					"exportedAt": {Type: "string", Format: "date-time"},
				},
			},
			"Blob": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"key":         {Type: "string"},
					"size":        {Type: "integer", Format: "int64"},
					"contentType": {Type: "string"},
					"modifiedAt":  {Type: "string", Format: "date-time"},
				},
			},
			"ImportResult": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"key":      {Type: "string"},
					"imported": {Type: "integer"},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.List,
				OpenAPI: &openapi.Operation{
					OperationID: "listSnapshots",
					Summary:     "List stored snapshots",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseArray("Snapshots", "Blob"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/export", Handler: h.Export,
				OpenAPI: &openapi.Operation{
					OperationID: "exportSnapshot",
					Summary:     "Write the library to a new snapshot",
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Snapshot written", "Manifest"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/import/{key...}", Handler: h.Import,
				OpenAPI: &openapi.Operation{
					OperationID: "importSnapshot",
					Summary:     "Add every prompt in a snapshot as a new prompt",
					Parameters:  keyParam,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Import result", "ImportResult"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
						422: {Description: "Snapshot is not valid", Content: map[string]*openapi.MediaType{
							"application/json": {Schema: openapi.SchemaRef("Error")},
						}},
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{key...}", Handler: h.Download,
				OpenAPI: &openapi.Operation{
					OperationID: "downloadSnapshot",
					Summary:     "Download a snapshot",
					Parameters:  keyParam,
					Responses: map[int]*openapi.Response{
						200: {Description: "Snapshot document", Content: map[string]*openapi.MediaType{
							"application/json": {},
						}},
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// List returns the stored snapshots.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	blobs, err := h.archive.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, blobs)
}

// Export writes a new snapshot and returns its manifest.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	m, err := h.archive.Export(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, m)
}

// Import adds the prompts of the snapshot named by the key path parameter.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	n, err := h.archive.Import(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ImportResult{Key: key, Imported: n})
}

// Download streams the snapshot named by the key path parameter.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	rc, err := h.archive.Open(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("snapshot download interrupted", "key", key, "error", err)
	}
}
