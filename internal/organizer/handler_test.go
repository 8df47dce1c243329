package organizer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/organizer/internal/organizer"
	"github.com/JaimeStill/organizer/internal/prompts"
	"github.com/JaimeStill/organizer/pkg/routes"
)

func newServer(t *testing.T, store *memStore) (*http.ServeMux, *organizer.Engine) {
	t.Helper()
	e := newEngine(t, store)
	mux := http.NewServeMux()
	routes.Register(mux, organizer.NewHandler(e, discard()).Routes())
	return mux, e
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHandlerList(t *testing.T) {
	mux, _ := newServer(t, newMemStore(exampleRecords()...))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		want       []int64
	}{
		{"default", "/prompts", http.StatusOK, []int64{2, 1}},
		{"search", "/prompts?search=sum", http.StatusOK, []int64{1}},
		{"tags", "/prompts?tags=writing,ideas", http.StatusOK, []int64{2}},
		{"desc", "/prompts?sort_by=title&sort_order=desc", http.StatusOK, []int64{1, 2}},
		{"invalid sort", "/prompts?sort_by=rank", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, "GET", tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.want == nil {
				return
			}
			if got := ids(decode[[]prompts.Prompt](t, rec)); !slices.Equal(got, tt.want) {
				t.Errorf("view: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandlerSearch(t *testing.T) {
	mux, _ := newServer(t, newMemStore(exampleRecords()...))

	rec := do(mux, "POST", "/prompts/search", `{"tags":["writing"],"sortOrder":"desc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got := ids(decode[[]prompts.Prompt](t, rec)); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("view: got %v, want [1 2]", got)
	}

	if rec := do(mux, "POST", "/prompts/search", `{"sortOrder":"sideways"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid order status: got %d, want 400", rec.Code)
	}
	if rec := do(mux, "POST", "/prompts/search", `{"page":2}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status: got %d, want 400", rec.Code)
	}
}

func TestHandlerQueryState(t *testing.T) {
	mux, _ := newServer(t, newMemStore(exampleRecords()...))

	rec := do(mux, "PUT", "/prompts/query", `{"search":"brain"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set status: got %d, want 200", rec.Code)
	}
	if q := decode[organizer.Query](t, rec); q.SortBy != organizer.SortByTitle {
		t.Errorf("normalized query: got %+v", q)
	}

	if q := decode[organizer.Query](t, do(mux, "GET", "/prompts/query", "")); q.Search != "brain" {
		t.Errorf("stored query: got %+v", q)
	}

	view := decode[[]prompts.Prompt](t, do(mux, "GET", "/prompts/view", ""))
	if got := ids(view); !slices.Equal(got, []int64{2}) {
		t.Errorf("view: got %v, want [2]", got)
	}

	tags := decode[[]string](t, do(mux, "GET", "/prompts/tags", ""))
	if !slices.Equal(tags, []string{"writing", "ideas"}) {
		t.Errorf("tags: got %v", tags)
	}
}

func TestHandlerCRUD(t *testing.T) {
	store := newMemStore()
	mux, _ := newServer(t, store)

	rec := do(mux, "POST", "/prompts", `{"title":"Outline","description":"Make an outline","promptText":"Outline this:","tags":["writing"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	created := decode[prompts.Prompt](t, rec)

	rec = do(mux, "PUT", "/prompts/1", `{"title":"Outline v2","description":"Make an outline","promptText":"Outline this:"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: got %d, want 200", rec.Code)
	}
	updated := decode[prompts.Prompt](t, rec)
	if updated.ID != created.ID || updated.Title != "Outline v2" || len(updated.Tags) != 0 {
		t.Errorf("updated: got %+v", updated)
	}

	if found := decode[prompts.Prompt](t, do(mux, "GET", "/prompts/1", "")); found.Title != "Outline v2" {
		t.Errorf("find: got %+v", found)
	}

	if rec := do(mux, "DELETE", "/prompts/1", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status: got %d, want 204", rec.Code)
	}
	if rec := do(mux, "GET", "/prompts/1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("find deleted status: got %d, want 404", rec.Code)
	}
}

func TestHandlerErrors(t *testing.T) {
	store := newMemStore(exampleRecords()...)
	mux, _ := newServer(t, store)

	valid := `{"title":"T","description":"D","promptText":"P"}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"blank title", "POST", "/prompts", `{"title":" ","description":"D","promptText":"P"}`, http.StatusBadRequest},
		{"malformed body", "POST", "/prompts", `{"title":`, http.StatusBadRequest},
		{"non-numeric id", "GET", "/prompts/abc", "", http.StatusBadRequest},
		{"zero id", "PUT", "/prompts/0", valid, http.StatusBadRequest},
		{"update missing", "PUT", "/prompts/99", valid, http.StatusNotFound},
		{"delete missing", "DELETE", "/prompts/99", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decode[map[string]string](t, rec); body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestHandlerStorageFailure(t *testing.T) {
	store := newMemStore(exampleRecords()...)
	mux, _ := newServer(t, store)

	store.failDelete = prompts.ErrStorage
	if rec := do(mux, "DELETE", "/prompts/1", ""); rec.Code != http.StatusInternalServerError {
		t.Errorf("delete status: got %d, want 500", rec.Code)
	}

	store.failLoad = prompts.ErrStorage
	if rec := do(mux, "POST", "/prompts/refresh", ""); rec.Code != http.StatusInternalServerError {
		t.Errorf("refresh status: got %d, want 500", rec.Code)
	}

	store.failLoad = nil
	if rec := do(mux, "POST", "/prompts/refresh", ""); rec.Code != http.StatusNoContent {
		t.Errorf("refresh status: got %d, want 204", rec.Code)
	}
}
