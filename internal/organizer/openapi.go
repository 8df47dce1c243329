package organizer

import "github.com/JaimeStill/organizer/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"Prompt": {
		Type:     "object",
		Required: []string{"id", "title", "description", "promptText", "tags", "createdAt", "modifiedAt"},
		Properties: map[string]*openapi.Schema{
			"id":          {Type: "integer", Format: "int64", ReadOnly: true},
			"title":       {Type: "string"},
			"description": {Type: "string"},
			"promptText":  {Type: "string"},
			"tags":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"createdAt":   {Type: "string", Format: "date-time", ReadOnly: true},
			"modifiedAt":  {Type: "string", Format: "date-time", ReadOnly: true},
		},
	},
	"PromptFields": {
		Type:     "object",
		Required: []string{"title", "description", "promptText"},
		Properties: map[string]*openapi.Schema{
			"title":       {Type: "string"},
			"description": {Type: "string"},
			"promptText":  {Type: "string"},
			"tags":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
		},
	},
	"Query": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"search":    {Type: "string", Description: "Case-insensitive substring of title, description, or prompt text"},
			"tags":      {Type: "array", Items: &openapi.Schema{Type: "string"}, Description: "Every tag must be present"},
			"sortBy":    {Type: "string", Enum: []any{"title", "createdAt"}, Default: "title"},
			"sortOrder": {Type: "string", Enum: []any{"asc", "desc"}, Default: "asc"},
		},
	},
}

var ops = struct {
	list     *openapi.Operation
	create   *openapi.Operation
	search   *openapi.Operation
	tags     *openapi.Operation
	query    *openapi.Operation
	setQuery *openapi.Operation
	view     *openapi.Operation
	refresh  *openapi.Operation
	find     *openapi.Operation
	update   *openapi.Operation
	delete   *openapi.Operation
}{
	list: &openapi.Operation{
		OperationID: "listPrompts",
		Summary:     "Filter and sort prompts",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("search", "string", "Case-insensitive substring of title, description, or prompt text"),
			openapi.ListParam("tags", "Tags that must all be present"),
			openapi.EnumParam("sort_by", "Sort key", string(SortByTitle), string(SortByCreatedAt)),
			openapi.EnumParam("sort_order", "Sort direction", string(SortAsc), string(SortDesc)),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArray("Matching prompts", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	create: &openapi.Operation{
		OperationID: "createPrompt",
		Summary:     "Create a prompt",
		RequestBody: openapi.RequestBodyJSON("PromptFields", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	search: &openapi.Operation{
		OperationID: "searchPrompts",
		Summary:     "Filter and sort prompts with a JSON query",
		RequestBody: openapi.RequestBodyJSON("Query", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArray("Matching prompts", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	tags: &openapi.Operation{
		OperationID: "listTags",
		Summary:     "List every tag in the library",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Distinct tags in first-appearance order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}},
				},
			},
		},
	},
	query: &openapi.Operation{
		OperationID: "getQuery",
		Summary:     "Get the current view query",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Current query", "Query"),
		},
	},
	setQuery: &openapi.Operation{
		OperationID: "setQuery",
		Summary:     "Replace the current view query",
		RequestBody: openapi.RequestBodyJSON("Query", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Stored query", "Query"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	view: &openapi.Operation{
		OperationID: "getView",
		Summary:     "Prompts matching the current view query",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArray("Current view", "Prompt"),
		},
	},
	refresh: &openapi.Operation{
		OperationID: "refreshPrompts",
		Summary:     "Reload the library from storage",
		Responses: map[int]*openapi.Response{
			204: {Description: "Reloaded"},
			500: openapi.ResponseRef("InternalError"),
		},
	},
	find: &openapi.Operation{
		OperationID: "findPrompt",
		Summary:     "Get a prompt by id",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	update: &openapi.Operation{
		OperationID: "updatePrompt",
		Summary:     "Replace every field of a prompt",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
		RequestBody: openapi.RequestBodyJSON("PromptFields", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	delete: &openapi.Operation{
		OperationID: "deletePrompt",
		Summary:     "Delete a prompt",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
}
