package docs

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mbranch/crud-api/internal/api"
	"github.com/mbranch/crud-api/internal/api/shared"
)

// Handlers serves the generated OpenAPI document and a Swagger UI page for
// the registered resources.
type Handlers struct {
	resources []ResourceInfo
}

// NewHandlers creates documentation handlers for the given resources.
func NewHandlers(resources []ResourceInfo) *Handlers {
	return &Handlers{resources: resources}
}

// RegisterRoutes registers the documentation routes with the router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/openapi.json", h.serveOpenAPI)
	r.Get("/swagger-ui", h.serveSwaggerUI)
	r.Get("/api-docs", h.serveSwaggerUI) // Alias
}

// serveOpenAPI serves the OpenAPI document assembled from the registered
// resources and the fixed action set.
func (h *Handlers) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.document())
}

// document assembles a minimal OpenAPI 3 description: one path item per
// action per resource, carrying the described query parameters. Response
// schemas are out of scope; parameter shape is the point.
func (h *Handlers) document() map[string]any {
	paths := map[string]any{}

	for _, res := range h.resources {
		for _, action := range api.Actions {
			route := "/api/" + res.Name
			switch {
			case action.RequiresID:
				route += "/{id}"
			case action.Name == api.ActionCount.Name:
				route += "/count"
			case action.Name == api.ActionIDs.Name:
				route += "/ids"
			}

			item, _ := paths[route].(map[string]any)
			if item == nil {
				item = map[string]any{}
				paths[route] = item
			}

			params := []any{}
			if action.RequiresID {
				params = append(params, map[string]any{
					"name":     "id",
					"in":       "path",
					"required": true,
					"schema":   map[string]any{"type": "string", "format": "uuid"},
				})
			}
			for _, p := range DescribeAction(action, res) {
				params = append(params, map[string]any{
					"name":        p.Name,
					"in":          p.In,
					"description": p.Description,
					"schema":      map[string]any{"type": p.Type},
				})
			}

			for _, method := range action.Methods {
				item[strings.ToLower(method)] = map[string]any{
					"operationId": res.Name + "_" + action.Name,
					"tags":        []string{res.Name},
					"parameters":  params,
				}
			}
		}
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "crud-api",
			"version": "1.0.0",
		},
		"paths": paths,
	}
}

// serveSwaggerUI serves the Swagger UI HTML page, loading the assets from
// the CDN for convenience.
func (h *Handlers) serveSwaggerUI(w http.ResponseWriter, r *http.Request) {
	tmpl := template.Must(template.New("swagger").Parse(swaggerUITemplate))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, nil); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"failed to render documentation page")
	}
}

const swaggerUITemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>crud-api - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>

<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui-bundle.js" charset="UTF-8"></script>
<script>
  window.onload = function() {
    window.ui = SwaggerUIBundle({
      url: "/openapi.json",
      dom_id: "#swagger-ui",
    });
  };
</script>
</body>
</html>`
