// Package docs generates API documentation: query-parameter descriptors
// derived from each resource's declared capabilities, and the endpoints
// that serve the assembled OpenAPI document and its UI.
package docs

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/mbranch/crud-api/internal/api"
)

// Parameter is one documented query parameter of a resource action.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ResourceInfo describes the documented capabilities of one resource:
// which columns the search parameter matches and which associations
// populate can load.
type ResourceInfo struct {
	Name          string
	SearchColumns []string
	Associations  []string
}

// Description templates, rendered against a ResourceInfo. Kept as
// templates so the examples always reference the resource's real columns.
var descriptions = template.Must(template.New("params").Funcs(template.FuncMap{
	"join": strings.Join,
	"first": func(ss []string) string {
		if len(ss) == 0 {
			return "name"
		}
		return ss[0]
	},
}).Parse(`
{{- define "orderBy" -}}
Ordering clauses as a JSON array, e.g. [{"property":"{{ first .SearchColumns }}","direction":"ASC"}]. Clauses apply in sequence.
{{- end -}}
{{- define "criteria" -}}
Exact-match filters as a JSON object of column/value pairs, e.g. {"{{ first .SearchColumns }}":"value"}.
{{- end -}}
{{- define "search" -}}
Free-text term matched against: {{ join .SearchColumns ", " }}.
{{- end -}}
{{- define "limit" -}}
Maximum number of rows to return.
{{- end -}}
{{- define "offset" -}}
Number of rows to skip before the first returned row.
{{- end -}}
`))

// DescribeAction produces the documentation parameter descriptors for one
// action of the given resource. Actions without query parameters yield an
// empty set.
func DescribeAction(action api.Action, info ResourceInfo) []Parameter {
	switch action.Name {
	case api.ActionList.Name:
		params := []Parameter{
			render(api.ParamCriteria, "string", "criteria", info),
			render(api.ParamSearch, "string", "search", info),
			render(api.ParamOrderBy, "string", "orderBy", info),
			render(api.ParamLimit, "integer", "limit", info),
			render(api.ParamOffset, "integer", "offset", info),
		}
		return append(params, populateParams(info)...)

	case api.ActionIDs.Name:
		return []Parameter{
			render(api.ParamCriteria, "string", "criteria", info),
			render(api.ParamSearch, "string", "search", info),
			render(api.ParamOrderBy, "string", "orderBy", info),
			render(api.ParamLimit, "integer", "limit", info),
			render(api.ParamOffset, "integer", "offset", info),
		}

	case api.ActionCount.Name:
		return []Parameter{
			render(api.ParamCriteria, "string", "criteria", info),
			render(api.ParamSearch, "string", "search", info),
		}

	case api.ActionFind.Name:
		return populateParams(info)

	default:
		return nil
	}
}

// populateParams derives one populate descriptor per declared association.
func populateParams(info ResourceInfo) []Parameter {
	params := make([]Parameter, 0, len(info.Associations))
	for _, assoc := range info.Associations {
		params = append(params, Parameter{
			Name: api.ParamPopulate,
			In:   "query",
			Type: "string",
			Description: fmt.Sprintf(
				"Set to %q to include the %s relation in the response.",
				assoc, assoc),
		})
	}
	return params
}

func render(name, typ, tmpl string, info ResourceInfo) Parameter {
	var sb strings.Builder
	if err := descriptions.ExecuteTemplate(&sb, tmpl, info); err != nil {
		// Templates are static; a render failure is a programming error.
		// ALLOW-PANIC: fail fast on broken documentation templates.
		panic(fmt.Sprintf("failed to render %s description: %v", name, err))
	}
	return Parameter{
		Name:        name,
		In:          "query",
		Type:        typ,
		Description: sb.String(),
	}
}
