package api

import "net/http"

// Action is the static metadata of one REST action: its name, the HTTP
// verbs it accepts, and whether it addresses a single resource by
// identifier or carries a request body. Defined once, shared by dispatch
// and by the parameter describer.
type Action struct {
	Name       string
	Methods    []string
	RequiresID bool
	HasBody    bool
}

// The fixed action set every resource exposes.
var (
	ActionList   = Action{Name: "list", Methods: []string{http.MethodGet}}
	ActionFind   = Action{Name: "find", Methods: []string{http.MethodGet}, RequiresID: true}
	ActionCreate = Action{Name: "create", Methods: []string{http.MethodPost}, HasBody: true}
	ActionUpdate = Action{Name: "update", Methods: []string{http.MethodPut}, RequiresID: true, HasBody: true}
	ActionPatch  = Action{Name: "patch", Methods: []string{http.MethodPatch}, RequiresID: true, HasBody: true}
	ActionDelete = Action{Name: "delete", Methods: []string{http.MethodDelete}, RequiresID: true}
	ActionCount  = Action{Name: "count", Methods: []string{http.MethodGet}}
	ActionIDs    = Action{Name: "ids", Methods: []string{http.MethodGet}}
)

// Actions lists every action in route-registration order.
var Actions = []Action{
	ActionList,
	ActionCount,
	ActionIDs,
	ActionFind,
	ActionCreate,
	ActionUpdate,
	ActionPatch,
	ActionDelete,
}
