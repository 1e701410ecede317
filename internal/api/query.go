package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mbranch/crud-api/internal/store"
)

// Query parameter names shared by the list-shaped actions. The parameter
// describer documents exactly this set.
const (
	ParamCriteria = "criteria"
	ParamSearch   = "search"
	ParamOrderBy  = "orderBy"
	ParamLimit    = "limit"
	ParamOffset   = "offset"
	ParamPopulate = "populate"
)

// ParseQuery builds the store query options from request query parameters.
// Malformed parameters yield a pre-classified 400; column allow-listing is
// the store's job, not this parser's.
func ParseQuery(r *http.Request) (store.Query, error) {
	var q store.Query
	values := r.URL.Query()

	if raw := values.Get(ParamCriteria); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Criteria); err != nil {
			return q, NewError(http.StatusBadRequest,
				"criteria must be a JSON object of column/value pairs", err)
		}
	}

	q.Search = values.Get(ParamSearch)

	if raw := values.Get(ParamOrderBy); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Order); err != nil {
			return q, NewError(http.StatusBadRequest,
				"orderBy must be a JSON array of {property, direction} objects", err)
		}
	}

	var err error
	if q.Limit, err = intParam(values.Get(ParamLimit)); err != nil {
		return q, NewError(http.StatusBadRequest, "limit must be an integer", err)
	}
	if q.Offset, err = intParam(values.Get(ParamOffset)); err != nil {
		return q, NewError(http.StatusBadRequest, "offset must be an integer", err)
	}

	// populate accepts both repeated parameters and comma-separated lists.
	for _, raw := range values[ParamPopulate] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				q.Populate = append(q.Populate, name)
			}
		}
	}

	return q, nil
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
