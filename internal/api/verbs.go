package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ValidateVerb checks the request's HTTP method against an action's
// allow-list. It returns nil when the verb is allowed, or a pre-classified
// 405 carrying the allow-list when it is not. Every action runs this before
// any resource call, regardless of how the route was registered.
func ValidateVerb(method string, allowed []string) error {
	for _, m := range allowed {
		if strings.EqualFold(method, m) {
			return nil
		}
	}
	return NewError(
		http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s not allowed (allowed: %s)",
			method, strings.Join(allowed, ", ")),
		nil,
	)
}
