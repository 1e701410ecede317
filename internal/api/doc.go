// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It provides a generic resource handler that turns
// a store-backed resource into the standard REST actions (list, find,
// create, update, patch, delete, count, ids), with verb validation, form
// binding, and error classification applied uniformly to every action.
package api
