package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mbranch/crud-api/internal/api/shared"
	"github.com/mbranch/crud-api/internal/platform/logger"
	"github.com/mbranch/crud-api/internal/store"
)

// uuidV4Pattern constrains identifier path segments to UUID-v4 shape at the
// router, so malformed identifiers never reach a handler.
const uuidV4Pattern = "{id:[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}}"

// Resource is the service object encapsulating one entity type's query and
// persistence operations. E is the entity as returned to clients, F the
// draft (form/DTO) type bound from request bodies; both are expected to be
// pointer types.
type Resource[E any, F any] interface {
	List(ctx context.Context, q store.Query) ([]E, error)
	Find(ctx context.Context, id uuid.UUID, q store.Query) (E, error)
	Count(ctx context.Context, q store.Query) (int64, error)
	IDs(ctx context.Context, q store.Query) ([]uuid.UUID, error)
	Create(ctx context.Context, draft F) (E, error)
	Update(ctx context.Context, id uuid.UUID, draft F) (E, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Draft returns the draft representation of an existing entity, used to
	// pre-populate partial updates.
	Draft(ctx context.Context, id uuid.UUID) (F, error)
}

// ResourceConfig is the per-resource configuration passed explicitly at
// construction: route name, draft constructors, and the capabilities the
// parameter describer documents.
type ResourceConfig[F any] struct {
	// Name is the plural route segment, e.g. "contacts".
	Name string

	// NewDraft constructs the resource's default draft type.
	NewDraft func() F

	// DraftOverrides maps action names to draft constructors, for actions
	// that bind onto a differently-preset draft than the default.
	DraftOverrides map[string]func() F

	// SearchColumns are the columns matched by the search parameter.
	SearchColumns []string

	// Associations are the relation names accepted by populate.
	Associations []string
}

// draftFor resolves the draft constructor for an action: the per-action
// override if registered, else the resource default.
func (c ResourceConfig[F]) draftFor(action string) F {
	if ctor, ok := c.DraftOverrides[action]; ok {
		return ctor()
	}
	return c.NewDraft()
}

// ResourceHandler exposes the standard REST actions for one resource.
// Every action runs the same fixed pipeline: verb validation, identifier
// extraction, form processing for body-bearing verbs, the resource call,
// and error classification. Handlers hold no domain logic beyond that.
type ResourceHandler[E any, F any] struct {
	cfg      ResourceConfig[F]
	resource Resource[E, F]
	forms    *FormProcessor
	logger   *slog.Logger
}

// NewResourceHandler creates a handler for one resource.
func NewResourceHandler[E any, F any](
	cfg ResourceConfig[F],
	resource Resource[E, F],
	forms *FormProcessor,
	log *slog.Logger,
) *ResourceHandler[E, F] {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ResourceHandler")
	}
	if cfg.Name == "" || cfg.NewDraft == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("resource config must carry a name and a default draft constructor")
	}

	return &ResourceHandler[E, F]{
		cfg:      cfg,
		resource: resource,
		forms:    forms,
		logger:   log.With(slog.String("component", cfg.Name+"_handler")),
	}
}

// Config returns the resource configuration, consumed by the parameter
// describer.
func (h *ResourceHandler[E, F]) Config() ResourceConfig[F] {
	return h.cfg
}

// Mount registers the resource's routes on the given router, with single-
// resource routes constrained to UUID-v4 shaped identifiers.
func (h *ResourceHandler[E, F]) Mount(r chi.Router) {
	r.Route("/"+h.cfg.Name, func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/count", h.Count)
		r.Get("/ids", h.IDs)
		r.Post("/", h.Create)
		r.Get("/"+uuidV4Pattern, h.Find)
		r.Put("/"+uuidV4Pattern, h.Update)
		r.Patch("/"+uuidV4Pattern, h.Patch)
		r.Delete("/"+uuidV4Pattern, h.Delete)
	})
}

// guard runs the checks shared by every action before dispatch continues:
// a fail-fast collaborator check and the verb allow-list. The collaborator
// check panics rather than classifying, since missing collaborators are a
// wiring defect, not request semantics.
func (h *ResourceHandler[E, F]) guard(r *http.Request, action Action) error {
	if h.resource == nil || h.forms == nil {
		// ALLOW-PANIC: missing collaborators indicate a deployment/wiring
		// defect; the request is allowed to terminate.
		panic("resource handler for " + h.cfg.Name + " is missing collaborators")
	}
	return ValidateVerb(r.Method, action.Methods)
}

// fail classifies the error and writes the response. Validation failures
// surface as structured field-error lists; everything else goes through the
// classifier.
func (h *ResourceHandler[E, F]) fail(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		shared.RespondWithFieldErrors(w, r,
			http.StatusBadRequest, "validation failed", vErr.Fields)
		return
	}

	classified := Classify(err)
	shared.RespondWithErrorAndLog(w, r, classified.Status, classified.Message, err)
}

// pathID extracts and parses the identifier path parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, NewError(http.StatusBadRequest, "resource ID is required", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewError(http.StatusBadRequest, "invalid resource ID format", err)
	}
	return id, nil
}

// List handles GET /{resource} requests.
func (h *ResourceHandler[E, F]) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.guard(r, ActionList); err != nil {
		h.fail(w, r, err)
		return
	}

	q, err := ParseQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	items, err := h.resource.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	log.Debug("listed resources",
		slog.String("resource", h.cfg.Name),
		slog.Int("count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// Find handles GET /{resource}/{id} requests.
func (h *ResourceHandler[E, F]) Find(w http.ResponseWriter, r *http.Request) {
	if err := h.guard(r, ActionFind); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// Find only honors populate, but parsing the full set keeps malformed
	// parameters failing consistently across actions.
	q, err := ParseQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.resource.Find(r.Context(), id, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Create handles POST /{resource} requests. The form starts empty; no
// pre-population happens on create.
func (h *ResourceHandler[E, F]) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.guard(r, ActionCreate); err != nil {
		h.fail(w, r, err)
		return
	}

	draft := h.cfg.draftFor(ActionCreate.Name)
	if err := h.forms.Process(r, draft, nil); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.resource.Create(r.Context(), draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	log.Debug("created resource", slog.String("resource", h.cfg.Name))
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// Update handles PUT /{resource}/{id} requests with full-replace binding:
// the form starts empty and the payload must carry every field.
func (h *ResourceHandler[E, F]) Update(w http.ResponseWriter, r *http.Request) {
	if err := h.guard(r, ActionUpdate); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	draft := h.cfg.draftFor(ActionUpdate.Name)
	if err := h.forms.Process(r, draft, nil); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.resource.Update(r.Context(), id, draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Patch handles PATCH /{resource}/{id} requests with partial binding: the
// form is pre-populated from the stored entity's draft before the payload
// is bound over it, so unset fields retain their prior values.
func (h *ResourceHandler[E, F]) Patch(w http.ResponseWriter, r *http.Request) {
	if err := h.guard(r, ActionPatch); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	existing, err := h.resource.Draft(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	draft := h.cfg.draftFor(ActionPatch.Name)
	if err := h.forms.Process(r, draft, existing); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.resource.Update(r.Context(), id, draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Delete handles DELETE /{resource}/{id} requests.
func (h *ResourceHandler[E, F]) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.guard(r, ActionDelete); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.resource.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	log.Debug("deleted resource",
		slog.String("resource", h.cfg.Name),
		slog.String("id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// CountResponse is the body returned by the count action.
type CountResponse struct {
	Count int64 `json:"count"`
}

// Count handles GET /{resource}/count requests.
func (h *ResourceHandler[E, F]) Count(w http.ResponseWriter, r *http.Request) {
	if err := h.guard(r, ActionCount); err != nil {
		h.fail(w, r, err)
		return
	}

	q, err := ParseQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n, err := h.resource.Count(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: n})
}

// IDs handles GET /{resource}/ids requests.
func (h *ResourceHandler[E, F]) IDs(w http.ResponseWriter, r *http.Request) {
	if err := h.guard(r, ActionIDs); err != nil {
		h.fail(w, r, err)
		return
	}

	q, err := ParseQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ids, err := h.resource.IDs(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ids)
}
