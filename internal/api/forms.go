package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mbranch/crud-api/internal/api/shared"
	"github.com/mbranch/crud-api/internal/platform/logger"
)

// FormProcessor binds request bodies onto draft (form) structs and
// validates them. Partial-update semantics come from pre-populating the
// form with the existing resource's draft before binding, so fields absent
// from the payload keep their stored values.
type FormProcessor struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewFormProcessor creates a FormProcessor. Field names in violation
// reports use the struct's json tags so clients see the names they sent.
func NewFormProcessor(log *slog.Logger) *FormProcessor {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FormProcessor")
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &FormProcessor{
		validate: v,
		logger:   log.With(slog.String("component", "form_processor")),
	}
}

// Process binds the request body onto form and validates it.
//
// When existing is non-nil (a PATCH with an identifier), the form is first
// pre-populated from it, so binding applies only the fields present in the
// payload. Create and full-replace updates pass existing == nil and bind
// onto a zero form.
//
// Returns a *ValidationError listing per-field violations when validation
// fails, or a pre-classified 400 when the body cannot be decoded at all.
func (p *FormProcessor) Process(r *http.Request, form any, existing any) error {
	log := logger.FromContextOrDefault(r.Context(), p.logger)

	if existing != nil {
		if err := prePopulate(form, existing); err != nil {
			return fmt.Errorf("failed to pre-populate form: %w", err)
		}
	}

	if err := shared.DecodeJSON(r, form); err != nil {
		log.Debug("form binding failed", slog.String("error", err.Error()))
		return NewError(http.StatusBadRequest, "invalid request body", err)
	}

	if err := p.validate.Struct(form); err != nil {
		var violations validator.ValidationErrors
		if errors.As(err, &violations) {
			fields := make([]shared.FieldError, 0, len(violations))
			for _, v := range violations {
				fields = append(fields, shared.FieldError{
					Field:   v.Field(),
					Message: tagMessage(v.Tag()),
				})
			}
			log.Debug("form validation failed",
				slog.Int("violations", len(fields)))
			return &ValidationError{Fields: fields}
		}
		return NewError(http.StatusBadRequest, "validation failed", err)
	}

	return nil
}

// prePopulate copies the existing draft's values onto the form through a
// JSON round trip, which works for any pair of drafts sharing field names.
func prePopulate(form any, existing any) error {
	raw, err := json.Marshal(existing)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, form)
}

// tagMessage maps validation tags to user-friendly violation messages.
func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "hostname":
		return "invalid hostname"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
