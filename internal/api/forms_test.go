package api

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/crud-api/internal/domain"
)

func formRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestFormProcessor_Process_BindsValidBody(t *testing.T) {
	t.Parallel()

	p := NewFormProcessor(slog.Default())
	form := &domain.ContactDraft{}

	err := p.Process(formRequest(t, `{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com"
	}`), form, nil)

	require.NoError(t, err)
	assert.Equal(t, "Ada", form.FirstName)
	assert.Equal(t, "Lovelace", form.LastName)
	assert.Equal(t, "ada@example.com", form.Email)
}

func TestFormProcessor_Process_ReportsFieldViolationsByJSONName(t *testing.T) {
	t.Parallel()

	p := NewFormProcessor(slog.Default())
	form := &domain.ContactDraft{}

	err := p.Process(formRequest(t, `{
		"first_name": "Ada",
		"email":      "not-an-email"
	}`), form, nil)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	fields := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "required field", fields["last_name"])
	assert.Equal(t, "invalid email format", fields["email"])
	assert.NotContains(t, fields, "first_name")
}

func TestFormProcessor_Process_RejectsMalformedBody(t *testing.T) {
	t.Parallel()

	p := NewFormProcessor(slog.Default())

	tests := []struct {
		name string
		body string
	}{
		{name: "truncated JSON", body: `{"first_name": "Ada"`},
		{name: "unknown field", body: `{"first_name": "Ada", "nickname": "countess"}`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := p.Process(formRequest(t, tt.body), &domain.ContactDraft{}, nil)

			var httpErr *Error
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		})
	}
}

func TestFormProcessor_Process_PrePopulatesFromExisting(t *testing.T) {
	t.Parallel()

	p := NewFormProcessor(slog.Default())

	existing := &domain.ContactDraft{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
	}
	form := &domain.ContactDraft{}

	// Only the phone is present in the payload; everything else must
	// survive from the existing draft.
	err := p.Process(formRequest(t, `{"phone": "555-0199"}`), form, existing)

	require.NoError(t, err)
	assert.Equal(t, "555-0199", form.Phone)
	assert.Equal(t, "Ada", form.FirstName)
	assert.Equal(t, "Lovelace", form.LastName)
	assert.Equal(t, "ada@example.com", form.Email)
}

func TestFormProcessor_Process_WithoutExistingBindsZeroForm(t *testing.T) {
	t.Parallel()

	p := NewFormProcessor(slog.Default())
	form := &domain.ContactDraft{}

	// A partial payload without pre-population must fail validation on the
	// missing required fields.
	err := p.Process(formRequest(t, `{"phone": "555-0199"}`), form, nil)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Fields)
}

func TestNewFormProcessor_PanicsOnNilLogger(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewFormProcessor(nil)
	})
}
