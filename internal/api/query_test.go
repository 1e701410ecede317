package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/crud-api/internal/store"
)

func queryRequest(t *testing.T, params url.Values) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/contacts?"+params.Encode(), nil)
}

func TestParseQuery_AllParameters(t *testing.T) {
	t.Parallel()

	params := url.Values{}
	params.Set(ParamCriteria, `{"email": "ada@example.com", "organization_id": "abc"}`)
	params.Set(ParamSearch, "lovelace")
	params.Set(ParamOrderBy, `[{"property": "last_name", "direction": "DESC"}]`)
	params.Set(ParamLimit, "50")
	params.Set(ParamOffset, "100")
	params.Set(ParamPopulate, "organization")

	q, err := ParseQuery(queryRequest(t, params))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"email":           "ada@example.com",
		"organization_id": "abc",
	}, q.Criteria)
	assert.Equal(t, "lovelace", q.Search)
	assert.Equal(t, []store.Order{{Property: "last_name", Direction: store.Descending}}, q.Order)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, 100, q.Offset)
	assert.Equal(t, []string{"organization"}, q.Populate)
}

func TestParseQuery_EmptyRequest(t *testing.T) {
	t.Parallel()

	q, err := ParseQuery(httptest.NewRequest(http.MethodGet, "/contacts", nil))
	require.NoError(t, err)

	assert.Nil(t, q.Criteria)
	assert.Empty(t, q.Search)
	assert.Nil(t, q.Order)
	assert.Zero(t, q.Limit)
	assert.Zero(t, q.Offset)
	assert.Nil(t, q.Populate)
}

func TestParseQuery_PopulateAcceptsRepeatedAndCommaSeparated(t *testing.T) {
	t.Parallel()

	params := url.Values{}
	params.Add(ParamPopulate, "organization, owner")
	params.Add(ParamPopulate, "tags")

	q, err := ParseQuery(queryRequest(t, params))
	require.NoError(t, err)
	assert.Equal(t, []string{"organization", "owner", "tags"}, q.Populate)
}

func TestParseQuery_MalformedParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		param string
		value string
	}{
		{name: "criteria not JSON", param: ParamCriteria, value: "email=x"},
		{name: "criteria not an object", param: ParamCriteria, value: `["email"]`},
		{name: "orderBy not JSON", param: ParamOrderBy, value: "last_name desc"},
		{name: "limit not an integer", param: ParamLimit, value: "fifty"},
		{name: "offset not an integer", param: ParamOffset, value: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := url.Values{}
			params.Set(tt.param, tt.value)

			_, err := ParseQuery(queryRequest(t, params))

			var httpErr *Error
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		})
	}
}
