package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/crud-api/internal/domain"
	"github.com/mbranch/crud-api/internal/store"
)

func newMockOrgStore(t *testing.T) (*OrganizationStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewOrganizationStore(db, nil), mock
}

var organizationRowColumns = []string{"id", "name", "domain", "created_at", "updated_at"}

func TestOrganizationStore_List(t *testing.T) {
	t.Parallel()

	s, mock := newMockOrgStore(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(organizationRowColumns).
		AddRow(uuid.New(), "Acme", "acme.test", now, now).
		AddRow(uuid.New(), "Initech", nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM organizations o") + ".*ORDER BY o\\.name ASC").
		WillReturnRows(rows)

	orgs, err := s.List(context.Background(), store.Query{})
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "acme.test", orgs[0].Domain)
	assert.Empty(t, orgs[1].Domain, "NULL domain scans to empty string")
}

func TestOrganizationStore_Find_NotUnique(t *testing.T) {
	t.Parallel()

	s, mock := newMockOrgStore(t)

	id := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows(organizationRowColumns).
		AddRow(id, "Acme", nil, now, now).
		AddRow(id, "Acme Clone", nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE o.id = $1")).
		WithArgs(id).
		WillReturnRows(rows)

	_, err := s.Find(context.Background(), id, store.Query{})
	assert.ErrorIs(t, err, store.ErrNotUnique)
}

func TestOrganizationStore_Find_NotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockOrgStore(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE o.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(organizationRowColumns))

	_, err := s.Find(context.Background(), id, store.Query{})
	assert.ErrorIs(t, err, store.ErrOrganizationNotFound)
}

func TestOrganizationStore_Create_EmptyDomainStoresNULL(t *testing.T) {
	t.Parallel()

	s, mock := newMockOrgStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO organizations")).
		WithArgs(sqlmock.AnyArg(), "Acme", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	o, err := s.Create(context.Background(), &domain.OrganizationDraft{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", o.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationStore_Delete_NotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockOrgStore(t)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM organizations WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrOrganizationNotFound)
}
