package mysql

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authstore/internal/domain"
	apperrors "authstore/internal/errors"
)

func setupMockStore(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserStore(db), mock
}

func TestInit(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Init(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	store, mock := setupMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(insertUser)).
		WithArgs(id.String(), "a@b.com", "H1", false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Create(context.Background(), id, "a@b.com", "H1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEntryIsConflict(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUser)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.com' for key 'email_unique'"})

	err := store.Create(context.Background(), uuid.New(), "a@b.com", "H1", false)
	require.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, apperrors.MsgEmailExists, apperrors.As(err).UserMessage(false))
}

func TestCreate_DriverFaultIsStorage(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUser)).
		WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})

	err := store.Create(context.Background(), uuid.New(), "a@b.com", "H1", false)
	require.True(t, apperrors.IsKind(err, apperrors.KindStorage))
	assert.Contains(t, err.Error(), "Lock wait timeout")
}

func TestUpdate_BindsIDLast(t *testing.T) {
	store, mock := setupMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(updateUser)).
		WithArgs("new@b.com", "H9", true, id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &domain.User{ID: id, Email: "new@b.com", Password: "H9", IsAdmin: true}
	require.NoError(t, store.Update(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ZeroRowsIsNotFound(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(updateUser)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), &domain.User{ID: uuid.New()})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDelete_MissingIsSilentNoOp(t *testing.T) {
	store, mock := setupMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(deleteByID)).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteByEmail)).
		WithArgs("ghost@b.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.DeleteByID(context.Background(), id))
	assert.NoError(t, store.DeleteByEmail(context.Background(), "ghost@b.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	store, mock := setupMockStore(t)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "email", "password", "is_admin"}).
		AddRow(id.String(), "a@b.com", "H1", false)
	mock.ExpectQuery(regexp.QuoteMeta(selectByEmail)).
		WithArgs("a@b.com").
		WillReturnRows(rows)

	user, err := store.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, &domain.User{ID: id, Email: "a@b.com", Password: "H1", IsAdmin: false}, user)
}

func TestGetByID_NoRowsIsNotFound(t *testing.T) {
	store, mock := setupMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectByID)).
		WithArgs(id.String()).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByID(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGet_CorruptIDIsConversionError(t *testing.T) {
	store, mock := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "email", "password", "is_admin"}).
		AddRow("not-a-uuid", "a@b.com", "H1", false)
	mock.ExpectQuery(regexp.QuoteMeta(selectByEmail)).
		WillReturnRows(rows)

	_, err := store.GetByEmail(context.Background(), "a@b.com")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConversion))
}
