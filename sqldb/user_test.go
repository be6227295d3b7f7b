package sqldb

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func expectUserDB(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS user ").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT email, roles, is_verified FROM user WHERE id = ? LIMIT 1"))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, email, roles, is_verified FROM user ORDER BY email LIMIT ? OFFSET ?"))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, roles, is_verified FROM user WHERE email = ? LIMIT 1"))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO user (email, roles, password, is_verified) VALUES (?, '[]', '', 0)"))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, roles, password, is_verified FROM user WHERE email = ?"))
	mock.ExpectPrepare(regexp.QuoteMeta("UPDATE user SET password = ? WHERE id = ?"))
	mock.ExpectPrepare(regexp.QuoteMeta("UPDATE user SET roles = ? WHERE id = ?"))
	mock.ExpectPrepare(regexp.QuoteMeta("UPDATE user SET is_verified = ? WHERE id = ?"))
}

func TestUserDBGetUser(t *testing.T) {

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	expectUserDB(mock)
	mock.ExpectQuery("SELECT email, roles, is_verified FROM user WHERE id = .+").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "roles", "is_verified"}).
			AddRow("alice@example.com", `["ROLE_ARTICLE_CREATE"]`, true))

	db := NewUserDB(sqlDB)
	u, err := db.GetUser(1)
	require.NoError(t, err)

	assert.Equal(t, 1, u.ID())
	assert.Equal(t, "alice@example.com", u.Email())
	assert.Equal(t, []string{"ROLE_ARTICLE_CREATE"}, u.Roles())
	assert.True(t, u.Verified())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDBInsertUserCleansEmail(t *testing.T) {

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	expectUserDB(mock)
	mock.ExpectExec("INSERT INTO user ").
		WithArgs("alice@example.com").
		WillReturnResult(sqlmock.NewResult(7, 1))

	db := NewUserDB(sqlDB)
	u, err := db.InsertUser("  Alice@Example.Com ")
	require.NoError(t, err)

	assert.Equal(t, 7, u.ID())
	assert.Equal(t, "alice@example.com", u.Email())
	assert.Empty(t, u.Roles())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDBLoginUser(t *testing.T) {

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	expectUserDB(mock)
	mock.ExpectQuery("SELECT id, roles, password, is_verified FROM user WHERE email = .+").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "roles", "password", "is_verified"}).
			AddRow(1, "[]", string(hash), true))
	mock.ExpectQuery("SELECT id, roles, password, is_verified FROM user WHERE email = .+").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "roles", "password", "is_verified"}).
			AddRow(1, "[]", string(hash), true))
	mock.ExpectQuery("SELECT id, roles, password, is_verified FROM user WHERE email = .+").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "roles", "password", "is_verified"}))

	db := NewUserDB(sqlDB)

	u, err := db.LoginUser("Alice@Example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID())

	_, err = db.LoginUser("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuth)

	_, err = db.LoginUser("nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrAuth)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDBSetRoles(t *testing.T) {

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	expectUserDB(mock)
	mock.ExpectExec("UPDATE user SET roles = .+").
		WithArgs(`["ROLE_ARTICLE_CREATE"]`, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	db := NewUserDB(sqlDB)
	var u = &user{id: 3, roles: []string{}}

	require.NoError(t, db.SetRoles(u, []string{"ROLE_ARTICLE_CREATE"}))
	assert.Equal(t, []string{"ROLE_ARTICLE_CREATE"}, u.Roles())

	assert.NoError(t, mock.ExpectationsWereMet())
}
