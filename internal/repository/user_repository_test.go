package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB pins the SQL the repositories generate against a mocked
// postgres connection.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "role", "organization_id", "active"}).
		AddRow(1, "mia", "mia@example.com", "manager", 1, true)

	// The lookup must fold case on both sides, not rely on collation.
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("Mia@Example.COM").
		WillReturnRows(rows)

	user, err := repo.FindByEmail("Mia@Example.COM")
	require.NoError(t, err)
	require.Equal(t, "mia@example.com", user.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByExternalID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "external_id"}).
		AddRow(1, "bob@x.com", "bob@x.com", "g1")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE external_id = \$1`).
		WithArgs("g1").
		WillReturnRows(rows)

	user, err := repo.FindByExternalID("g1")
	require.NoError(t, err)
	require.NotNil(t, user.ExternalID)
	require.Equal(t, "g1", *user.ExternalID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUsername("nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
