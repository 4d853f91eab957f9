package services

import (
	"testing"

	"github.com/aquatrack/pool-service-api/internal/models"
	"github.com/aquatrack/pool-service-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.WorkOrder{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestOrg(t *testing.T, db *gorm.DB, slug string) *models.Organization {
	t.Helper()

	org := &models.Organization{Name: slug, Slug: slug}
	require.NoError(t, db.Create(org).Error)
	return org
}

func createTestUser(t *testing.T, db *gorm.DB, user *models.User) *models.User {
	t.Helper()

	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db))
}

func newTestOAuthService(db *gorm.DB) *OAuthService {
	return NewOAuthService(repository.NewUserRepository(db), repository.NewOrganizationRepository(db))
}
