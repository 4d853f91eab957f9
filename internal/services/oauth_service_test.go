package services

import (
	"strings"
	"testing"

	"github.com/aquatrack/pool-service-api/internal/models"
	"github.com/aquatrack/pool-service-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func googleProfile(id, email, name string) Profile {
	p := Profile{
		ID:          id,
		DisplayName: name,
	}
	if email != "" {
		p.Emails = []ProfileEmail{{Value: email, Verified: true}}
	}
	return p
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestOAuthService_Reconcile_ProvisionsNewAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	result, err := svc.Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.NoError(t, err)
	require.True(t, result.Created)
	require.False(t, result.Reactivated)

	user := result.User
	require.Equal(t, models.RoleClient, user.Role)
	require.Equal(t, models.AuthProviderOAuth, user.AuthProvider)
	require.Nil(t, user.PasswordHash)
	require.NotNil(t, user.ExternalID)
	require.Equal(t, "g1", *user.ExternalID)
	require.Equal(t, "bob@x.com", user.Email)

	var org models.Organization
	require.NoError(t, db.First(&org, user.OrganizationID).Error)
	require.Equal(t, "Bob Smith's Organization", org.Name)
	require.Equal(t, "bob-smiths-organization", org.Slug)
}

func TestOAuthService_Reconcile_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	profile := googleProfile("g1", "bob@x.com", "Bob Smith")

	first, err := svc.Reconcile(profile)
	require.NoError(t, err)
	second, err := svc.Reconcile(profile)
	require.NoError(t, err)

	require.Equal(t, first.User.ID, second.User.ID)
	require.False(t, second.Created)
	require.EqualValues(t, 1, countRows(t, db, &models.User{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Organization{}))
}

func TestOAuthService_Reconcile_InvalidProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	_, err := svc.Reconcile(googleProfile("g1", "", "Bob Smith"))
	require.ErrorIs(t, err, ErrProfileInvalid)

	_, err = svc.Reconcile(googleProfile("", "bob@x.com", "Bob Smith"))
	require.ErrorIs(t, err, ErrProfileInvalid)

	require.EqualValues(t, 0, countRows(t, db, &models.User{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Organization{}))
}

func TestOAuthService_Reconcile_LinksByEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	// First identity provisions the account.
	first, err := svc.Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.NoError(t, err)

	// A different provider id with the same email links to the same user
	// rather than creating a second one.
	second, err := svc.Reconcile(googleProfile("g2", "BOB@X.COM", "Robert Smith"))
	require.NoError(t, err)

	require.Equal(t, first.User.ID, second.User.ID)
	require.EqualValues(t, 1, countRows(t, db, &models.User{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Organization{}))
}

func TestOAuthService_Reconcile_LinksExistingLocalAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	org := createTestOrg(t, db, "acme-pools")
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	createTestUser(t, db, &models.User{
		Username:       "dave",
		Email:          "dave@x.com",
		PasswordHash:   &hash,
		Role:           models.RoleManager,
		OrganizationID: org.ID,
		Active:         true,
		AuthProvider:   models.AuthProviderLocal,
	})

	result, err := svc.Reconcile(googleProfile("g3", "dave@x.com", "Dave"))
	require.NoError(t, err)
	require.False(t, result.Created)
	require.False(t, result.Reactivated)

	user := result.User
	require.Equal(t, models.AuthProviderOAuth, user.AuthProvider)
	require.NotNil(t, user.ExternalID)
	require.Equal(t, "g3", *user.ExternalID)
	// Linking keeps the local credential so password login still works.
	require.NotNil(t, user.PasswordHash)
	// No second organization appears.
	require.EqualValues(t, 1, countRows(t, db, &models.Organization{}))
	require.Equal(t, org.ID, user.OrganizationID)
}

func TestOAuthService_Reconcile_ReactivatesInactiveAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	org := createTestOrg(t, db, "acme-pools")
	createTestUser(t, db, &models.User{
		Username:       "carol",
		Email:          "carol@x.com",
		Role:           models.RoleClient,
		OrganizationID: org.ID,
		Active:         false,
		AuthProvider:   models.AuthProviderLocal,
	})

	result, err := svc.Reconcile(googleProfile("g2", "carol@x.com", "Carol"))
	require.NoError(t, err)
	require.True(t, result.Reactivated)
	require.True(t, result.User.Active)
	require.Equal(t, "g2", *result.User.ExternalID)

	var stored models.User
	require.NoError(t, db.First(&stored, result.User.ID).Error)
	require.True(t, stored.Active)
}

func TestOAuthService_Reconcile_RejectsDeactivatedLinkedAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	// Establish the link, then deactivate.
	result, err := svc.Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", result.User.ID).Update("active", false).Error)

	_, err = svc.Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestOAuthService_Reconcile_RefreshesPhoto(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	profile := googleProfile("g1", "bob@x.com", "Bob Smith")
	profile.Photos = []ProfilePhoto{{Value: "https://photos.example/v1.jpg"}}
	_, err := svc.Reconcile(profile)
	require.NoError(t, err)

	profile.Photos = []ProfilePhoto{{Value: "https://photos.example/v2.jpg"}}
	result, err := svc.Reconcile(profile)
	require.NoError(t, err)
	require.NotNil(t, result.User.PhotoURL)
	require.Equal(t, "https://photos.example/v2.jpg", *result.User.PhotoURL)
}

func TestOAuthService_Reconcile_SlugCollisionRetries(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	createTestOrg(t, db, "bob-smiths-organization")

	result, err := svc.Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.NoError(t, err)

	var org models.Organization
	require.NoError(t, db.First(&org, result.User.OrganizationID).Error)
	require.True(t, strings.HasPrefix(org.Slug, "bob-smiths-organization-"), "got slug %q", org.Slug)
}

// contendedOrgRepo loses every slug attempt to a competing insert.
type contendedOrgRepo struct {
	repository.OrganizationRepository
}

func (r *contendedOrgRepo) Create(org *models.Organization) error {
	return gorm.ErrDuplicatedKey
}

func TestOAuthService_Reconcile_SlugRetriesExhausted(t *testing.T) {
	db := setupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	svc := NewOAuthService(userRepo, &contendedOrgRepo{
		OrganizationRepository: repository.NewOrganizationRepository(db),
	})

	_, err := svc.Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.ErrorIs(t, err, ErrOrgCreationFailed)
	// Provisioning stopped before the user insert.
	require.EqualValues(t, 0, countRows(t, db, &models.User{}))
}

func TestOAuthService_Reconcile_FallsBackToEmailLocalPart(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOAuthService(db)

	result, err := svc.Reconcile(googleProfile("g1", "bob@x.com", ""))
	require.NoError(t, err)

	var org models.Organization
	require.NoError(t, db.First(&org, result.User.OrganizationID).Error)
	require.Equal(t, "bob's Organization", org.Name)
	require.Equal(t, "bobs-organization", org.Slug)
}

// racingUserRepo simulates losing the insert race: both lookups miss as if
// they ran before a concurrent call committed, so the insert collides with
// the row that is by then visible.
type racingUserRepo struct {
	repository.UserRepository
	lookupMissesLeft int
}

func (r *racingUserRepo) FindByExternalID(externalID string) (*models.User, error) {
	if r.lookupMissesLeft > 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.UserRepository.FindByExternalID(externalID)
}

func (r *racingUserRepo) FindByEmail(email string) (*models.User, error) {
	if r.lookupMissesLeft > 0 {
		r.lookupMissesLeft--
		return nil, gorm.ErrRecordNotFound
	}
	return r.UserRepository.FindByEmail(email)
}

func TestOAuthService_Reconcile_RecoversFromCreationRace(t *testing.T) {
	db := setupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)

	// The "winner" of the race has already committed.
	winner, err := NewOAuthService(userRepo, orgRepo).Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.NoError(t, err)

	// The "loser" evaluated its lookups before the winner's insert became
	// visible. Its own insert hits the unique email index, after which the
	// lookup phase is re-run and finds the winner's row.
	racing := &racingUserRepo{UserRepository: userRepo, lookupMissesLeft: 1}
	svc := NewOAuthService(racing, orgRepo)

	result, err := svc.Reconcile(googleProfile("g1", "bob@x.com", "Bob Smith"))
	require.NoError(t, err)
	require.Equal(t, winner.User.ID, result.User.ID)
	require.False(t, result.Created)
	// Exactly one user survives; an orphaned organization from the lost
	// race is tolerated, the principal is not duplicated.
	require.EqualValues(t, 1, countRows(t, db, &models.User{}))
}
