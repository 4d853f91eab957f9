package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aquatrack/pool-service-api/internal/constants"
	"github.com/aquatrack/pool-service-api/internal/models"
	"github.com/aquatrack/pool-service-api/internal/repository"
	"github.com/aquatrack/pool-service-api/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProfileInvalid     = errors.New("oauth profile is missing a provider id or email")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	ErrOrgCreationFailed  = errors.New("failed to create an organization for the new account")
)

// Profile is the raw identity payload from the OAuth provider.
type Profile struct {
	ID           string
	Emails       []ProfileEmail
	DisplayName  string
	Photos       []ProfilePhoto
	AccessToken  string
	RefreshToken string
}

type ProfileEmail struct {
	Value    string
	Verified bool
}

type ProfilePhoto struct {
	Value string
}

// ReconcileResult is the outcome of mapping a provider profile to a local
// user. Created and Reactivated let the HTTP layer branch its UX; they never
// affect authorization.
type ReconcileResult struct {
	User        *models.User
	Created     bool
	Reactivated bool
}

// OAuthService maps external OAuth identities onto local users.
type OAuthService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
}

// NewOAuthService creates a new OAuthService.
func NewOAuthService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *OAuthService {
	return &OAuthService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
}

// Reconcile resolves the profile to exactly one local user.
//
// Lookup order decides the action: a match on the provider id refreshes the
// profile fields; a match on email links the identity to the existing
// account, reactivating it if needed; no match provisions a fresh
// organization and user. A provider-id match on a deactivated account is
// rejected outright.
//
// Two concurrent calls for a brand-new identity can both pass the lookups
// before either inserts. The unique indexes on external_id and email turn
// the loser's insert into gorm.ErrDuplicatedKey, after which the lookup is
// re-run once and finds the winner's row.
func (s *OAuthService) Reconcile(profile Profile) (*ReconcileResult, error) {
	email := primaryEmail(profile)
	if profile.ID == "" || email == "" {
		return nil, ErrProfileInvalid
	}

	result, err := s.resolve(profile, email)
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		logrus.WithFields(logrus.Fields{
			"external_id": profile.ID,
			"email":       email,
		}).Info("lost identity creation race, retrying lookup")
		result, err = s.resolve(profile, email)
	}
	return result, err
}

func (s *OAuthService) resolve(profile Profile, email string) (*ReconcileResult, error) {
	user, err := s.userRepo.FindByExternalID(profile.ID)
	if err == nil {
		if !user.Active {
			return nil, ErrAccountDeactivated
		}
		if err := s.refresh(user, profile); err != nil {
			return nil, err
		}
		return &ReconcileResult{User: user}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user by external id: %w", err)
	}

	user, err = s.userRepo.FindByEmail(email)
	if err == nil {
		return s.link(user, profile)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return s.provision(profile, email)
}

// refresh updates mutable profile fields on an already linked user. Nothing
// is written when the profile carries no changes.
func (s *OAuthService) refresh(user *models.User, profile Profile) error {
	changed := applyProfile(user, profile)
	if !changed {
		return nil
	}
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to refresh profile: %w", err)
	}
	return nil
}

// link attaches the external identity to an account matched by email,
// reactivating it when it was deactivated.
func (s *OAuthService) link(user *models.User, profile Profile) (*ReconcileResult, error) {
	reactivated := !user.Active
	user.Active = true
	externalID := profile.ID
	user.ExternalID = &externalID
	user.AuthProvider = models.AuthProviderOAuth
	applyProfile(user, profile)

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to link account: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"external_id": externalID,
		"reactivated": reactivated,
	}).Info("linked oauth identity to existing account")

	return &ReconcileResult{User: user, Reactivated: reactivated}, nil
}

// provision creates a new organization and user for a first-time identity.
// The two inserts are sequential, not transactional; an aborted call can
// leave the organization behind, which the slug namespace tolerates.
func (s *OAuthService) provision(profile Profile, email string) (*ReconcileResult, error) {
	orgName := organizationName(profile, email)
	org, err := s.createOrganization(orgName)
	if err != nil {
		return nil, err
	}

	externalID := profile.ID
	user := &models.User{
		Username:       email,
		Email:          email,
		Role:           models.RoleClient,
		OrganizationID: org.ID,
		Active:         true,
		AuthProvider:   models.AuthProviderOAuth,
		ExternalID:     &externalID,
	}
	applyProfile(user, profile)

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Surface unwrapped so Reconcile retries the lookup.
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":         user.ID,
		"organization_id": org.ID,
		"external_id":     externalID,
	}).Info("provisioned account from oauth profile")

	return &ReconcileResult{User: user, Created: true}, nil
}

// createOrganization inserts the organization, retrying with a random slug
// suffix on uniqueness conflicts. The bound also absorbs races where a
// concurrent signup grabs the same slug between attempts.
func (s *OAuthService) createOrganization(name string) (*models.Organization, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "organization"
	}

	for attempt := 0; attempt < constants.SlugMaxAttempts; attempt++ {
		slug := base
		if attempt > 0 {
			suffix, err := utils.RandomSuffix()
			if err != nil {
				return nil, fmt.Errorf("failed to derive slug: %w", err)
			}
			slug = base + "-" + suffix
		}

		org := &models.Organization{Name: name, Slug: slug}
		err := s.orgRepo.Create(org)
		if err == nil {
			return org, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create organization: %w", err)
		}

		logrus.WithField("slug", slug).Debug("organization slug taken, retrying")
	}

	return nil, ErrOrgCreationFailed
}

// applyProfile copies mutable provider fields onto the user and reports
// whether anything changed.
func applyProfile(user *models.User, profile Profile) bool {
	changed := false

	if len(profile.Photos) > 0 && profile.Photos[0].Value != "" {
		photo := profile.Photos[0].Value
		if user.PhotoURL == nil || *user.PhotoURL != photo {
			user.PhotoURL = &photo
			changed = true
		}
	}
	if profile.AccessToken != "" {
		if user.AccessToken == nil || *user.AccessToken != profile.AccessToken {
			token := profile.AccessToken
			user.AccessToken = &token
			changed = true
		}
	}
	if profile.RefreshToken != "" {
		if user.RefreshToken == nil || *user.RefreshToken != profile.RefreshToken {
			token := profile.RefreshToken
			user.RefreshToken = &token
			changed = true
		}
	}

	return changed
}

func primaryEmail(profile Profile) string {
	for _, e := range profile.Emails {
		email := strings.ToLower(strings.TrimSpace(e.Value))
		if email != "" {
			return email
		}
	}
	return ""
}

// organizationName derives a human-readable tenant name, falling back to the
// email local-part when the provider sends no display name.
func organizationName(profile Profile, email string) string {
	name := strings.TrimSpace(profile.DisplayName)
	if name == "" {
		name = email
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}
	return fmt.Sprintf("%s's Organization", name)
}
