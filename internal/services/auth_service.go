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
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToCreateOrg    = errors.New("failed to create organization")
)

// AuthService handles local credential verification and signup.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// Authenticate verifies a username/password pair.
//
// Stored credentials come in two forms: bcrypt hashes and legacy plaintext
// values imported from the previous system. A successful login against a
// legacy value replaces it with a bcrypt hash before returning, so each
// credential is compared as plaintext at most until its first successful
// use. Strong-hash logins perform no writes.
//
// Unknown usernames and OAuth-only accounts fail with ErrInvalidCredentials.
// Deactivated accounts fail with ErrAccountInactive; public endpoints
// collapse that into the generic credentials message to avoid username
// enumeration.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountInactive
	}

	if user.PasswordHash == nil {
		// OAuth-only account, no local credential to check.
		return nil, ErrInvalidCredentials
	}
	stored := *user.PasswordHash

	if utils.IsBcryptHash(stored) {
		if !utils.CheckPasswordHash(stored, password) {
			return nil, ErrInvalidCredentials
		}
		return user, nil
	}

	// Legacy plaintext credential.
	if stored != password {
		return nil, ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}
	user.PasswordHash = &hashed
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to upgrade password hash: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("upgraded legacy password hash")
	return user, nil
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Signup creates a new user along with their organization. Self-service
// signups administer their own tenant.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	orgName := fmt.Sprintf("%s's Organization", username)
	base := utils.Slugify(orgName)
	if base == "" {
		base = "organization"
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: &hashedPassword,
		Role:         models.RoleOrgAdmin,
		Active:       true,
		AuthProvider: models.AuthProviderLocal,
	}

	// Creation decides slug ownership, not a prior lookup: a taken slug
	// surfaces as gorm.ErrDuplicatedKey and the insert is retried with a
	// random suffix, the same discipline the identity reconciler uses.
	for attempt := 0; attempt < constants.SlugMaxAttempts; attempt++ {
		slug := base
		if attempt > 0 {
			suffix, err := utils.RandomSuffix()
			if err != nil {
				return nil, ErrFailedToCreateOrg
			}
			slug = base + "-" + suffix
		}

		org := &models.Organization{
			Name: orgName,
			Slug: slug,
		}

		err := s.userRepo.CreateWithOrganization(user, org)
		if err == nil {
			return user, nil
		}

		switch {
		case errors.Is(err, repository.ErrCreateUser):
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a username race after the pre-check.
				return nil, ErrUsernameTaken
			}
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateOrganization):
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				logrus.WithField("slug", slug).Debug("organization slug taken, retrying")
				continue
			}
			return nil, ErrFailedToCreateOrg
		default:
			return nil, fmt.Errorf("failed to complete signup: %w", err)
		}
	}

	return nil, ErrFailedToCreateOrg
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
