package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aquatrack/pool-service-api/internal/config"
	"github.com/aquatrack/pool-service-api/internal/constants"
	"github.com/aquatrack/pool-service-api/internal/dto"
	apierrors "github.com/aquatrack/pool-service-api/internal/errors"
	"github.com/aquatrack/pool-service-api/internal/middleware"
	"github.com/aquatrack/pool-service-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthHandler drives the Google OAuth login flow and hands the resulting
// profile to the reconciler.
type OAuthHandler struct {
	oauthService *services.OAuthService
	oauthConfig  *oauth2.Config
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(oauthService *services.OAuthService, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Login redirects the browser to the provider's consent screen with a fresh
// state nonce bound to the session.
func (h *OAuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()

	session := sessions.Default(c)
	session.Set(constants.SessionKeyOAuthState, state)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// Callback completes the OAuth flow: it validates the state nonce, exchanges
// the code, fetches the userinfo document, and reconciles it against local
// accounts. Tokens are cached on the user but never consulted for
// authorization.
func (h *OAuthHandler) Callback(c *gin.Context) {
	session := sessions.Default(c)
	expectedState, _ := session.Get(constants.SessionKeyOAuthState).(string)
	session.Delete(constants.SessionKeyOAuthState)
	_ = session.Save()

	if expectedState == "" || c.Query("state") != expectedState {
		apierrors.BadRequest(c, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing authorization code")
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logrus.WithError(err).Warn("oauth code exchange failed")
		apierrors.Unauthorized(c, "Authorization code exchange failed")
		return
	}

	profile, err := h.fetchProfile(c, token)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch oauth userinfo")
		apierrors.InternalError(c, "Failed to fetch profile")
		return
	}

	result, err := h.oauthService.Reconcile(*profile)
	if err != nil {
		respondReconcileError(c, err)
		return
	}

	if err := middleware.SetSessionUser(c, result.User); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        dto.ToUserDTO(*result.User),
		"created":     result.Created,
		"reactivated": result.Reactivated,
	})
}

func (h *OAuthHandler) fetchProfile(c *gin.Context, token *oauth2.Token) (*services.Profile, error) {
	client := h.oauthConfig.Client(c.Request.Context(), token)
	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("userinfo request returned " + resp.Status)
	}

	var info struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	profile := &services.Profile{
		ID:           info.ID,
		DisplayName:  info.Name,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if info.Email != "" {
		profile.Emails = []services.ProfileEmail{{Value: info.Email, Verified: info.VerifiedEmail}}
	}
	if info.Picture != "" {
		profile.Photos = []services.ProfilePhoto{{Value: info.Picture}}
	}

	return profile, nil
}

func respondReconcileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileInvalid):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountDeactivated):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrOrgCreationFailed):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
