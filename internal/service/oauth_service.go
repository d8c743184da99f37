// FILE: internal/service/oauth_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"learnloop-be/internal/config"
	"learnloop-be/internal/pkg/apperror"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleProfile struct {
	Id            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type IOAuthService interface {
	GetLoginURL(state string) string
	ProfileFromAccessToken(ctx context.Context, accessToken string) (*GoogleProfile, error)
	ProfileFromCode(ctx context.Context, code string) (*GoogleProfile, error)
}

type oauthService struct {
	googleConf  *oauth2.Config
	userInfoURL string
}

func NewOAuthService(cfg config.AuthConfig) IOAuthService {
	return NewOAuthServiceWithEndpoint(cfg, google.Endpoint, GoogleUserInfoURL)
}

// NewOAuthServiceWithEndpoint allows pointing the flow at another provider, e.g. a test server.
func NewOAuthServiceWithEndpoint(cfg config.AuthConfig, endpoint oauth2.Endpoint, userInfoURL string) IOAuthService {
	return &oauthService{
		googleConf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: endpoint,
		},
		userInfoURL: userInfoURL,
	}
}

func (s *oauthService) GetLoginURL(state string) string {
	return s.googleConf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *oauthService) ProfileFromCode(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Unauthorized("Google authorization code is invalid or expired")
	}
	return s.fetchProfile(ctx, token)
}

func (s *oauthService) ProfileFromAccessToken(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	return s.fetchProfile(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

func (s *oauthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	client := s.googleConf.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperror.Unavailable("Failed to reach Google", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperror.Unauthorized("Invalid Google access token")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperror.Unavailable("Failed getting user info from Google",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, apperror.Unavailable("Failed to parse Google user info", err)
	}
	if profile.Email == "" {
		return nil, apperror.Unauthorized("Google account has no email address")
	}
	return &profile, nil
}
