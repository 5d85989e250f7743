package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateIssuer = "remodela-api/oauth-state"
)

var (
	ErrInvalidCode        = errors.New("invalid authorization code")
	ErrFailedToGetUser    = errors.New("failed to get user info from Google")
	ErrInvalidState       = errors.New("invalid state parameter")
	ErrUnverifiedEmail    = errors.New("Google account email is not verified")
	ErrOAuthNotConfigured = errors.New("Google OAuth is not configured")
)

// GoogleIdentity is the subset of the userinfo response used to match an admin.
type GoogleIdentity struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type GoogleOAuthConfig struct {
	ClientID           string
	ClientSecret       string
	RedirectURL        string
	FrontendSuccessURL string
	FrontendErrorURL   string
	// StateSecret signs the state parameter so no server-side session is needed.
	StateSecret string
}

// GoogleOAuthService runs the authorization-code flow for admin sign-in.
type GoogleOAuthService struct {
	config      *oauth2.Config
	cfg         GoogleOAuthConfig
	userInfoURL string
	stateTTL    time.Duration
}

func NewGoogleOAuthService(cfg GoogleOAuthConfig) *GoogleOAuthService {
	return &GoogleOAuthService{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		cfg:         cfg,
		userInfoURL: userInfoURL,
		stateTTL:    10 * time.Minute,
	}
}

func (s *GoogleOAuthService) IsConfigured() bool {
	return s.config.ClientID != "" && s.config.ClientSecret != ""
}

// AuthURL returns the consent URL together with a signed, expiring state.
func (s *GoogleOAuthService) AuthURL() (string, error) {
	state, err := s.newState(time.Now())
	if err != nil {
		return "", err
	}
	return s.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account")), nil
}

// Authenticate checks state, exchanges code and returns the verified Google identity.
func (s *GoogleOAuthService) Authenticate(ctx context.Context, state, code string) (*GoogleIdentity, error) {
	if !s.IsConfigured() {
		return nil, ErrOAuthNotConfigured
	}
	if err := s.verifyState(state, time.Now()); err != nil {
		return nil, err
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	identity, err := s.fetchIdentity(ctx, s.config.Client(ctx, token))
	if err != nil {
		return nil, err
	}
	if !identity.VerifiedEmail {
		return nil, ErrUnverifiedEmail
	}
	identity.Email = strings.ToLower(identity.Email)
	return identity, nil
}

func (s *GoogleOAuthService) fetchIdentity(ctx context.Context, client *http.Client) (*GoogleIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrFailedToGetUser, resp.StatusCode, string(body))
	}

	var identity GoogleIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	return &identity, nil
}

// stateClaims is the signed OAuth state: a random nonce with a short expiry.
type stateClaims struct {
	jwt.RegisteredClaims
}

func (s *GoogleOAuthService) newState(now time.Time) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	claims := stateClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        base64.RawURLEncoding.EncodeToString(nonce),
		Issuer:    stateIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.stateTTL)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.stateKey())
}

func (s *GoogleOAuthService) verifyState(state string, now time.Time) error {
	token, err := jwt.ParseWithClaims(state, &stateClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.stateKey(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return ErrInvalidState
	}
	return nil
}

func (s *GoogleOAuthService) stateKey() []byte {
	return []byte(s.cfg.StateSecret + s.cfg.ClientSecret)
}

func (s *GoogleOAuthService) SuccessURL() string { return s.cfg.FrontendSuccessURL }

func (s *GoogleOAuthService) ErrorURL() string { return s.cfg.FrontendErrorURL }
