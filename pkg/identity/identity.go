// Package identity verifies session tokens minted by the external identity
// provider. The platform never issues credentials of its own; it checks the
// provider's JWT against its published JWKS and lifts the profile claims the
// rest of the app needs to mirror a user row.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kindbridge/kindbridge-backend/pkg/config"
)

// Identity is the verified caller extracted from a provider session token.
type Identity struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// Verifier checks a raw bearer token and returns the caller identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"image_url"`
}

// JWKSVerifier validates tokens against the provider's JWKS endpoint,
// refreshing keys in the background.
type JWKSVerifier struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
}

// NewJWKSVerifier fetches the provider JWKS and returns a verifier bound to
// the configured issuer (and audience when set).
func NewJWKSVerifier(ctx context.Context, cfg config.IdentityConfig) (*JWKSVerifier, error) {
	if cfg.JWKSURL == "" {
		return nil, fmt.Errorf("identity JWKS URL is required")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("identity issuer is required")
	}

	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: cfg.RefreshInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching identity provider JWKS: %w", err)
	}

	return &JWKSVerifier{
		jwks:     jwks,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}, nil
}

// Verify parses and validates the token, returning the caller identity.
func (v *JWKSVerifier) Verify(_ context.Context, raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty token")
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, v.jwks.Keyfunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return identityFromClaims(&claims)
}

// Close stops background JWKS refreshes.
func (v *JWKSVerifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func identityFromClaims(claims *sessionClaims) (*Identity, error) {
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return nil, fmt.Errorf("session token missing subject")
	}
	return &Identity{
		ID:              subject,
		Email:           strings.TrimSpace(claims.Email),
		FirstName:       strings.TrimSpace(claims.FirstName),
		LastName:        strings.TrimSpace(claims.LastName),
		ProfileImageURL: strings.TrimSpace(claims.ProfileImageURL),
	}, nil
}
