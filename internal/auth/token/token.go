// Package token issues and verifies signed web session tokens.
//
// Tokens are HS256 JWTs. The subject claim carries the user id; the optional
// name claim carries a display name for page chrome.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecohome/ecohome/internal/platform/config"
	"github.com/ecohome/ecohome/internal/platform/id"
	"github.com/golang-jwt/jwt/v5"
)

const signingMethod = "HS256"

const minSecretLength = 32

var (
	// ErrInvalid reports a malformed, unsigned, or mismatched token.
	ErrInvalid = errors.New("session token is invalid")
	// ErrExpired reports a token past its expiry.
	ErrExpired = errors.New("session token is expired")
)

// Config defines how session tokens are signed and checked.
type Config struct {
	Secret   string           `env:"ECOHOME_AUTH_TOKEN_SECRET"`
	Issuer   string           `env:"ECOHOME_AUTH_ISSUER" envDefault:"ecohome-auth"`
	Audience string           `env:"ECOHOME_AUTH_AUDIENCE" envDefault:"ecohome-web"`
	TTL      time.Duration    `env:"ECOHOME_AUTH_SESSION_TTL" envDefault:"168h"`
	Now      func() time.Time `env:"-"`
}

// Claims captures verified session claims.
type Claims struct {
	UserID    string
	Name      string
	ExpiresAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// LoadConfigFromEnv reads session token configuration.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks that the config can sign and verify tokens.
func (c Config) Validate() error {
	if len(strings.TrimSpace(c.Secret)) < minSecretLength {
		return fmt.Errorf("ECOHOME_AUTH_TOKEN_SECRET must be at least %d characters", minSecretLength)
	}
	if strings.TrimSpace(c.Issuer) == "" {
		return errors.New("ECOHOME_AUTH_ISSUER is required")
	}
	if strings.TrimSpace(c.Audience) == "" {
		return errors.New("ECOHOME_AUTH_AUDIENCE is required")
	}
	return nil
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

// Issuer mints session tokens.
type Issuer struct {
	cfg Config
}

// NewIssuer builds an issuer from validated config.
func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg}, nil
}

// Issue returns a signed token for userID. A non-positive ttl uses the configured TTL.
func (i *Issuer) Issue(userID string, name string, ttl time.Duration) (string, error) {
	if i == nil {
		return "", errors.New("token issuer is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if ttl <= 0 {
		ttl = i.cfg.TTL
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	tokenID, err := id.NewID()
	if err != nil {
		return "", err
	}
	now := i.cfg.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
		Name: strings.TrimSpace(name),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verifier checks session tokens.
type Verifier struct {
	cfg Config
}

// NewVerifier builds a verifier from validated config.
func NewVerifier(cfg Config) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Verifier{cfg: cfg}, nil
}

// Verify parses raw and validates signature, issuer, audience, and time claims.
func (v *Verifier) Verify(raw string) (Claims, error) {
	if v == nil {
		return Claims{}, errors.New("token verifier is not configured")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrInvalid
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return []byte(v.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{signingMethod}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.cfg.now),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	userID := strings.TrimSpace(parsed.Subject)
	if userID == "" {
		return Claims{}, ErrInvalid
	}
	return Claims{
		UserID:    userID,
		Name:      parsed.Name,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpired
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
