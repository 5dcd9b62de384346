package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID   int64
	Username string
	Role     domain.Role
	Scopes   []string
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == domain.RoleAdmin
}

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

type RegisterInput struct {
	Username string
	Password string
}

func (in RegisterInput) Validate() error {
	name := strings.TrimSpace(in.Username)
	if len(name) < 3 || len(name) > 50 {
		return domain.Invalid("username", "must be between 3 and 50 characters")
	}
	return validatePassword(in.Password)
}

// validatePassword bounds the length; bcrypt refuses inputs past 72
// bytes, so that error belongs to the caller, not the hasher.
func validatePassword(password string) error {
	if len(password) < 8 {
		return domain.Invalid("password", "must be at least 8 characters")
	}
	if len(password) > 72 {
		return domain.Invalid("password", "must be at most 72 characters")
	}
	return nil
}

// AuthService issues and verifies HS256 tokens and owns the password
// hashing discipline. Access tokens carry sub, id, role and scopes;
// refresh tokens additionally carry refresh=true and never pass access
// verification.
type AuthService struct {
	Users      domain.UserStore
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Register creates a USER account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.Users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and returns a fresh token pair. The error
// is always ErrInvalidCredentials on a bad username or password, so
// callers cannot probe which of the two was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string, scopes []string) (TokenPair, error) {
	u, err := s.Users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return TokenPair{}, domain.ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, domain.ErrInvalidCredentials
	}
	return s.issuePair(u, scopes)
}

// Refresh exchanges a valid refresh token for a new pair. The user must
// still exist; a deleted account invalidates its outstanding tokens.
func (s *AuthService) Refresh(ctx context.Context, token string) (TokenPair, error) {
	claims, err := s.parse(token)
	if err != nil {
		return TokenPair{}, domain.ErrInvalidToken
	}
	if isRefresh, _ := claims["refresh"].(bool); !isRefresh {
		return TokenPair{}, domain.ErrInvalidToken
	}

	id := claimIdentity(claims)
	if id == nil {
		return TokenPair{}, domain.ErrInvalidToken
	}
	u, err := s.Users.UserByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return TokenPair{}, domain.ErrInvalidToken
		}
		return TokenPair{}, err
	}
	return s.issuePair(u, id.Scopes)
}

// Verify validates an access token and returns the caller's identity.
// Refresh tokens are rejected here.
func (s *AuthService) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if isRefresh, _ := claims["refresh"].(bool); isRefresh {
		return nil, domain.ErrInvalidToken
	}

	id := claimIdentity(claims)
	if id == nil {
		return nil, domain.ErrInvalidToken
	}
	// The account may have been deleted since the token was minted.
	if _, err := s.Users.UserByID(ctx, id.UserID); err != nil {
		return nil, domain.ErrInvalidToken
	}
	return id, nil
}

func (s *AuthService) issuePair(u *domain.User, scopes []string) (TokenPair, error) {
	access, err := s.sign(u, scopes, s.AccessTTL, false)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(u, scopes, s.RefreshTTL, true)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

func (s *AuthService) sign(u *domain.User, scopes []string, ttl time.Duration, refresh bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.Username,
		"id":   u.ID,
		"role": string(u.Role),
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(ttl)),
	}
	if len(scopes) > 0 {
		claims["scopes"] = scopes
	}
	if refresh {
		claims["refresh"] = true
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s *AuthService) parse(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// claimIdentity pulls the identity fields out of a claim set, nil when
// any required one is missing. Numeric claims surface as float64 after
// JSON decoding.
func claimIdentity(claims jwt.MapClaims) *Identity {
	sub, _ := claims["sub"].(string)
	rawID, _ := claims["id"].(float64)
	role, _ := claims["role"].(string)
	if sub == "" || rawID <= 0 || !domain.Role(role).Valid() {
		return nil
	}

	id := &Identity{UserID: int64(rawID), Username: sub, Role: domain.Role(role)}
	if raw, ok := claims["scopes"].([]any); ok {
		for _, s := range raw {
			if str, ok := s.(string); ok {
				id.Scopes = append(id.Scopes, str)
			}
		}
	}
	return id
}
