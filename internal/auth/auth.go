package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtIssuer   = "fitnessmanager-api"
	jwtAudience = "fitnessmanager-customers"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Roles carried in the token. Staff holds the trainer capability; admin is a
// superuser that manages gyms, memberships and payments.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleMember = "member"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
)

// Identity is what a token says about its bearer.
type Identity struct {
	CustomerID int
	Email      string
	Role       string
}

type Claims struct {
	CustomerID int       `json:"user_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	TokenType  TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{CustomerID: c.CustomerID, Email: c.Email, Role: c.Role}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Issuer signs and verifies HS256 tokens. Access and refresh tokens use
// separate secrets so a leaked refresh secret cannot mint access tokens.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

// NewIssuer fails on an empty access secret; an empty refresh secret falls
// back to the access secret.
func NewIssuer(accessSecret, refreshSecret string) (*Issuer, error) {
	if accessSecret == "" {
		return nil, ErrEmptyJWTSecret
	}
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}, nil
}

func (i *Issuer) sign(id Identity, typ TokenType) (string, error) {
	secret, ttl := i.accessSecret, AccessTokenTTL
	if typ == TokenRefresh {
		secret, ttl = i.refreshSecret, RefreshTokenTTL
	}

	now := i.now()
	claims := &Claims{
		CustomerID: id.CustomerID,
		Email:      id.Email,
		Role:       id.Role,
		TokenType:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *Issuer) Access(id Identity) (string, error) {
	return i.sign(id, TokenAccess)
}

func (i *Issuer) Pair(id Identity) (TokenPair, error) {
	access, err := i.sign(id, TokenAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(id, TokenRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess verifies an access token. Refresh tokens are rejected with
// ErrInvalidTokenType.
func (i *Issuer) ParseAccess(token string) (*Claims, error) {
	return i.parse(token, i.accessSecret, TokenAccess)
}

// ParseRefresh verifies a refresh token. The caller re-reads the customer
// before issuing a new access token since the role may have changed.
func (i *Issuer) ParseRefresh(token string) (*Claims, error) {
	return i.parse(token, i.refreshSecret, TokenRefresh)
}

func (i *Issuer) parse(tokenString string, secret []byte, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != want {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashedPassword, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}
