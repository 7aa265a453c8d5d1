package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	appidentity "github.com/stocker/backend/internal/application/identity"
	"github.com/stocker/backend/internal/domain/identity"
	"github.com/stocker/backend/internal/infrastructure/config"
)

// TokenType discriminates access from refresh credentials
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims are the signed contents of a credential. TokenVersion pins the
// credential to the user's credential generation: bumping the version on
// password change invalidates every outstanding token at once.
type Claims struct {
	jwt.RegisteredClaims
	Email        string    `json:"email"`
	TokenVersion int       `json:"token_version"`
	TokenType    TokenType `json:"token_type"`
}

// JWTService signs and verifies access and refresh tokens
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
}

var _ appidentity.TokenService = (*JWTService)(nil)

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := []byte(cfg.RefreshSecret)
	if cfg.RefreshSecret == "" {
		refreshSecret = []byte(cfg.Secret)
	}

	return &JWTService{
		accessSecret:      []byte(cfg.Secret),
		refreshSecret:     refreshSecret,
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
	}
}

// GenerateAccessToken mints a signed access token for the user
func (s *JWTService) GenerateAccessToken(user *identity.User) (string, time.Time, error) {
	return s.generate(user, TokenTypeAccess, s.accessSecret, s.accessExpiration)
}

// GenerateRefreshToken mints a signed refresh token for the user
func (s *JWTService) GenerateRefreshToken(user *identity.User) (string, time.Time, error) {
	return s.generate(user, TokenTypeRefresh, s.refreshSecret, s.refreshExpiration)
}

func (s *JWTService) generate(user *identity.User, tokenType TokenType, secret []byte, expiration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		TokenType:    tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken verifies an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*appidentity.TokenClaims, error) {
	return s.validate(tokenString, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*appidentity.TokenClaims, error) {
	return s.validate(tokenString, s.refreshSecret, TokenTypeRefresh)
}

func (s *JWTService) validate(tokenString string, secret []byte, expectedType TokenType) (*appidentity.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &appidentity.TokenClaims{
		UserID:       userID,
		Email:        claims.Email,
		TokenVersion: claims.TokenVersion,
		TokenID:      claims.ID,
		ExpiresAt:    expiresAt,
	}, nil
}
