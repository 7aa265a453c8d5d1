package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/identity"
	"github.com/stocker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuthService handles signup, login, token refresh and password lifecycle.
// Refresh credentials embed the user's token_version; changing or resetting
// the password bumps that version and so invalidates every outstanding
// refresh credential at once.
type AuthService struct {
	users           identity.UserRepository
	tokens          TokenService
	hasher          PasswordHasher
	blacklist       TokenBlacklist
	mail            MailSender
	resetTokens     ResetTokenCodec
	frontendBaseURL string
	logger          *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users identity.UserRepository,
	tokens TokenService,
	hasher PasswordHasher,
	blacklist TokenBlacklist,
	mail MailSender,
	resetTokens ResetTokenCodec,
	frontendBaseURL string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:           users,
		tokens:          tokens,
		hasher:          hasher,
		blacklist:       blacklist,
		mail:            mail,
		resetTokens:     resetTokens,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		logger:          logger,
	}
}

// Signup registers a new user
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeConflict, "A user with this email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(email, req.Username, hash)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" || req.LastName != "" {
		user.UpdateProfile(req.FirstName, req.LastName)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login verifies the credentials and mints an access/refresh token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, *UserResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return nil, nil, shared.NewDomainError(shared.CodeAuthentication, "Invalid email or password")
	}
	if !user.IsActive {
		return nil, nil, shared.NewDomainError(shared.CodeAuthentication, "Account is disabled")
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, nil, shared.NewDomainError(shared.CodeAuthentication, "Invalid email or password")
	}

	pair, err := s.mintTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	user.RecordLogin()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	resp := ToUserResponse(user)
	return pair, &resp, nil
}

// Refresh mints a new access token from a refresh token.
// The refresh token is accepted only while its embedded token_version
// matches the user's current one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeAuthentication, "Invalid refresh token")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, shared.NewDomainError(shared.CodeAuthentication, "Refresh token has been revoked")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeAuthentication, "Invalid refresh token")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError(shared.CodeAuthentication, "Account is disabled")
	}
	if !user.MatchesTokenVersion(claims.TokenVersion) {
		return nil, shared.NewDomainError(shared.CodeAuthentication, "Refresh token is no longer valid")
	}

	accessToken, accessExp, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:     accessToken,
		AccessExpiresAt: accessExp,
	}, nil
}

// Logout revokes the presented refresh token until its natural expiry
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		// Already unusable; nothing to revoke.
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// ChangePassword verifies the current password, then replaces it.
// The token_version bump and the new hash persist in one update.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
		return shared.NewDomainError(shared.CodeAuthentication, "Current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(hash); err != nil {
		return err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// RequestPasswordReset mails a reset link for the given address.
// Unknown addresses are ignored so the endpoint does not leak accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		s.logger.Debug("password reset requested for unknown email")
		return nil
	}

	token, err := s.resetTokens.Generate(user)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/password-reset/%s/%s", s.frontendBaseURL, encodeUserID(user.ID), token)
	return s.mail.SendPasswordReset(ctx, user.Email, link)
}

// ConfirmPasswordReset verifies the reset token and sets the new password.
// Like ChangePassword this bumps token_version, so the reset token and all
// refresh tokens die together.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, encodedUserID, token string, req PasswordResetConfirm) error {
	userID, err := decodeUserID(encodedUserID)
	if err != nil {
		return shared.NewDomainError(shared.CodeValidation, "Invalid reset link")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError(shared.CodeValidation, "Invalid reset link")
	}
	if !s.resetTokens.Verify(user, token) {
		return shared.NewDomainError(shared.CodeValidation, "Reset link is invalid or expired")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(hash); err != nil {
		return err
	}

	return s.users.Update(ctx, user)
}

// Authenticate resolves the tenant context for one request from an
// access token. Access tokens are accepted as-is for their lifetime;
// token_version is only checked on refresh.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*TokenClaims, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeAuthentication, "Invalid or expired access token")
	}
	return claims, nil
}

// GetProfile returns the acting user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) mintTokenPair(user *identity.User) (*TokenPairResponse, error) {
	accessToken, accessExp, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}
