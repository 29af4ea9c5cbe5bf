package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobtrackr/internal/entity"
	"jobtrackr/internal/repository"
	"jobtrackr/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// A bcrypt hash of a throwaway password, compared against when no user matches
// a login identifier so "user not found" and "wrong password" take the same
// number of hash computations.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type RefreshTokenParser interface {
	ParseRefreshToken(token string) (*utils.RefreshClaims, error)
}

type AuthService struct {
	users       repository.UserRepository
	revoked     repository.RevokedTokenRepository
	resetTokens *ResetTokens

	mailer        Notifier
	passwordHash  PasswordHasher
	sessionTokens SessionTokenIssuer
	refreshParser RefreshTokenParser
	clock         Clock
	logger        logrus.FieldLogger
	config        AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	revoked repository.RevokedTokenRepository,
	resetTokens *ResetTokens,
	mailer Notifier,
	passwordHash PasswordHasher,
	sessionTokens SessionTokenIssuer,
	refreshParser RefreshTokenParser,
	clock Clock,
	logger logrus.FieldLogger,
	config AuthConfig,
) *AuthService {
	if clock == nil {
		clock = RealClock{}
	}
	return &AuthService{
		users:         users,
		revoked:       revoked,
		resetTokens:   resetTokens,
		mailer:        mailer,
		passwordHash:  passwordHash,
		sessionTokens: sessionTokens,
		refreshParser: refreshParser,
		clock:         clock,
		logger:        logger,
		config:        config,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.User, *TokenPair, error) {
	username := strings.TrimSpace(input.Username)
	email := utils.NormalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if username == "" || email == "" || phone == "" || input.Password == "" {
		return nil, nil, ErrInvalidInput
	}

	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, ErrUsernameTaken
	}
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, ErrEmailTaken
	}
	if existing, err := s.users.FindByPhone(ctx, phone); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, ErrPhoneTaken
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Role:         entity.UserRoleUser,
		IsActive:     true,
		Profile:      &entity.Profile{},
		SocialLinks:  &entity.SocialLink{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, translateDuplicateUser(err)
	}

	pair, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// translateDuplicateUser maps a unique-constraint violation raised by the
// insert to the field-level registration error. The pre-insert lookups catch
// most duplicates, but a concurrent registration can still trip the schema
// constraint.
func translateDuplicateUser(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrEmailTaken
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return ErrPhoneTaken
	}
	return err
}

// Authenticate verifies a login identifier (username, email, or phone) plus
// password. The union lookup relies on schema uniqueness of all three columns.
func (s *AuthService) Authenticate(ctx context.Context, identifier string, password string) (*entity.User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, password)
		return nil, ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*entity.User, *TokenPair, error) {
	user, err := s.Authenticate(ctx, input.Identifier, input.Password)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token carrying the
// user's CURRENT role and identity claims, not the claims at original issuance.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := s.refreshParser.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", 0, ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", 0, err
	}
	if revoked {
		return "", 0, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", 0, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", 0, err
	}
	if user == nil || !user.IsActive {
		return "", 0, ErrInvalidToken
	}

	access, ttl, err := s.sessionTokens.IssueAccessToken(user.ID.String(), string(user.Role), user.Email, user.Username)
	if err != nil {
		return "", 0, err
	}
	return access, int64(ttl.Seconds()), nil
}

// Revoke denylists a refresh token; later Refresh calls with it fail.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.refreshParser.ParseRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return nil
	}

	userID, _ := uuid.Parse(claims.Subject)
	return s.revoked.Add(ctx, &entity.RevokedToken{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword string, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrInvalidInput
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !s.passwordHash.Verify(user.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// ForgotPassword issues a reset token and mails it. An unknown email is not an
// error: the HTTP layer always answers with the same generic message, and no
// token is created. Email delivery failures never block the flow.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.resetTokens.Issue(ctx, user.ID)
	if err != nil {
		return err
	}

	if s.mailer != nil {
		resetURL := fmt.Sprintf("%s?token=%s", strings.TrimRight(s.config.ResetURLBase, "/"), token.Token)
		sendErr := s.mailer.Send(ctx, "password_reset.html", map[string]any{
			"username":  user.Username,
			"reset_url": resetURL,
		}, "Password Reset Request", []string{user.Email})
		if sendErr != nil && s.logger != nil {
			s.logger.WithError(sendErr).Error("password reset email not sent")
		}
	}
	return nil
}

// ResetPassword redeems a reset token. Consume runs before the password write
// so concurrent redeemers of the same token cannot both succeed.
func (s *AuthService) ResetPassword(ctx context.Context, tokenString string, newPassword string) error {
	if strings.TrimSpace(tokenString) == "" || newPassword == "" {
		return ErrInvalidInput
	}

	token, err := s.resetTokens.Validate(ctx, tokenString)
	if err != nil {
		return err
	}
	if err := s.resetTokens.Consume(ctx, token.ID); err != nil {
		return err
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, token.UserID, hash)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueSession(user *entity.User) (*TokenPair, error) {
	access, accessTTL, err := s.sessionTokens.IssueAccessToken(user.ID.String(), string(user.Role), user.Email, user.Username)
	if err != nil {
		return nil, err
	}
	refresh, _, refreshExpiry, err := s.sessionTokens.IssueRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		ExpiresIn:        int64(accessTTL.Seconds()),
		RefreshToken:     refresh,
		RefreshExpiresIn: int64(refreshExpiry.Sub(s.clock.Now()).Seconds()),
	}, nil
}
