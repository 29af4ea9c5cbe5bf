package service

import (
	"context"
	"time"

	"jobtrackr/internal/entity"
	"jobtrackr/internal/repository"
	"jobtrackr/internal/utils"

	"github.com/google/uuid"
)

const resetTokenBytes = 32

// ResetTokens issues and redeems single-use password-reset tokens. It never
// sends email itself; callers compose it with the Mailer.
type ResetTokens struct {
	tokens repository.ResetTokenRepository
	clock  Clock
	ttl    time.Duration
}

func NewResetTokens(tokens repository.ResetTokenRepository, clock Clock, ttl time.Duration) *ResetTokens {
	if clock == nil {
		clock = RealClock{}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ResetTokens{tokens: tokens, clock: clock, ttl: ttl}
}

func (t *ResetTokens) Issue(ctx context.Context, userID uuid.UUID) (*entity.PasswordResetToken, error) {
	raw, err := utils.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		return nil, err
	}
	token := &entity.PasswordResetToken{
		UserID:    userID,
		Token:     raw,
		ExpiresAt: t.clock.Now().Add(t.ttl),
	}
	if err := t.tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Validate resolves a raw token string without consuming it.
func (t *ResetTokens) Validate(ctx context.Context, tokenString string) (*entity.PasswordResetToken, error) {
	token, err := t.tokens.FindByToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrResetTokenNotFound
	}
	if token.IsUsed {
		return nil, ErrResetTokenUsed
	}
	if !t.clock.Now().Before(token.ExpiresAt) {
		return nil, ErrResetTokenExpired
	}
	return token, nil
}

// Consume marks the token used. The conditional update in the repository
// guarantees that of two concurrent redeemers only one succeeds; the loser
// gets ErrResetTokenUsed.
func (t *ResetTokens) Consume(ctx context.Context, id uuid.UUID) error {
	consumed, err := t.tokens.Consume(ctx, id)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrResetTokenUsed
	}
	return nil
}
