package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobtrackr/internal/entity"
	"jobtrackr/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestJWTManager() utils.JWTManager {
	return utils.JWTManager{
		Secret:          []byte("test-secret"),
		Issuer:          "jobtrackr-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

type authFixture struct {
	service  *AuthService
	users    *memUserRepo
	revoked  *memRevokedTokenRepo
	resets   *memResetTokenRepo
	hasher   *plainHasher
	notifier *recordingNotifier
	clock    *fakeClock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newMemUserRepo()
	revoked := newMemRevokedTokenRepo()
	resets := newMemResetTokenRepo()
	hasher := &plainHasher{}
	notifier := &recordingNotifier{}
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	jwt := newTestJWTManager()

	svc := NewAuthService(
		users,
		revoked,
		NewResetTokens(resets, clock, 24*time.Hour),
		notifier,
		hasher,
		jwt,
		jwt,
		clock,
		nil,
		AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			ResetTokenTTL:   24 * time.Hour,
			ResetURLBase:    "https://app.example.com/reset-password",
		},
	)
	return &authFixture{
		service:  svc,
		users:    users,
		revoked:  revoked,
		resets:   resets,
		hasher:   hasher,
		notifier: notifier,
		clock:    clock,
	}
}

func (f *authFixture) register(t *testing.T) *entity.User {
	t.Helper()
	user, _, err := f.service.Register(context.Background(), RegisterInput{
		Username:  "dewi",
		Email:     "dewi@example.com",
		Phone:     "+6281234567890",
		FirstName: "Dewi",
		LastName:  "Lestari",
		Password:  "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterIssuesSession(t *testing.T) {
	f := newAuthFixture(t)
	user, pair, err := f.service.Register(context.Background(), RegisterInput{
		Username: "dewi",
		Email:    "Dewi@Example.com",
		Phone:    "+6281234567890",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "dewi@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != entity.UserRoleUser {
		t.Fatalf("role = %q, want user", user.Role)
	}
	if !user.IsActive {
		t.Fatal("new user should be active")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a full token pair on registration")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"username", RegisterInput{Username: "dewi", Email: "other@example.com", Phone: "+6280000000001", Password: "x"}, ErrUsernameTaken},
		{"email", RegisterInput{Username: "other", Email: "dewi@example.com", Phone: "+6280000000001", Password: "x"}, ErrEmailTaken},
		{"phone", RegisterInput{Username: "other", Email: "other@example.com", Phone: "+6281234567890", Password: "x"}, ErrPhoneTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := f.service.Register(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("Register = %v, want %v", err, tc.want)
			}
		})
	}
}

// failingCreateUserRepo lets the pre-insert lookups pass and then fails the
// insert itself, the way a concurrent registration would.
type failingCreateUserRepo struct {
	*memUserRepo
	createErr error
}

func (r *failingCreateUserRepo) Create(_ context.Context, _ *entity.User) error {
	return r.createErr
}

func TestRegisterTranslatesInsertConstraintViolation(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		want       error
	}{
		{"username", "idx_users_username", ErrUsernameTaken},
		{"email", "idx_users_email", ErrEmailTaken},
		{"phone", "idx_users_phone", ErrPhoneTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.service.users = &failingCreateUserRepo{
				memUserRepo: f.users,
				createErr:   &pgconn.PgError{Code: "23505", ConstraintName: tc.constraint},
			}

			_, _, err := f.service.Register(context.Background(), RegisterInput{
				Username: "dewi",
				Email:    "dewi@example.com",
				Phone:    "+6281234567890",
				Password: "hunter2hunter2",
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Register = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRegisterSurfacesOtherInsertErrors(t *testing.T) {
	f := newAuthFixture(t)
	dbDown := errors.New("connection refused")
	f.service.users = &failingCreateUserRepo{memUserRepo: f.users, createErr: dbDown}

	_, _, err := f.service.Register(context.Background(), RegisterInput{
		Username: "dewi",
		Email:    "dewi@example.com",
		Phone:    "+6281234567890",
		Password: "hunter2hunter2",
	})
	if !errors.Is(err, dbDown) {
		t.Fatalf("Register = %v, want %v", err, dbDown)
	}
}

func TestLoginByAnyIdentifier(t *testing.T) {
	f := newAuthFixture(t)
	created := f.register(t)

	for _, identifier := range []string{"dewi", "dewi@example.com", "+6281234567890"} {
		user, pair, err := f.service.Login(context.Background(), LoginInput{
			Identifier: identifier,
			Password:   "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("Login(%q): %v", identifier, err)
		}
		if user.ID != created.ID {
			t.Fatalf("Login(%q) resolved user %s, want %s", identifier, user.ID, created.ID)
		}
		if pair.AccessToken == "" {
			t.Fatalf("Login(%q) returned empty access token", identifier)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)

	if _, _, err := f.service.Login(context.Background(), LoginInput{
		Identifier: "dewi",
		Password:   "wrong",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t)
	user.IsActive = false
	if err := f.users.Update(context.Background(), user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, _, err := f.service.Login(context.Background(), LoginInput{
		Identifier: "dewi",
		Password:   "hunter2hunter2",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login inactive = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownIdentifierStillHashes(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)
	f.hasher.VerifyCalls = 0

	if _, _, err := f.service.Login(context.Background(), LoginInput{
		Identifier: "nobody",
		Password:   "whatever",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login unknown = %v, want ErrInvalidCredentials", err)
	}
	// The dummy verification keeps the unknown-identifier path as expensive as
	// the wrong-password path.
	if f.hasher.VerifyCalls != 1 {
		t.Fatalf("Verify calls for unknown identifier = %d, want 1", f.hasher.VerifyCalls)
	}
}

func TestRefreshCarriesCurrentRole(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t)
	_, pair, err := f.service.Login(context.Background(), LoginInput{
		Identifier: "dewi",
		Password:   "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user.Role = entity.UserRoleAdmin
	if err := f.users.Update(context.Background(), user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	access, expiresIn, err := f.service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if expiresIn <= 0 {
		t.Fatalf("expiresIn = %d, want positive", expiresIn)
	}

	claims, err := newTestJWTManager().ParseAccessToken(access)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Role != string(entity.UserRoleAdmin) {
		t.Fatalf("refreshed access role = %q, want admin", claims.Role)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)
	_, pair, err := f.service.Login(context.Background(), LoginInput{
		Identifier: "dewi",
		Password:   "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, _, err := f.service.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Refresh with access token = %v, want ErrInvalidToken", err)
	}
}

func TestRevokeBlocksRefresh(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)
	_, pair, err := f.service.Login(context.Background(), LoginInput{
		Identifier: "dewi",
		Password:   "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := f.service.Revoke(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	// Revoking again is a no-op, not an error.
	if err := f.service.Revoke(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("second Revoke: %v", err)
	}

	if _, _, err := f.service.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Refresh after revoke = %v, want ErrInvalidToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t)

	if err := f.service.ChangePassword(context.Background(), user.ID, "wrong", "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ChangePassword wrong old = %v, want ErrInvalidCredentials", err)
	}
	if err := f.service.ChangePassword(context.Background(), user.ID, "hunter2hunter2", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := f.service.Login(context.Background(), LoginInput{Identifier: "dewi", Password: "hunter2hunter2"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password still accepted after change")
	}
	if _, _, err := f.service.Login(context.Background(), LoginInput{Identifier: "dewi", Password: "newpassword1"}); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
}

func TestForgotPasswordKnownEmail(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t)

	if err := f.service.ForgotPassword(context.Background(), "dewi@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	calls := f.notifier.Calls()
	if len(calls) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(calls))
	}
	call := calls[0]
	if call.Template != "password_reset.html" {
		t.Fatalf("template = %q", call.Template)
	}
	if len(call.Recipients) != 1 || call.Recipients[0] != user.Email {
		t.Fatalf("recipients = %v", call.Recipients)
	}
	resetURL, _ := call.Data["reset_url"].(string)
	if !strings.HasPrefix(resetURL, "https://app.example.com/reset-password?token=") {
		t.Fatalf("reset_url = %q", resetURL)
	}

	raw := strings.TrimPrefix(resetURL, "https://app.example.com/reset-password?token=")
	token, err := f.resets.FindByToken(context.Background(), raw)
	if err != nil || token == nil {
		t.Fatalf("mailed token not persisted (err=%v)", err)
	}
	if token.UserID != user.ID {
		t.Fatalf("token user = %s, want %s", token.UserID, user.ID)
	}
}

func TestForgotPasswordWithRealMailer(t *testing.T) {
	users := newMemUserRepo()
	resets := newMemResetTokenRepo()
	settings := newMemEmailSettingRepo()
	emailLogs := newMemEmailLogRepo()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	jwt := newTestJWTManager()
	channel := &recordingChannel{}

	provider := &entity.EmailProviderSetting{
		Name:         "primary-smtp",
		ProviderType: entity.ProviderSMTP,
		FromEmail:    "noreply@example.com",
		IsActive:     true,
	}
	if err := settings.Save(context.Background(), provider); err != nil {
		t.Fatalf("Save provider: %v", err)
	}

	mailer := NewMailer(settings, emailLogs, clock, nil)
	mailer.channelFor = func(*entity.EmailProviderSetting) (EmailChannel, error) {
		return channel, nil
	}

	svc := NewAuthService(
		users,
		newMemRevokedTokenRepo(),
		NewResetTokens(resets, clock, 24*time.Hour),
		mailer,
		&plainHasher{},
		jwt,
		jwt,
		clock,
		nil,
		AuthConfig{ResetURLBase: "https://app.example.com/reset-password"},
	)

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "dewi",
		Email:    "dewi@example.com",
		Phone:    "+6281234567890",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "dewi@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	// Exactly one unused token for the user.
	if len(resets.tokens) != 1 {
		t.Fatalf("reset tokens = %d, want 1", len(resets.tokens))
	}
	for _, token := range resets.tokens {
		if token.UserID != user.ID || token.IsUsed {
			t.Fatalf("token = %+v", token)
		}
	}

	// Exactly one log row, finalized and referencing the active provider.
	logs, _ := emailLogs.List(context.Background(), 0, 0)
	if len(logs) != 1 {
		t.Fatalf("email logs = %d, want 1", len(logs))
	}
	if logs[0].EmailProviderID != provider.ID {
		t.Fatalf("log provider = %s, want %s", logs[0].EmailProviderID, provider.ID)
	}
	if logs[0].Status != entity.EmailStatusSent {
		t.Fatalf("log status = %q, want sent", logs[0].Status)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)

	if err := f.service.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("ForgotPassword unknown = %v, want nil", err)
	}
	if calls := f.notifier.Calls(); len(calls) != 0 {
		t.Fatalf("notifier calls for unknown email = %d, want 0", len(calls))
	}
}

func TestForgotPasswordSurvivesMailFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)
	f.notifier.err = errors.New("smtp down")

	if err := f.service.ForgotPassword(context.Background(), "dewi@example.com"); err != nil {
		t.Fatalf("ForgotPassword with failing mailer = %v, want nil", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t)

	token, err := f.service.resetTokens.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := f.service.ResetPassword(context.Background(), token.Token, "freshpassword1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, _, err := f.service.Login(context.Background(), LoginInput{Identifier: "dewi", Password: "freshpassword1"}); err != nil {
		t.Fatalf("Login with reset password: %v", err)
	}

	// Single use: the same token cannot reset again.
	if err := f.service.ResetPassword(context.Background(), token.Token, "anotherpassword"); !errors.Is(err, ErrResetTokenUsed) {
		t.Fatalf("second ResetPassword = %v, want ErrResetTokenUsed", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t)

	token, err := f.service.resetTokens.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	f.clock.Advance(25 * time.Hour)

	if err := f.service.ResetPassword(context.Background(), token.Token, "freshpassword1"); !errors.Is(err, ErrResetTokenExpired) {
		t.Fatalf("ResetPassword expired = %v, want ErrResetTokenExpired", err)
	}
	if _, _, err := f.service.Login(context.Background(), LoginInput{Identifier: "dewi", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("original password should still work: %v", err)
	}
}

func TestResetPasswordUnknownToken(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)

	if err := f.service.ResetPassword(context.Background(), "bogus", "freshpassword1"); !errors.Is(err, ErrResetTokenNotFound) {
		t.Fatalf("ResetPassword bogus = %v, want ErrResetTokenNotFound", err)
	}
}

func TestCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t)

	found, err := f.service.CurrentUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("CurrentUser = %s, want %s", found.ID, user.ID)
	}

	if _, err := f.service.CurrentUser(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("CurrentUser unknown = %v, want ErrUserNotFound", err)
	}
}
