package service

import (
	"context"
	"sync"
	"time"

	"jobtrackr/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// plainHasher stores passwords with a marker prefix and counts Verify calls,
// so tests can assert that unknown identifiers still pay one verification.
type plainHasher struct {
	mu          sync.Mutex
	VerifyCalls int
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *plainHasher) Verify(hash string, password string) bool {
	h.mu.Lock()
	h.VerifyCalls++
	h.mu.Unlock()
	return hash == "hashed:"+password
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == identifier || user.Email == identifier || user.Phone == identifier {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role entity.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) SaveProfile(_ context.Context, _ *entity.Profile) error { return nil }

func (r *memUserRepo) SaveSocialLinks(_ context.Context, _ *entity.SocialLink) error { return nil }

func (r *memUserRepo) ListProfiles(_ context.Context, _, _ int) ([]entity.Profile, error) {
	return nil, nil
}

type memResetTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*entity.PasswordResetToken
}

func newMemResetTokenRepo() *memResetTokenRepo {
	return &memResetTokenRepo{tokens: make(map[uuid.UUID]*entity.PasswordResetToken)}
}

func (r *memResetTokenRepo) Create(_ context.Context, token *entity.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *memResetTokenRepo) FindByToken(_ context.Context, raw string) (*entity.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.Token == raw {
			copied := *token
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memResetTokenRepo) Consume(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok || token.IsUsed {
		return false, nil
	}
	token.IsUsed = true
	return true, nil
}

type memRevokedTokenRepo struct {
	mu   sync.Mutex
	jtis map[string]struct{}
}

func newMemRevokedTokenRepo() *memRevokedTokenRepo {
	return &memRevokedTokenRepo{jtis: make(map[string]struct{})}
}

func (r *memRevokedTokenRepo) Add(_ context.Context, token *entity.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jtis[token.JTI] = struct{}{}
	return nil
}

func (r *memRevokedTokenRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.jtis[jti]
	return ok, nil
}

func (r *memRevokedTokenRepo) CleanupExpired(_ context.Context) error { return nil }

type memEmailSettingRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID]*entity.EmailProviderSetting
}

func newMemEmailSettingRepo() *memEmailSettingRepo {
	return &memEmailSettingRepo{settings: make(map[uuid.UUID]*entity.EmailProviderSetting)}
}

func (r *memEmailSettingRepo) Save(_ context.Context, setting *entity.EmailProviderSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if setting.ID == uuid.Nil {
		setting.ID = uuid.New()
	}
	if setting.IsActive {
		for id, other := range r.settings {
			if id != setting.ID {
				other.IsActive = false
			}
		}
	}
	copied := *setting
	r.settings[setting.ID] = &copied
	return nil
}

func (r *memEmailSettingRepo) Activate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.settings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, setting := range r.settings {
		setting.IsActive = false
	}
	target.IsActive = true
	return nil
}

func (r *memEmailSettingRepo) FindActive(_ context.Context) (*entity.EmailProviderSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, setting := range r.settings {
		if setting.IsActive {
			copied := *setting
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memEmailSettingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.EmailProviderSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting, ok := r.settings[id]
	if !ok {
		return nil, nil
	}
	copied := *setting
	return &copied, nil
}

func (r *memEmailSettingRepo) List(_ context.Context) ([]entity.EmailProviderSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings := make([]entity.EmailProviderSetting, 0, len(r.settings))
	for _, setting := range r.settings {
		settings = append(settings, *setting)
	}
	return settings, nil
}

func (r *memEmailSettingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.settings, id)
	return nil
}

type memEmailLogRepo struct {
	mu   sync.Mutex
	logs []*entity.EmailLog
}

func newMemEmailLogRepo() *memEmailLogRepo {
	return &memEmailLogRepo{}
}

func (r *memEmailLogRepo) Create(_ context.Context, log *entity.EmailLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *memEmailLogRepo) Finalize(_ context.Context, id uuid.UUID, status entity.EmailStatus, errorMessage *string, sentAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, log := range r.logs {
		if log.ID == id {
			log.Status = status
			log.ErrorMessage = errorMessage
			log.SentAt = sentAt
			return nil
		}
	}
	return nil
}

func (r *memEmailLogRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.EmailLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, log := range r.logs {
		if log.ID == id {
			copied := *log
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memEmailLogRepo) List(_ context.Context, _, _ int) ([]entity.EmailLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := make([]entity.EmailLog, 0, len(r.logs))
	for _, log := range r.logs {
		logs = append(logs, *log)
	}
	return logs, nil
}

// recordingNotifier captures Send calls for assertions on the forgot-password
// flow.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
	err   error
}

type notifierCall struct {
	Template   string
	Data       map[string]any
	Subject    string
	Recipients []string
}

func (n *recordingNotifier) Send(_ context.Context, templateName string, data map[string]any, subject string, recipients []string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifierCall{
		Template:   templateName,
		Data:       data,
		Subject:    subject,
		Recipients: recipients,
	})
	return n.err
}

func (n *recordingNotifier) Calls() []notifierCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifierCall(nil), n.calls...)
}
