package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	autherrors "payroll-pro/internal/auth/errors"
	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"

	"github.com/redis/go-redis/v9"
)

// SessionKeyPrefix sama dengan key localStorage aplikasi aslinya.
const SessionKeyPrefix = "payroll_user"

func SessionKey(sessionID string) string {
	return SessionKeyPrefix + ":" + sessionID
}

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

// Repository mencari user yang boleh login dari store aplikasi.
type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error)
	EmployeeIDByUserID(ctx context.Context, userID string) string
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.store.Snapshot().FindUser(id)
	if !ok {
		return nil, autherrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.store.Snapshot().Users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, autherrors.ErrUserNotFound
}

func (r *repository) FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	for _, u := range r.store.Snapshot().Users {
		if u.Role == role {
			return &u, nil
		}
	}
	return nil, autherrors.ErrUserNotFound
}

func (r *repository) EmployeeIDByUserID(ctx context.Context, userID string) string {
	if e, ok := r.store.Snapshot().EmployeeByUserID(userID); ok {
		return e.ID
	}
	return ""
}

// SessionStore menyimpan satu record session per session id.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, rec SessionRecord, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func (s *redisSessionStore) Save(ctx context.Context, sessionID string, rec SessionRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, SessionKey(sessionID), raw, ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	raw, err := s.rdb.Get(ctx, SessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, autherrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, SessionKey(sessionID)).Err()
}

type memoryEntry struct {
	rec       SessionRecord
	expiresAt time.Time
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemorySessionStore dipakai saat REDIS_ADDR kosong. Session hilang saat restart.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: map[string]memoryEntry{}, now: time.Now}
}

func (s *memorySessionStore) Save(ctx context.Context, sessionID string, rec SessionRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryEntry{rec: rec, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, autherrors.ErrSessionNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, autherrors.ErrSessionNotFound
	}
	rec := e.rec
	return &rec, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
