package auth

import (
	"context"
	"strings"
	"time"

	autherrors "payroll-pro/internal/auth/errors"
	"payroll-pro/internal/domain"
	"payroll-pro/internal/rbac"
	"payroll-pro/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (MeResponse, error)
	// Resolve dipakai middleware.Session.
	Resolve(ctx context.Context, token string) (contextutil.Viewer, error)
}

type service struct {
	repo     Repository
	sessions SessionStore
	rbac     rbac.Service
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewService(repo Repository, sessions SessionStore, rbacService rbac.Service, secret string, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		rbac:     rbacService,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	user, err := s.findLoginUser(ctx, req)
	if err != nil {
		l.Warn("login failed", zap.String("user_id", req.UserID), zap.String("email", req.Email), zap.Error(err))
		return LoginResponse{}, err
	}

	sessionID := uuid.NewString()
	now := s.now()
	rec := SessionRecord{
		User:       *user,
		EmployeeID: s.repo.EmployeeIDByUserID(ctx, user.ID),
		CreatedAt:  now.UTC(),
	}
	if err := s.sessions.Save(ctx, sessionID, rec, s.ttl); err != nil {
		l.Error("save session failed", zap.Error(err))
		return LoginResponse{}, err
	}

	expiresAt := now.Add(s.ttl)
	token, err := s.generateToken(sessionID, user.ID, now, expiresAt)
	if err != nil {
		_ = s.sessions.Delete(ctx, sessionID)
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	l.Info("login success", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return LoginResponse{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

func (s *service) findLoginUser(ctx context.Context, req LoginRequest) (*domain.User, error) {
	switch {
	case strings.TrimSpace(req.UserID) != "":
		return s.repo.FindByID(ctx, strings.TrimSpace(req.UserID))
	case strings.TrimSpace(req.Email) != "":
		return s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	case req.Role != "":
		return s.repo.FindFirstByRole(ctx, domain.Role(req.Role))
	default:
		return nil, autherrors.ErrLoginIdentifierRequired
	}
}

func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.ID)
}

func (s *service) Me(ctx context.Context, token string) (MeResponse, error) {
	rec, err := s.session(ctx, token)
	if err != nil {
		return MeResponse{}, err
	}

	// data user terbaru dari store, bukan salinan saat login
	user := rec.User
	if current, err := s.repo.FindByID(ctx, rec.User.ID); err == nil {
		user = *current
	}

	caps, err := s.rbac.Capabilities(user.Role)
	if err != nil {
		return MeResponse{}, err
	}

	return MeResponse{
		User:         user,
		EmployeeID:   s.repo.EmployeeIDByUserID(ctx, user.ID),
		Capabilities: caps,
	}, nil
}

func (s *service) Resolve(ctx context.Context, token string) (contextutil.Viewer, error) {
	rec, err := s.session(ctx, token)
	if err != nil {
		return contextutil.Viewer{}, err
	}

	user, err := s.repo.FindByID(ctx, rec.User.ID)
	if err != nil {
		return contextutil.Viewer{}, autherrors.ErrInvalidToken
	}
	return contextutil.Viewer{UserID: user.ID, Role: user.Role}, nil
}

func (s *service) session(ctx context.Context, token string) (*SessionRecord, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, claims.ID)
}

func (s *service) generateToken(sessionID, userID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *service) parseToken(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
