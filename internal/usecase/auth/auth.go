package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/user"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

var errInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials")

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	users      domain.Repository
	audit      *audit.Dispatcher
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewService(users domain.Repository, a *audit.Dispatcher, secret string, expiration time.Duration) *Service {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &Service{
		users:      users,
		audit:      a,
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)

	fields := map[string]string{}
	if username == "" {
		fields["username"] = "is required"
	}
	if in.Password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return nil, httperr.ErrValidation(fields)
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.expiration)
	token, err := s.generateToken(u, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "login",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return &LoginResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

// Me resolves the user behind an authenticated request. A token whose user
// no longer exists is treated as unauthenticated.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrUnauthorized("user_not_found")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) generateToken(u *models.User, now, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// EnsureAdmin creates the configured admin or resets its password. An empty
// password leaves any existing admin untouched.
func EnsureAdmin(ctx context.Context, users domain.Repository, username, password string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("admin username is empty")
	}
	if password == "" {
		log.Warn("ADMIN_PASSWORD not set, admin account not seeded", zap.String("username", username))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	u := &models.User{Username: username, PasswordHash: string(hashed)}
	if err := users.UpsertUser(ctx, u); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info("admin account ready", zap.String("username", username))
	return nil
}
