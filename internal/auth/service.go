package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/validation"
)

// UserStore defines the interface for user persistence. CreateUser reports
// a taken username or email as models.ErrDuplicateCredential; lookups report
// a miss as models.ErrNotFound.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Sessions maps opaque session ids to user ids.
type Sessions interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

// Service verifies credentials and starts or ends sessions.
type Service struct {
	users      UserStore
	sessions   Sessions
	validate   *validation.Validator
	bcryptCost int
}

func NewService(users UserStore, sessions Sessions, validate *validation.Validator, bcryptCost int) *Service {
	return &Service{users: users, sessions: sessions, validate: validate, bcryptCost: bcryptCost}
}

// SessionTTL is the lifetime of sessions created by this service.
func (s *Service) SessionTTL() time.Duration { return s.sessions.TTL() }

// Register creates a user and logs them in, returning the new session id.
func (s *Service) Register(ctx context.Context, form models.RegisterForm) (*models.User, string, error) {
	form.Username = normalize(form.Username)
	form.Email = normalize(form.Email)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	if err := s.validate.Struct(&form); err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, &models.User{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  string(hashed),
	})
	if err != nil {
		return nil, "", err
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, sid, nil
}

// Login checks the password and starts a session. An unknown username and a
// wrong password both yield models.ErrInvalidCredential.
func (s *Service) Login(ctx context.Context, form models.LoginForm) (*models.User, string, error) {
	form.Username = normalize(form.Username)
	if err := s.validate.Struct(&form); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetUserByUsername(ctx, form.Username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrInvalidCredential
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return nil, "", models.ErrInvalidCredential
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user logged in")
	return user, sid, nil
}

// Logout ends the session. Unknown or empty ids are not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session id to its user.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, models.ErrUnauthenticated
	}
	userID, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
