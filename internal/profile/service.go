// Package profile lets a logged-in user view and edit their own record.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/validation"
)

// UserStore is the slice of the credential store that profile editing needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	UpdateProfile(ctx context.Context, id string, form models.ProfileForm) error
}

// CourseCounter reports how many courses a user owns.
type CourseCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type Service struct {
	users    UserStore
	courses  CourseCounter
	validate *validation.Validator
}

func NewService(users UserStore, courses CourseCounter, validate *validation.Validator) *Service {
	return &Service{users: users, courses: courses, validate: validate}
}

// Show returns the user's record and course count.
func (s *Service) Show(ctx context.Context, userID string) (*models.User, int64, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	n, err := s.courses.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return user, n, nil
}

// Update overwrites name, email and bio of current. A changed email that
// another user already holds fails with models.ErrDuplicateCredential and
// leaves the record untouched.
func (s *Service) Update(ctx context.Context, current *models.User, form models.ProfileForm) (*models.User, error) {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Bio = strings.TrimSpace(form.Bio)
	if err := s.validate.Struct(&form); err != nil {
		return nil, err
	}

	if form.Email != current.Email {
		taken, err := s.users.EmailTaken(ctx, form.Email, current.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, models.ErrDuplicateCredential
		}
	}

	if err := s.users.UpdateProfile(ctx, current.ID, form); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("user_id", current.ID).Msg("profile updated")

	updated := *current
	updated.FirstName = form.FirstName
	updated.LastName = form.LastName
	updated.Email = form.Email
	updated.Bio = form.Bio
	return &updated, nil
}
