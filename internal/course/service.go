package course

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/validation"
)

const untitledCourse = "Untitled Course"

// Gateway turns a topic into course content.
type Gateway interface {
	GenerateCourse(ctx context.Context, topic string) (*Generated, error)
}

// Repository defines the interface for course persistence. Lookups and
// deletes are scoped to the owner and report misses as models.ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, c *models.Course) error
	ListByUser(ctx context.Context, userID string) ([]models.Course, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	GetForUser(ctx context.Context, id, userID string) (*models.Course, error)
	DeleteForUser(ctx context.Context, id, userID string) error
}

// FileStore defines the interface for archive storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

// Service runs course generation and owner-scoped course access. files may
// be nil, in which case courses are not archived.
type Service struct {
	repo     Repository
	files    FileStore
	gateway  Gateway
	validate *validation.Validator
}

func NewService(repo Repository, files FileStore, gateway Gateway, validate *validation.Validator) *Service {
	return &Service{repo: repo, files: files, gateway: gateway, validate: validate}
}

func archiveKey(userID string, id primitive.ObjectID) string {
	return fmt.Sprintf("courses/%s/%s.json", userID, id.Hex())
}

// Generate makes a single gateway call for topic and stores the result under
// userID. Any gateway failure yields models.ErrGenerationFailed and nothing
// is stored.
func (s *Service) Generate(ctx context.Context, userID, topic string) (*models.Course, error) {
	form := models.CourseForm{Topic: strings.TrimSpace(topic)}
	if err := s.validate.Struct(&form); err != nil {
		return nil, err
	}
	log := zerolog.Ctx(ctx)

	started := time.Now()
	gen, err := s.gateway.GenerateCourse(ctx, form.Topic)
	if err != nil {
		log.Warn().Err(err).Str("topic", form.Topic).Dur("took", time.Since(started)).Msg("course generation failed")
		return nil, fmt.Errorf("%w: %w", models.ErrGenerationFailed, err)
	}

	c := &models.Course{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Title:       gen.Title,
		Description: gen.Description,
		Language:    gen.Language,
		Chapters:    gen.Chapters,
		Topic:       form.Topic,
		CreatedAt:   time.Now().UTC(),
	}
	if c.Title == "" {
		c.Title = untitledCourse
	}
	if c.Chapters == nil {
		c.Chapters = []models.Chapter{}
	}

	if s.files != nil {
		key := archiveKey(userID, c.ID)
		if err := s.files.Upload(ctx, key, gen.Raw, "application/json"); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("course archive upload failed (non-fatal)")
		} else {
			c.ArchiveKey = key
		}
	}

	if err := s.repo.Insert(ctx, c); err != nil {
		if c.ArchiveKey != "" {
			if rmErr := s.files.Remove(ctx, c.ArchiveKey); rmErr != nil {
				log.Warn().Err(rmErr).Str("key", c.ArchiveKey).Msg("remove orphaned archive")
			}
		}
		return nil, fmt.Errorf("save course: %w", err)
	}

	log.Info().Str("course_id", c.ID.Hex()).Str("user_id", userID).Dur("took", time.Since(started)).Msg("course generated")
	return c, nil
}

// List returns the user's courses, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]models.Course, error) {
	courses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

// Get returns the course only when userID owns it.
func (s *Service) Get(ctx context.Context, userID, id string) (*models.Course, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

// Delete removes an owned course and its archive.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	c, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteForUser(ctx, id, userID); err != nil {
		return err
	}
	if c.ArchiveKey != "" && s.files != nil {
		if err := s.files.Remove(ctx, c.ArchiveKey); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", c.ArchiveKey).Msg("remove archive")
		}
	}
	return nil
}

// Export returns the archived gateway payload of an owned course.
func (s *Service) Export(ctx context.Context, userID, id string) ([]byte, *models.Course, error) {
	c, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}
	if c.ArchiveKey == "" || s.files == nil {
		return nil, nil, models.ErrNotFound
	}
	data, _, err := s.files.Download(ctx, c.ArchiveKey)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, models.ErrNotFound
		}
		return nil, nil, fmt.Errorf("download archive: %w", err)
	}
	return data, c, nil
}
