package repository

import (
	"context"
	"time"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
)

// CourseRepository defines the interface for course and nested video persistence.
//
// Update and UpdateVideo run apply against the current stored record while holding
// the record's lock (a mutex in memory, SELECT ... FOR UPDATE in postgres) and
// persist the result only when apply returns nil.
type CourseRepository interface {
	List(ctx context.Context) ([]*entity.Course, error)
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Create(ctx context.Context, c *entity.Course) error
	Update(ctx context.Context, id string, apply func(*entity.Course) error) (*entity.Course, error)
	Delete(ctx context.Context, id string) error

	AddVideo(ctx context.Context, courseID string, v *entity.Video) error
	UpdateVideo(ctx context.Context, courseID, videoID string, apply func(*entity.Video) error) (*entity.Video, error)
	DeleteVideo(ctx context.Context, courseID, videoID string, at time.Time) error
}
