package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	repo "github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
)

// CourseIndex mirrors courses into a search backend. Failures never fail the
// request; the store stays the source of truth.
type CourseIndex interface {
	Index(ctx context.Context, c *entity.Course) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

type CourseService struct {
	Repo   repo.CourseRepository
	Index  CourseIndex
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewCourseService(r repo.CourseRepository, idx CourseIndex, logger *logrus.Logger) *CourseService {
	return &CourseService{Repo: r, Index: idx, Logger: logger}
}

func (s *CourseService) now() time.Time { return clock(s.Now).now() }

func (s *CourseService) List(ctx context.Context) ([]*entity.Course, error) {
	return s.Repo.List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, courseErr(err)
	}
	return c, nil
}

// Create validates the input, stores the thumbnail if one was uploaded and saves a new course.
func (s *CourseService) Create(ctx context.Context, in Fields, thumbnail Attachment) (*entity.Course, error) {
	ch, err := ValidateCourseCreate(in)
	if err != nil {
		return nil, err
	}
	if thumbnail != nil {
		path, err := thumbnail.Store(ctx)
		if err != nil {
			return nil, err
		}
		ch.Thumbnail = &path
	}

	now := s.now()
	c := &entity.Course{
		ID:        uuid.NewString(),
		Videos:    []entity.Video{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	ch.Apply(c)
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.index(ctx, c)
	return c, nil
}

// Update merges only the provided fields. A missing course fails before anything is stored.
// The merge happens inside the repository against the current record, so concurrent
// updates to different fields of the same course both survive.
func (s *CourseService) Update(ctx context.Context, id string, in Fields, thumbnail Attachment) (*entity.Course, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return nil, courseErr(err)
	}
	ch, err := ValidateCourseUpdate(in)
	if err != nil {
		return nil, err
	}
	if thumbnail != nil {
		path, err := thumbnail.Store(ctx)
		if err != nil {
			return nil, err
		}
		ch.Thumbnail = &path
	}

	now := s.now()
	c, err := s.Repo.Update(ctx, id, func(c *entity.Course) error {
		ch.Apply(c)
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, courseErr(err)
	}
	s.index(ctx, c)
	return c, nil
}

// Delete removes the course and its videos for good.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return courseErr(err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("course_id", id).Warn("course index remove failed")
		}
	}
	return nil
}

// AddVideo appends a new video to the end of the course's video list.
func (s *CourseService) AddVideo(ctx context.Context, courseID string, in Fields, file Attachment) (*entity.Video, error) {
	if _, err := s.Repo.GetByID(ctx, courseID); err != nil {
		return nil, courseErr(err)
	}
	ch, err := ValidateVideoCreate(in, file != nil)
	if err != nil {
		return nil, err
	}
	path, err := file.Store(ctx)
	if err != nil {
		return nil, err
	}
	ch.VideoURL = &path

	now := s.now()
	v := &entity.Video{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	ch.Apply(v)
	if err := s.Repo.AddVideo(ctx, courseID, v); err != nil {
		return nil, courseErr(err)
	}
	return v, nil
}

// UpdateVideo merges the provided fields onto a video found in the course's list.
func (s *CourseService) UpdateVideo(ctx context.Context, courseID, videoID string, in Fields, file Attachment) (*entity.Video, error) {
	c, err := s.Repo.GetByID(ctx, courseID)
	if err != nil {
		return nil, courseErr(err)
	}
	if c.FindVideo(videoID) < 0 {
		return nil, ErrVideoNotFound
	}
	ch, err := ValidateVideoUpdate(in)
	if err != nil {
		return nil, err
	}
	if file != nil {
		path, err := file.Store(ctx)
		if err != nil {
			return nil, err
		}
		ch.VideoURL = &path
	}

	now := s.now()
	v, err := s.Repo.UpdateVideo(ctx, courseID, videoID, func(v *entity.Video) error {
		ch.Apply(v)
		v.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, courseErr(err)
	}
	return v, nil
}

func (s *CourseService) DeleteVideo(ctx context.Context, courseID, videoID string) error {
	return courseErr(s.Repo.DeleteVideo(ctx, courseID, videoID, s.now()))
}

// Search returns matching courses in relevance order. Without an index it returns nothing.
func (s *CourseService) Search(ctx context.Context, q string, size int) ([]*entity.Course, error) {
	out := []*entity.Course{}
	if s.Index == nil {
		return out, nil
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		c, err := s.Repo.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *CourseService) index(ctx context.Context, c *entity.Course) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, c); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("course_id", c.ID).Warn("course index failed")
	}
}

func courseErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrCourseNotFound
	case errors.Is(err, repo.ErrVideoNotFound):
		return ErrVideoNotFound
	default:
		return err
	}
}
