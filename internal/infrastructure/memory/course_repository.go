package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
)

// CourseRepository keeps courses and their videos in process memory.
// Every method holds the lock for its whole read-modify-write.
type CourseRepository struct {
	mu      sync.RWMutex
	courses map[string]*entity.Course
	order   []string
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{courses: make(map[string]*entity.Course)}
}

// List returns every course, inactive ones included, in creation order.
func (r *CourseRepository) List(_ context.Context) ([]*entity.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Course, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.courses[id].Clone())
	}
	return out, nil
}

func (r *CourseRepository) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *CourseRepository) Create(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.Videos == nil {
		c.Videos = []entity.Video{}
	}
	r.courses[c.ID] = c.Clone()
	r.order = append(r.order, c.ID)
	return nil
}

// Update runs apply on a copy of the stored course and keeps the result only if
// apply succeeds. The video list cannot be changed through Update.
func (r *CourseRepository) Update(_ context.Context, id string, apply func(*entity.Course) error) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	next := cur.Clone()
	if err := apply(next); err != nil {
		return nil, err
	}
	next.ID = id
	next.Videos = cur.Videos
	r.courses[id] = next
	return next.Clone(), nil
}

func (r *CourseRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// AddVideo appends v to the end of the course's video list.
// Adding or removing a video also touches the parent's UpdatedAt.
func (r *CourseRepository) AddVideo(_ context.Context, courseID string, v *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[courseID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Videos = append(c.Videos, *v)
	c.UpdatedAt = v.UpdatedAt
	return nil
}

func (r *CourseRepository) UpdateVideo(_ context.Context, courseID, videoID string, apply func(*entity.Video) error) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[courseID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	idx := c.FindVideo(videoID)
	if idx < 0 {
		return nil, repository.ErrVideoNotFound
	}
	v := c.Videos[idx]
	if err := apply(&v); err != nil {
		return nil, err
	}
	v.ID = videoID
	c.Videos[idx] = v
	return &v, nil
}

func (r *CourseRepository) DeleteVideo(_ context.Context, courseID, videoID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[courseID]
	if !ok {
		return repository.ErrNotFound
	}
	idx := c.FindVideo(videoID)
	if idx < 0 {
		return repository.ErrVideoNotFound
	}
	videos := make([]entity.Video, 0, len(c.Videos)-1)
	videos = append(videos, c.Videos[:idx]...)
	c.Videos = append(videos, c.Videos[idx+1:]...)
	c.UpdatedAt = at
	return nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
