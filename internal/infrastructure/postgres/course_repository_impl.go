package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
)

const (
	courseSelectColumns = `id::text, title, description, category, level, price, duration, thumbnail, is_active, created_at, updated_at`
	videoSelectColumns  = `id::text, course_id::text, title, description, video_url, duration, created_at, updated_at`
)

// CourseRepository stores courses in one table and their videos, ordered by position, in another.
type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func scanCourse(row pgx.Row) (*entity.Course, error) {
	c := &entity.Course{Videos: []entity.Video{}}
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Level, &c.Price, &c.Duration,
		&c.Thumbnail, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]*entity.Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseSelectColumns+` FROM courses ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Course, 0)
	byID := make(map[string]*entity.Course)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, c)
		byID[c.ID] = c
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vrows, err := r.pool.Query(ctx, `SELECT `+videoSelectColumns+` FROM videos ORDER BY course_id, position`)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var (
			v        entity.Video
			courseID string
		)
		if err := vrows.Scan(&v.ID, &courseID, &v.Title, &v.Description, &v.VideoURL, &v.Duration,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		if c, ok := byID[courseID]; ok {
			c.Videos = append(c.Videos, v)
		}
	}
	return out, vrows.Err()
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return getCourse(ctx, r.pool, key, false)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getCourse loads a course with its videos. forUpdate locks the course row for the
// rest of the enclosing transaction.
func getCourse(ctx context.Context, q querier, key string, forUpdate bool) (*entity.Course, error) {
	sql := `SELECT ` + courseSelectColumns + ` FROM courses WHERE id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	c, err := scanCourse(q.QueryRow(ctx, sql, key))
	if err != nil {
		return nil, err
	}
	if c.Videos, err = loadVideos(ctx, q, key); err != nil {
		return nil, err
	}
	return c, nil
}

func loadVideos(ctx context.Context, q querier, courseID string) ([]entity.Video, error) {
	rows, err := q.Query(ctx, `
		SELECT `+videoSelectColumns+`
		FROM videos
		WHERE course_id = $1
		ORDER BY position
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]entity.Video, 0)
	for rows.Next() {
		var (
			v   entity.Video
			cid string
		)
		if err := rows.Scan(&v.ID, &cid, &v.Title, &v.Description, &v.VideoURL, &v.Duration,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO courses (id, title, description, category, level, price, duration, thumbnail, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, c.ID, c.Title, c.Description, c.Category, c.Level, c.Price, c.Duration, c.Thumbnail,
			c.IsActive, c.CreatedAt, c.UpdatedAt); err != nil {
			return err
		}
		for i := range c.Videos {
			if err := insertVideo(ctx, tx, c.ID, i+1, &c.Videos[i]); err != nil {
				return err
			}
		}
		if c.Videos == nil {
			c.Videos = []entity.Video{}
		}
		return nil
	})
}

// Update locks the course row, applies the change to the current values and writes
// the scalar fields back in the same transaction. Videos are only changed through
// the video methods.
func (r *CourseRepository) Update(ctx context.Context, id string, apply func(*entity.Course) error) (*entity.Course, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var out *entity.Course
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		c, err := getCourse(ctx, tx, key, true)
		if err != nil {
			return err
		}
		videos := c.Videos
		if err := apply(c); err != nil {
			return err
		}
		c.ID, c.Videos = key, videos
		if _, err := tx.Exec(ctx, `
			UPDATE courses
			SET title = $1, description = $2, category = $3, level = $4, price = $5, duration = $6,
			    thumbnail = $7, is_active = $8, updated_at = $9
			WHERE id = $10
		`, c.Title, c.Description, c.Category, c.Level, c.Price, c.Duration, c.Thumbnail, c.IsActive, c.UpdatedAt, key); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, key)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) AddVideo(ctx context.Context, courseID string, v *entity.Video) error {
	key, ok := parseID(courseID)
	if !ok {
		return repository.ErrNotFound
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockCourse(ctx, tx, key); err != nil {
			return err
		}
		var pos int
		if err := tx.QueryRow(ctx, `
			SELECT COALESCE(MAX(position), 0) + 1 FROM videos WHERE course_id = $1
		`, key).Scan(&pos); err != nil {
			return err
		}
		if err := insertVideo(ctx, tx, key, pos, v); err != nil {
			return err
		}
		return touchCourse(ctx, tx, key, v.UpdatedAt)
	})
}

func (r *CourseRepository) UpdateVideo(ctx context.Context, courseID, videoID string, apply func(*entity.Video) error) (*entity.Video, error) {
	key, ok := parseID(courseID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	vkey, ok := parseID(videoID)
	if !ok {
		return nil, repository.ErrVideoNotFound
	}
	var out *entity.Video
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockCourse(ctx, tx, key); err != nil {
			return err
		}
		var (
			v   entity.Video
			cid string
		)
		err := tx.QueryRow(ctx, `
			SELECT `+videoSelectColumns+`
			FROM videos
			WHERE id = $1 AND course_id = $2
		`, vkey, key).Scan(&v.ID, &cid, &v.Title, &v.Description, &v.VideoURL, &v.Duration, &v.CreatedAt, &v.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrVideoNotFound
		}
		if err != nil {
			return err
		}
		if err := apply(&v); err != nil {
			return err
		}
		v.ID = vkey
		if _, err := tx.Exec(ctx, `
			UPDATE videos
			SET title = $1, description = $2, video_url = $3, duration = $4, updated_at = $5
			WHERE id = $6
		`, v.Title, v.Description, v.VideoURL, v.Duration, v.UpdatedAt, vkey); err != nil {
			return err
		}
		out = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CourseRepository) DeleteVideo(ctx context.Context, courseID, videoID string, at time.Time) error {
	key, ok := parseID(courseID)
	if !ok {
		return repository.ErrNotFound
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockCourse(ctx, tx, key); err != nil {
			return err
		}
		vkey, ok := parseID(videoID)
		if !ok {
			return repository.ErrVideoNotFound
		}
		res, err := tx.Exec(ctx, `DELETE FROM videos WHERE id = $1 AND course_id = $2`, vkey, key)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrVideoNotFound
		}
		return touchCourse(ctx, tx, key, at)
	})
}

// lockCourse serializes concurrent video writes on the same course.
func lockCourse(ctx context.Context, tx pgx.Tx, courseID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id::text FROM courses WHERE id = $1 FOR UPDATE`, courseID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func touchCourse(ctx context.Context, tx pgx.Tx, courseID string, at time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE courses SET updated_at = $1 WHERE id = $2`, at, courseID)
	return err
}

func insertVideo(ctx context.Context, tx pgx.Tx, courseID string, pos int, v *entity.Video) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO videos (id, course_id, position, title, description, video_url, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, v.ID, courseID, pos, v.Title, v.Description, v.VideoURL, v.Duration, v.CreatedAt, v.UpdatedAt)
	return err
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
