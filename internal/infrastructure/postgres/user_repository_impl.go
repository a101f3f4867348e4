package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
)

const (
	userColumns       = `id, full_name, email, password, role, school_type, is_active, created_at, updated_at`
	userSelectColumns = `id::text, full_name, email, password, role, school_type, is_active, created_at, updated_at`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var schoolType *string
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Password, &u.Role, &schoolType,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if schoolType != nil {
		st := entity.SchoolType(*schoolType)
		u.SchoolType = &st
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userSelectColumns+`
		FROM users
		WHERE is_active
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userSelectColumns+`
		FROM users
		WHERE id = $1 AND is_active
	`, key)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userSelectColumns+`
		FROM users
		WHERE lower(email) = lower($1) AND is_active
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, u.ID, u.FullName, u.Email, u.Password, u.Role, schoolTypeArg(u), u.IsActive, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrEmailExists
	}
	return err
}

// Update locks the active row, applies the change and writes it back in one transaction.
// A row soft deleted before the lock is taken is not found.
func (r *UserRepository) Update(ctx context.Context, id string, apply func(*entity.User) error) (*entity.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var out *entity.User
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx, `
			SELECT `+userSelectColumns+`
			FROM users
			WHERE id = $1 AND is_active
			FOR UPDATE
		`, key))
		if err != nil {
			return err
		}
		if err := apply(u); err != nil {
			return err
		}
		u.ID = key
		if _, err := tx.Exec(ctx, `
			UPDATE users
			SET full_name = $1, email = $2, password = $3, role = $4, school_type = $5, is_active = $6, updated_at = $7
			WHERE id = $8
		`, u.FullName, u.Email, u.Password, u.Role, schoolTypeArg(u), u.IsActive, u.UpdatedAt, key); err != nil {
			return err
		}
		out = u
		return nil
	})
	if isUniqueViolation(err) {
		return nil, repository.ErrEmailExists
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1 AND is_active
	`, key)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func schoolTypeArg(u *entity.User) *string {
	if u.SchoolType == nil {
		return nil
	}
	s := string(*u.SchoolType)
	return &s
}

var _ repository.UserRepository = (*UserRepository)(nil)
