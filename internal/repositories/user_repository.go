package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"tasker/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	GetCount(ctx context.Context) (int, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, email, full_name, password_hash, is_active, is_staff, is_superuser, created_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (email, full_name, password_hash, is_active, is_staff, is_superuser, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, q,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.IsActive,
		user.IsStaff,
		user.IsSuperuser,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		// гонка на уникальном индексе email
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	const q = `
		UPDATE users
		SET email=$1, full_name=$2, password_hash=$3, is_active=$4, is_staff=$5, is_superuser=$6
		WHERE id=$7
	`
	res, err := r.DB.ExecContext(ctx, q,
		user.Email, user.FullName, user.PasswordHash,
		user.IsActive, user.IsStaff, user.IsSuperuser, user.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.ErrEmailTaken
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete удаляет пользователя; его задачи уходят каскадом (FK ON DELETE CASCADE).
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FullName, &u.PasswordHash,
			&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) GetCount(ctx context.Context) (int, error) {
	var c int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}
