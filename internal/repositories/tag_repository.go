package repositories

import (
	"context"
	"database/sql"
	"errors"

	"tasker/internal/models"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	FindByID(ctx context.Context, id int64) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	// Delete удаляет тег; связи task_tags уходят каскадом, сами задачи остаются.
	Delete(ctx context.Context, id int64) error
}

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`, tag.Name).Scan(&tag.ID)
}

func (r *tagRepository) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag := &models.Tag{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM tags WHERE id = $1`, id).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM tags WHERE name = $1`, name).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET name=$1 WHERE id=$2`, tag.Name, tag.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}
