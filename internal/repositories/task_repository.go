package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasker/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	FindByEndDate(ctx context.Context, date time.Time) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) error
	CountByUser(ctx context.Context, userID int64) (int, error)

	// тег-связи (many-to-many)
	SetTags(ctx context.Context, taskID int64, tagIDs []int64) error
	AddTag(ctx context.Context, taskID, tagID int64) error
	RemoveTag(ctx context.Context, taskID, tagID int64) error
	ClearTags(ctx context.Context, taskID int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, title, body, end_date, created_at, task_type, status`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (user_id, title, body, end_date, created_at, task_type, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Body, task.EndDate, task.CreatedAt,
		task.TaskType, task.Status,
	).Scan(&task.ID)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Body, &task.EndDate,
		&task.CreatedAt, &task.TaskType, &task.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadTags(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argID))
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("task_type = $%d", argID))
		args = append(args, *filter.Type)
		argID++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("end_date = $%d", argID))
		args = append(args, models.DateOnly(*filter.EndDate))
		argID++
	}
	if filter.TagID != nil {
		conditions = append(conditions,
			fmt.Sprintf("id IN (SELECT task_id FROM task_tags WHERE tag_id = $%d)", argID))
		args = append(args, *filter.TagID)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	// стабильный порядок листинга
	baseQuery += " ORDER BY end_date, title"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Body, &t.EndDate,
			&t.CreatedAt, &t.TaskType, &t.Status,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range tasks {
		if err := r.loadTags(ctx, &tasks[i]); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *taskRepository) FindByEndDate(ctx context.Context, date time.Time) ([]models.Task, error) {
	d := models.DateOnly(date)
	return r.FindAll(ctx, models.TaskFilter{EndDate: &d})
}

// Update перезаписывает изменяемые поля; created_at не трогаем.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			user_id=$1, title=$2, body=$3, end_date=$4, task_type=$5, status=$6
		WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query,
		task.UserID, task.Title, task.Body, task.EndDate, task.TaskType, task.Status, task.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1 WHERE id=$2`, to, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *taskRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var c int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID).Scan(&c)
	return c, err
}

// ===== теги =====

func (r *taskRepository) SetTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id=$1`, taskID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_tags (task_id, tag_id) VALUES ($1,$2)`, taskID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *taskRepository) AddTag(ctx context.Context, taskID, tagID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_tags (task_id, tag_id) VALUES ($1,$2)
		ON CONFLICT (task_id, tag_id) DO NOTHING`, taskID, tagID)
	return err
}

func (r *taskRepository) RemoveTag(ctx context.Context, taskID, tagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM task_tags WHERE task_id=$1 AND tag_id=$2`, taskID, tagID)
	return err
}

func (r *taskRepository) ClearTags(ctx context.Context, taskID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id=$1`, taskID)
	return err
}

func (r *taskRepository) loadTags(ctx context.Context, task *models.Task) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tags t
		JOIN task_tags tt ON tt.tag_id = t.id
		WHERE tt.task_id = $1
		ORDER BY t.id`, task.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	task.Tags = []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return err
		}
		task.Tags = append(task.Tags, tag)
	}
	return rows.Err()
}
