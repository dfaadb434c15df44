// internal/services/task_service.go
package services

import (
	"context"
	"time"

	"tasker/internal/models"
	"tasker/internal/repositories"
	"tasker/internal/worker"
)

// TaskService defines the interface for task-related business logic.
//
// Create is the direct persistence path and applies no form rules.
// Submit is the form-boundary path: it runs title validation and then
// delegates to Create. The split mirrors how the form layer and
// programmatic creation behave differently.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Submit(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetByDate(ctx context.Context, date *time.Time) ([]models.Task, error)
	Kanban(ctx context.Context) (map[models.TaskStatus][]models.Task, error)
	Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error)

	SetTags(ctx context.Context, id int64, tagIDs []int64) (*models.Task, error)
	AddTag(ctx context.Context, id, tagID int64) (*models.Task, error)
	RemoveTag(ctx context.Context, id, tagID int64) (*models.Task, error)
	ClearTags(ctx context.Context, id int64) (*models.Task, error)
}

type taskService struct {
	repo     repositories.TaskRepository
	notifier *worker.Notifier
}

// NewTaskService creates a new instance of TaskService.
// notifier may be nil; then creation notifications are skipped.
func NewTaskService(repo repositories.TaskRepository, notifier *worker.Notifier) TaskService {
	return &taskService{repo: repo, notifier: notifier}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusNew
	}
	if task.TaskType == "" {
		task.TaskType = models.TypeTask
	}
	task.EndDate = models.DateOnly(task.EndDate)
	task.CreatedAt = time.Now().UTC()

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	if task.Tags == nil {
		task.Tags = []models.Tag{}
	}

	// fire-and-forget: сбой уведомления не откатывает создание
	if s.notifier != nil {
		s.notifier.Enqueue(task.Title)
	}
	return task, nil
}

func (s *taskService) Submit(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := models.ValidateTitle(task.Title); err != nil {
		return nil, err
	}
	if task.Status != "" && !task.Status.Valid() {
		return nil, models.NewValidationError("unknown status: " + string(task.Status))
	}
	if task.TaskType != "" && !task.TaskType.Valid() {
		return nil, models.NewValidationError("unknown task type: " + string(task.TaskType))
	}
	return s.Create(ctx, task)
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

// GetByDate возвращает задачи с end_date == date; nil означает "сегодня".
func (s *taskService) GetByDate(ctx context.Context, date *time.Time) ([]models.Task, error) {
	d := time.Now().UTC()
	if date != nil {
		d = *date
	}
	return s.repo.FindByEndDate(ctx, d)
}

// Kanban группирует задачи по статусу; все три колонки присутствуют всегда.
func (s *taskService) Kanban(ctx context.Context) (map[models.TaskStatus][]models.Task, error) {
	tasks, err := s.repo.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	board := map[models.TaskStatus][]models.Task{
		models.StatusNew:    {},
		models.StatusActive: {},
		models.StatusClosed: {},
	}
	for _, t := range tasks {
		board[t.Status] = append(board[t.Status], t)
	}
	return board, nil
}

func (s *taskService) Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.UserID = updateData.UserID
	existing.Title = updateData.Title
	existing.Body = updateData.Body
	existing.EndDate = models.DateOnly(updateData.EndDate)
	existing.TaskType = updateData.TaskType
	existing.Status = updateData.Status
	// CreatedAt намеренно не переносим

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// UpdateStatus пишет любой допустимый статус; порядок переходов не ограничен.
func (s *taskService) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error) {
	if !to.Valid() {
		return nil, models.NewValidationError("unknown status: " + string(to))
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) SetTags(ctx context.Context, id int64, tagIDs []int64) (*models.Task, error) {
	if err := s.repo.SetTags(ctx, id, tagIDs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) AddTag(ctx context.Context, id, tagID int64) (*models.Task, error) {
	if err := s.repo.AddTag(ctx, id, tagID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) RemoveTag(ctx context.Context, id, tagID int64) (*models.Task, error) {
	if err := s.repo.RemoveTag(ctx, id, tagID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) ClearTags(ctx context.Context, id int64) (*models.Task, error) {
	if err := s.repo.ClearTags(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
