package services

import (
	"context"
	"strings"

	"tasker/internal/models"
	"tasker/internal/repositories"
)

type TagService interface {
	Create(ctx context.Context, name string) (*models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Rename(ctx context.Context, id int64, name string) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type tagService struct {
	repo repositories.TagRepository
}

func NewTagService(repo repositories.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("tag name must not be empty")
	}
	tag := &models.Tag{Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.repo.List(ctx)
}

func (s *tagService) Rename(ctx context.Context, id int64, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("tag name must not be empty")
	}
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete отвязывает тег от задач и удаляет его; задачи не трогает.
func (s *tagService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
