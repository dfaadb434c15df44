package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"tasker/internal/models"
	"tasker/internal/repositories"
)

// CreateUserInput — необязательные поля при создании пользователя.
type CreateUserInput struct {
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

type UserService interface {
	CreateUser(ctx context.Context, email, password, fullName string, extra CreateUserInput) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password, fullName string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	GetUserCount(ctx context.Context) (int, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

// NormalizeEmail опускает регистр доменной части; локальная часть сохраняется
// как есть: "TEST@EXAMPLE.COM" -> "TEST@example.com".
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func (s *userService) CreateUser(ctx context.Context, email, password, fullName string, extra CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, models.ErrEmailRequired
	}
	email = NormalizeEmail(email)

	// Проверка занятости до записи (как clean_email у формы);
	// гонку закрывает уникальный индекс в БД.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashed,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if extra.IsActive != nil {
		user.IsActive = *extra.IsActive
	}
	if extra.IsStaff != nil {
		user.IsStaff = *extra.IsStaff
	}
	if extra.IsSuperuser != nil {
		user.IsSuperuser = *extra.IsSuperuser
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			// warn but do not fail creation
			log.Printf("[user][create] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// CreateSuperuser — то же создание, но staff/superuser/active по умолчанию true.
func (s *userService) CreateSuperuser(ctx context.Context, email, password, fullName string) (*models.User, error) {
	t := true
	return s.CreateUser(ctx, email, password, fullName, CreateUserInput{
		IsActive:    &t,
		IsStaff:     &t,
		IsSuperuser: &t,
	})
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *userService) UpdateUser(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	return s.repo.Update(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *userService) GetUserCount(ctx context.Context) (int, error) {
	return s.repo.GetCount(ctx)
}
