// Command genfake наполняет базу случайными пользователями и задачами
// для локальной разработки.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tasker/internal/config"
	"tasker/internal/models"
	"tasker/internal/repositories"
	"tasker/internal/services"
)

var firstNames = []string{"Алексей", "Мария", "Иван", "Ольга", "Дмитрий", "Анна", "Сергей", "Елена"}
var lastNames = []string{"Иванов", "Петрова", "Сидоров", "Кузнецова", "Смирнов", "Попова"}
var titleWords = []string{"починить", "собрать", "проверить", "обновить", "написать", "выкатить",
	"отчёт", "форму", "логин", "страницу", "миграцию", "бэкап", "кэш", "индекс"}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer db.Close()

	ctx := context.Background()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	authService := services.NewAuthService()
	// без email-сервиса: приветственные письма при генерации не нужны
	userService := services.NewUserService(userRepo, nil, authService)
	taskService := services.NewTaskService(taskRepo, nil)

	fmt.Println("Начинаем генерацию данных...")

	var users []*models.User
	for i := 0; i < 3+rnd.Intn(3); i++ {
		fullName := firstNames[rnd.Intn(len(firstNames))] + " " + lastNames[rnd.Intn(len(lastNames))]
		email := fmt.Sprintf("demo%d_%d@example.com", time.Now().Unix(), i)
		user, err := userService.CreateUser(ctx, email, "demo-password", fullName, services.CreateUserInput{})
		if err != nil {
			log.Printf("не удалось создать пользователя: %v", err)
			os.Exit(1)
		}
		users = append(users, user)
	}
	fmt.Printf("Создали %d пользователей\n", len(users))

	count := 5 + rnd.Intn(6)
	for i := 0; i < count; i++ {
		title := randomTitle(rnd)
		endDate := time.Now().UTC().AddDate(0, 0, rnd.Intn(90)-30)
		// прямой путь создания: правило формы здесь не действует
		_, err := taskService.Create(ctx, &models.Task{
			Title:   title,
			UserID:  users[rnd.Intn(len(users))].ID,
			Body:    fmt.Sprintf("Автосгенерированная задача №%d", i+1),
			EndDate: endDate,
		})
		if err != nil {
			log.Printf("не удалось создать задачу: %v", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Создали %d задач\n", count)

	fmt.Println("Генерация данных завершена")
}

func randomTitle(rnd *rand.Rand) string {
	a := titleWords[rnd.Intn(len(titleWords))]
	b := titleWords[rnd.Intn(len(titleWords))]
	return a + " " + b
}
