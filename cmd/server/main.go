package main

import (
	"log"

	"github.com/joho/godotenv"

	"tasker/internal/app"
)

func main() {
	// .env необязателен, файл есть только в dev-окружении
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	app.Run()
}
