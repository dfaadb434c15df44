package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService отправляет одностороннее уведомление в настроенный чат.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramService возвращает nil при пустом токене или неудачной
// авторизации: уведомления — побочный канал, без них сервис работает.
func NewTelegramService(token string, chatID int64) *TelegramService {
	if token == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("[tg][init][err] %v", err)
		return nil
	}
	return &TelegramService{bot: bot, chatID: chatID}
}

func (t *TelegramService) SendTaskCreated(title string) error {
	if t == nil || t.bot == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("📌 Создана новая задача: %s", title))
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] %v", err)
		return err
	}
	return nil
}
