package services

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"assekura/internal/models"
)

// TelegramService pushes a short new-lead notice into the office chat.
// With no token configured it degrades to a no-op.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *logrus.Logger
}

func NewTelegramService(botToken string, chatID int64, logger *logrus.Logger) *TelegramService {
	svc := &TelegramService{chatID: chatID, logger: logger}
	if botToken == "" {
		return svc
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		logger.WithError(err).Warn("telegram bot init failed, notifications disabled")
		return svc
	}
	svc.bot = bot
	return svc
}

func (t *TelegramService) NotifyLead(lead *models.Lead) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return nil
	}
	text := fmt.Sprintf(
		"<b>Neue Anfrage</b> %s\n%s — %s\nTel: %s",
		html.EscapeString(lead.Reference),
		html.EscapeString(lead.Name),
		html.EscapeString(lead.InsuranceType),
		html.EscapeString(lead.Phone),
	)
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
