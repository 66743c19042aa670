package services

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskhub/internal/models"
)

// NotifyService pings assignees who linked a Telegram chat. Every send is
// best effort: a nil service or an unlinked user is a silent no-op and a
// delivery failure never fails the request that triggered it.
type NotifyService struct {
	bot *tgbotapi.BotAPI
}

func NewNotifyService(botToken string) *NotifyService {
	if botToken == "" {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[notify] telegram bot init failed: %v", err)
		return nil
	}
	return &NotifyService{bot: bot}
}

func (n *NotifyService) TaskAssigned(user *models.User, task *models.Task, prefix string) {
	if n == nil || user == nil || user.TelegramChatID == 0 {
		return
	}
	text := fmt.Sprintf("%s\n• <b>%s</b>\n• Status: <code>%s</code>\n• Priority: <code>%s</code>\n• Due: <code>%s</code>",
		prefix,
		html.EscapeString(task.Title),
		task.Status,
		task.Priority,
		task.DueDate.Format("2006-01-02 15:04"),
	)
	msg := tgbotapi.NewMessage(user.TelegramChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("[notify] telegram send failed: chat=%d err=%v", user.TelegramChatID, err)
	}
}
