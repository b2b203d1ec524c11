package notifier

import (
	"fmt"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	bot    *tgbot.BotAPI
	chatID int64
}

// NewTelegramNotifier authenticates the bot and returns a send-only notifier.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &TelegramNotifier{bot: b, chatID: chatID}, nil
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Send delivers a message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
