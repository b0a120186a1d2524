package notify

import (
	"context"
	"fmt"
	"os"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"strat_bot/internal/modules/config"
	"strat_bot/pkg/logger"
)

type Notifier interface {
	SendText(ctx context.Context, msg string) error
	SendFile(ctx context.Context, path, caption string) error
}

// New returns the Telegram notifier when a token and chat id are configured,
// otherwise one that only logs.
func New(cfg *config.Config) (Notifier, error) {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		logger.Info("telegram is not configured, notifications go to the log")
		return Stdout{}, nil
	}
	return NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
}

// Telegram sends messages and files to one chat.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return NewTelegramWithBot(b, chatID), nil
}

func NewTelegramWithBot(bot *tgbot.BotAPI, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

func (t *Telegram) SendText(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		return fmt.Errorf("telegram send message: %w", err)
	}
	return nil
}

func (t *Telegram) SendFile(ctx context.Context, path, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("telegram send file: %w", err)
	}
	doc := tgbot.NewDocument(t.chatID, tgbot.FilePath(path))
	doc.Caption = caption
	if _, err := t.bot.Send(doc); err != nil {
		return fmt.Errorf("telegram send file %s: %w", path, err)
	}
	return nil
}

// Stdout writes notifications to the service log.
type Stdout struct{}

func (Stdout) SendText(_ context.Context, msg string) error {
	logger.Info("[NOTIFY] %s", msg)
	return nil
}

func (Stdout) SendFile(_ context.Context, path, caption string) error {
	logger.Info("[NOTIFY] file %s: %s", path, caption)
	return nil
}
