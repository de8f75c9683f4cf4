package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dreami/internal/analytics"
	"dreami/internal/dreams"
	"dreami/internal/interpreter"
	"dreami/internal/llm"
	"dreami/internal/quota"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	interp      *interpreter.Service
	transcriber llm.Transcriber
	history     *dreams.Manager
	quota       *quota.Policy
	store       analytics.Store
	adminUserID int64
}

func New(
	botToken string,
	interp *interpreter.Service,
	transcriber llm.Transcriber,
	history *dreams.Manager,
	policy *quota.Policy,
	store analytics.Store,
	adminUserID int64,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		interp:      interp,
		transcriber: transcriber,
		history:     history,
		quota:       policy,
		store:       store,
		adminUserID: adminUserID,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	slog.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				// One in-flight task per incoming message.
				go b.handleIncomingMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				go b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

// SendToAdmin delivers a service message to the admin chat, if configured.
func (b *Bot) SendToAdmin(text string) {
	if b.adminUserID == 0 {
		return
	}
	b.sendMessage(b.adminUserID, text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		slog.Error("failed to send message", "chat_id", chatID, "err", err)
	}
}

func (b *Bot) sendWithMarkup(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.s.Send(msg); err != nil {
		slog.Error("failed to send message", "chat_id", chatID, "err", err)
	}
}
