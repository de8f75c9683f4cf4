package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dreami/internal/analytics"
	"dreami/internal/interpreter"
	"dreami/internal/quota"
)

const (
	cbDreamHistory = "dream_history"
	cbStats        = "stats"
	cbHelp         = "help"
	cbShowDream    = "show_dream_"
	cbAskFollowUp  = "ask_followup_"
)

const (
	processingText = "🤔 Разбираюсь в твоём сне… Дай мне секундочку! 😊"
	failureText    = "❌ Ой, что-то пошло не так при обработке… Попробуй отправить сон в виде текста!"
)

func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 История снов", cbDreamHistory),
			tgbotapi.NewInlineKeyboardButtonData("📊 Моя статистика", cbStats),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Помощь", cbHelp),
		),
	)
}

func interpretationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 История снов", cbDreamHistory),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Моя статистика", cbStats),
		),
	)
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}
	if msg.Voice != nil {
		b.handleVoice(ctx, msg)
		return
	}
	if msg.Text != "" {
		b.processDream(ctx, msg, msg.Text, analytics.ChannelText)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		welcome := "👋 Добро пожаловать в Дрими — бота для толкования снов!\n\n" +
			"Я помогу тебе разобраться в значении твоего сна.\n" +
			"Ты можешь:\n" +
			"🗣 Отправить мне голосовое сообщение с описанием сна\n" +
			"✍️ Написать свой сон текстом\n\n" +
			"Я проанализирую его и расскажу, что он может значить. 🌙✨"
		b.sendWithMarkup(msg.Chat.ID, welcome, mainKeyboard())
	case "help":
		b.sendMessage(msg.Chat.ID, "🤔 Есть вопросы по работе бота или предложения по улучшению?\n\n"+
			"Напиши создателю бота — @ArtemyPak\n"+
			"Буду рад обратной связи! ✨")
	}
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, processingText)

	text, err := b.downloadAndTranscribe(ctx, msg.Voice.FileID, msg.From.ID)
	if err != nil {
		slog.Error("failed to process voice message", "user_id", msg.From.ID, "err", err)
		b.store.RecordError("voice_processing")
		b.sendMessage(msg.Chat.ID, failureText)
		return
	}

	b.processDream(ctx, msg, text, analytics.ChannelVoice)
}

func (b *Bot) downloadAndTranscribe(ctx context.Context, fileID string, userID int64) (string, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("resolve voice file: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("download voice file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	path := filepath.Join(os.TempDir(), fmt.Sprintf("temp_voice_%d.ogg", userID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp voice file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write temp voice file: %w", err)
	}
	_ = f.Close()
	defer func() { _ = os.Remove(path) }()

	return b.transcriber.Transcribe(ctx, path)
}

func (b *Bot) processDream(ctx context.Context, msg *tgbotapi.Message, dreamText string, channel analytics.Channel) {
	userID := msg.From.ID

	processing, err := b.s.Send(tgbotapi.NewMessage(msg.Chat.ID, processingText))
	if err != nil {
		slog.Error("failed to send processing notice", "chat_id", msg.Chat.ID, "err", err)
	}

	res := b.interp.Interpret(ctx, userID, dreamText, channel)

	switch res.Outcome {
	case interpreter.OutcomeQuotaExceeded:
		b.editOrSend(msg.Chat.ID, processing.MessageID, fmt.Sprintf(
			"🌙 Вы достигли месячного лимита интерпретаций (%d снов).\n"+
				"Новые интерпретации будут доступны через %d дней.\n\n"+
				"Спасибо, что пользуетесь ботом! ✨",
			quota.MonthlyLimit, res.DaysUntilReset))
	case interpreter.OutcomeProviderFailure:
		b.editOrSend(msg.Chat.ID, processing.MessageID, failureText)
	default:
		date := time.Now().Format("02.01.2006")
		final := fmt.Sprintf(
			"✨ Толкование сна (%s):\n\n%s\n\n"+
				"Осталось интерпретаций в этом месяце: %d из %d\n\n"+
				"💭 Хочешь разобраться в каком-то моменте толкования подробнее? Спрашивай, я помогу! 😊",
			date, res.Interpretation, res.Remaining, quota.MonthlyLimit)

		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, processing.MessageID, final)
		kb := interpretationKeyboard()
		edit.ReplyMarkup = &kb
		if _, err := b.s.Send(edit); err != nil {
			slog.Error("failed to send interpretation", "chat_id", msg.Chat.ID, "err", err)
			b.sendWithMarkup(msg.Chat.ID, final, kb)
		}
	}
}

func (b *Bot) editOrSend(chatID int64, messageID int, text string) {
	if messageID != 0 {
		if _, err := b.s.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err == nil {
			return
		}
	}
	b.sendMessage(chatID, text)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Clear the loading state on the pressed button.
	if _, err := b.s.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		slog.Warn("failed to answer callback", "err", err)
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	switch {
	case cb.Data == cbDreamHistory:
		b.showDreamHistory(chatID, userID)
	case strings.HasPrefix(cb.Data, cbShowDream):
		b.showFullDream(chatID, userID, cb.Data)
	case strings.HasPrefix(cb.Data, cbAskFollowUp):
		b.sendMessage(chatID,
			"💭 Задайте свой вопрос об этом сне, и я постараюсь дать более подробное толкование.\n\n"+
				"Например:\n"+
				"• Что символизирует [определенный символ]?\n"+
				"• Почему во сне появился [элемент сна]?\n"+
				"• Можешь объяснить значение [часть сна]?")
	case cb.Data == cbStats:
		b.showStats(chatID, userID)
	case cb.Data == cbHelp:
		b.sendMessage(chatID,
			"🤔 Как пользоваться ботом:\n\n"+
				"1️⃣ Отправьте текстовое или голосовое сообщение с описанием вашего сна\n"+
				"2️⃣ Дождитесь интерпретации\n"+
				"3️⃣ Задавайте уточняющие вопросы\n\n"+
				"📝 Рекомендации:\n"+
				"• Описывайте сон подробно\n"+
				"• Включайте детали и эмоции\n"+
				"• Задавайте вопросы о конкретных символах\n\n"+
				"❓ Есть вопросы? Напишите создателю бота — @ArtemyPak")
	}
}

func (b *Bot) showDreamHistory(chatID, userID int64) {
	records := b.history.All(userID)
	if len(records) == 0 {
		b.sendMessage(chatID,
			"У вас пока нет сохранённых снов. Расскажите мне свой сон, "+
				"и я помогу вам разобраться в его значении! 🌙")
		return
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		text := fmt.Sprintf("🌟 %s\n\n💭 Ваш сон:\n%s\n\n✨ Толкование:\n%s",
			rec.CreatedAt.Format("02.01.2006"), preview(rec.Dream), preview(rec.Interpretation))
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📖 Показать полностью", cbShowDream+strconv.Itoa(rec.ID)),
			),
		)
		b.sendWithMarkup(chatID, text, kb)
	}
}

func (b *Bot) showFullDream(chatID, userID int64, data string) {
	id, err := strconv.Atoi(strings.TrimPrefix(data, cbShowDream))
	if err != nil {
		return
	}
	rec, ok := b.history.Get(userID, id)
	if !ok {
		return
	}
	text := fmt.Sprintf("🌟 %s\n\n💭 Ваш сон:\n%s\n\n✨ Полное толкование:\n%s",
		rec.CreatedAt.Format("02.01.2006"), rec.Dream, rec.Interpretation)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Задать уточняющий вопрос", cbAskFollowUp+strconv.Itoa(rec.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Вернуться к истории снов", cbDreamHistory),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Моя статистика", cbStats),
		),
	)
	b.sendWithMarkup(chatID, text, kb)
}

func (b *Bot) showStats(chatID, userID int64) {
	usage := b.store.UserUsage(userID)
	text := fmt.Sprintf(
		"📊 Ваша статистика:\n\n"+
			"🎯 Доступно интерпретаций: %d из %d\n"+
			"🗣 Голосовых снов: %d\n"+
			"✍️ Текстовых снов: %d\n"+
			"🌟 Всего снов: %d\n\n"+
			"ℹ️ Лимит обновится через %d дней",
		b.quota.Remaining(userID), quota.MonthlyLimit,
		usage.VoiceMessages, usage.TextMessages, usage.TotalDreams,
		b.quota.DaysUntilReset())
	b.sendMessage(chatID, text)
}

func preview(s string) string {
	const max = 150
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
