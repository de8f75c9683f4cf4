package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dreami/internal/analytics"
	"dreami/internal/dreams"
	"dreami/internal/interpreter"
	"dreami/internal/llm"
	"dreami/internal/quota"
)

type fakeSender struct{ sent []string }

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.sent = append(f.sent, m.Text)
	case tgbotapi.EditMessageTextConfig:
		f.sent = append(f.sent, m.Text)
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeLLM struct {
	resp llm.Response
	err  error
}

func (f fakeLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	return f.resp, f.err
}

type fakeStore struct {
	usage map[int64]analytics.UserUsage
	errs  []string
}

func (f *fakeStore) RecordInterpretation(userID int64, channel analytics.Channel, tokensUsed int) {
	u := f.usage[userID]
	u.TotalDreams++
	f.usage[userID] = u
}
func (f *fakeStore) RecordError(category string)                { f.errs = append(f.errs, category) }
func (f *fakeStore) UserUsage(userID int64) analytics.UserUsage { return f.usage[userID] }
func (f *fakeStore) PeriodSummary() analytics.Summary           { return analytics.Summary{} }
func (f *fakeStore) DailySummary(date string) (analytics.DailyStats, bool) {
	return analytics.DailyStats{}, false
}

func newTestBot(client llm.Client, store analytics.Store) (*Bot, *fakeSender) {
	fs := &fakeSender{}
	history := dreams.NewManager()
	policy := quota.New(store)
	interp := interpreter.New(client, history, dreams.NewClassifier(), policy, store, "")
	return &Bot{
		s:       fs,
		interp:  interp,
		history: history,
		quota:   policy,
		store:   store,
	}, fs
}

func userMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func TestStartCommand_SendsWelcome(t *testing.T) {
	b, fs := newTestBot(fakeLLM{}, &fakeStore{usage: map[int64]analytics.UserUsage{}})

	msg := userMessage(1, 100, "/start")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	b.handleIncomingMessage(context.Background(), msg)

	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "Добро пожаловать в Дрими") {
		t.Fatalf("welcome not sent: %+v", fs.sent)
	}
}

func TestProcessDream_SendsInterpretation(t *testing.T) {
	store := &fakeStore{usage: map[int64]analytics.UserUsage{}}
	b, fs := newTestBot(fakeLLM{resp: llm.Response{Content: "толкование сна", TotalTokens: 7}}, store)

	b.handleIncomingMessage(context.Background(), userMessage(1, 100, "мне снился дождь"))

	if len(fs.sent) != 2 {
		t.Fatalf("want processing + interpretation, got %+v", fs.sent)
	}
	if !strings.Contains(fs.sent[0], "Разбираюсь в твоём сне") {
		t.Fatalf("processing notice missing: %q", fs.sent[0])
	}
	out := fs.sent[1]
	if !strings.Contains(out, "толкование сна") || !strings.Contains(out, "Осталось интерпретаций в этом месяце: 19 из 20") {
		t.Fatalf("unexpected reply: %q", out)
	}
}

func TestProcessDream_QuotaExceeded(t *testing.T) {
	store := &fakeStore{usage: map[int64]analytics.UserUsage{
		1: {TotalDreams: quota.MonthlyLimit},
	}}
	b, fs := newTestBot(fakeLLM{resp: llm.Response{Content: "x"}}, store)

	b.handleIncomingMessage(context.Background(), userMessage(1, 100, "ещё сон"))

	last := fs.sent[len(fs.sent)-1]
	if !strings.Contains(last, "месячного лимита") {
		t.Fatalf("limit message missing: %+v", fs.sent)
	}
	if store.usage[1].TotalDreams != quota.MonthlyLimit {
		t.Fatalf("usage changed on rejection")
	}
}

func TestProcessDream_ProviderFailure(t *testing.T) {
	store := &fakeStore{usage: map[int64]analytics.UserUsage{}}
	b, fs := newTestBot(fakeLLM{err: errors.New("api down")}, store)

	b.handleIncomingMessage(context.Background(), userMessage(1, 100, "сон про море"))

	last := fs.sent[len(fs.sent)-1]
	if !strings.Contains(last, "что-то пошло не так") {
		t.Fatalf("failure message missing: %+v", fs.sent)
	}
	if len(store.errs) != 1 {
		t.Fatalf("error not recorded: %+v", store.errs)
	}
}

func TestCallback_StatsCard(t *testing.T) {
	store := &fakeStore{usage: map[int64]analytics.UserUsage{
		5: {TotalDreams: 3, VoiceMessages: 1, TextMessages: 2},
	}}
	b, fs := newTestBot(fakeLLM{}, store)

	cb := &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: 5},
		Data:    cbStats,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 100}},
	}
	b.handleCallback(context.Background(), cb)

	if len(fs.sent) != 1 {
		t.Fatalf("want 1 message, got %+v", fs.sent)
	}
	out := fs.sent[0]
	if !strings.Contains(out, "Доступно интерпретаций: 17 из 20") ||
		!strings.Contains(out, "Голосовых снов: 1") ||
		!strings.Contains(out, "Текстовых снов: 2") {
		t.Fatalf("unexpected stats card: %q", out)
	}
}

func TestCallback_DreamHistoryEmptyAndFull(t *testing.T) {
	store := &fakeStore{usage: map[int64]analytics.UserUsage{}}
	b, fs := newTestBot(fakeLLM{}, store)

	cb := &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: 5},
		Data:    cbDreamHistory,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 100}},
	}
	b.handleCallback(context.Background(), cb)
	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "пока нет сохранённых снов") {
		t.Fatalf("empty history message missing: %+v", fs.sent)
	}

	b.history.Append(5, strings.Repeat("длинный сон ", 30), "толкование")
	fs.sent = nil
	b.handleCallback(context.Background(), cb)
	if len(fs.sent) != 1 {
		t.Fatalf("want 1 history card, got %d", len(fs.sent))
	}
	if !strings.Contains(fs.sent[0], "...") {
		t.Fatalf("long dream not truncated: %q", fs.sent[0])
	}
}
