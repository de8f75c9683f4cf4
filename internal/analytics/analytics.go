package analytics

import "fmt"

// Channel is the modality of an incoming dream, voice or text.
type Channel string

const (
	ChannelVoice Channel = "voice"
	ChannelText  Channel = "text"
)

// UserUsage is one user's accumulated usage inside the current period.
// JSON keys follow the on-disk document layout.
type UserUsage struct {
	TotalDreams      int    `json:"total_dreams"`
	VoiceMessages    int    `json:"voice_messages"`
	TextMessages     int    `json:"text_messages"`
	FirstInteraction string `json:"first_interaction"`
	LastInteraction  string `json:"last_interaction"`
}

// DailyStats is one calendar day's counters inside the current period.
type DailyStats struct {
	TotalDreams   int `json:"total_dreams"`
	VoiceMessages int `json:"voice_messages"`
	TextMessages  int `json:"text_messages"`
	TokensUsed    int `json:"tokens_used"`
	Errors        int `json:"errors"`
}

// PeriodData is the whole persisted document for one calendar month.
// Every mutation is a full load → mutate → save of this document.
type PeriodData struct {
	TotalDreams   int                   `json:"total_dreams"`
	VoiceMessages int                   `json:"voice_messages"`
	TextMessages  int                   `json:"text_messages"`
	Errors        int                   `json:"errors"`
	TokensUsed    int                   `json:"tokens_used"`
	Users         map[string]UserUsage  `json:"user_interactions"`
	Daily         map[string]DailyStats `json:"daily_stats"`
}

func newPeriodData() *PeriodData {
	return &PeriodData{
		Users: make(map[string]UserUsage),
		Daily: make(map[string]DailyStats),
	}
}

// Summary is the aggregate snapshot of the current period.
type Summary struct {
	TotalDreams   int `json:"total_dreams"`
	VoiceMessages int `json:"voice_messages"`
	TextMessages  int `json:"text_messages"`
	TotalUsers    int `json:"total_users"`
	TokensUsed    int `json:"tokens_used"`
	Errors        int `json:"errors"`
}

// Store records usage events and serves aggregate snapshots. Writes are
// best-effort: a failing store must never block an interpretation, so
// implementations log and drop write failures and return zeroed snapshots
// when reads fail.
type Store interface {
	RecordInterpretation(userID int64, channel Channel, tokensUsed int)
	RecordError(category string)
	UserUsage(userID int64) UserUsage
	PeriodSummary() Summary
	DailySummary(date string) (DailyStats, bool)
}

// DigestText renders a day's counters as a short Russian status message
// for the admin chat.
func DigestText(date string, day DailyStats) string {
	return fmt.Sprintf(
		"📊 Статистика за %s:\n\n"+
			"🌟 Всего снов: %d\n"+
			"🗣 Голосовых: %d\n"+
			"✍️ Текстовых: %d\n"+
			"🔢 Токенов: %d\n"+
			"❌ Ошибок: %d",
		date, day.TotalDreams, day.VoiceMessages, day.TextMessages, day.TokensUsed, day.Errors,
	)
}
