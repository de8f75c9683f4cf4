package dashboard

import (
	"math"
	"time"

	"dreami/internal/analytics"
)

// Provider cost assumptions for the estimate shown on the dashboard.
const (
	gpt4CostPer1KTokens  = 0.03
	whisperCostPerMinute = 0.006
	avgVoiceMinutes      = 2
)

type DailyRow struct {
	Date string `json:"date"`
	analytics.DailyStats
}

// View is the computed dashboard model: current-month summary, the last
// seven days, and derived ratios. Pure computation over store reads.
type View struct {
	CurrentMonth      string            `json:"current_month"`
	Monthly           analytics.Summary `json:"monthly_stats"`
	Daily             []DailyRow        `json:"daily_stats"`
	VoicePercentage   float64           `json:"voice_percentage"`
	TextPercentage    float64           `json:"text_percentage"`
	AvgTokensPerDream float64           `json:"avg_tokens_per_dream"`
	ErrorRate         float64           `json:"error_rate"`
	EstimatedCost     float64           `json:"estimated_cost"`
}

func BuildView(store analytics.Store, now time.Time) View {
	monthly := store.PeriodSummary()

	var daily []DailyRow
	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		if day, ok := store.DailySummary(date); ok {
			daily = append(daily, DailyRow{Date: date, DailyStats: day})
		}
	}

	v := View{
		CurrentMonth: now.Format("January 2006"),
		Monthly:      monthly,
		Daily:        daily,
	}
	if monthly.TotalDreams > 0 {
		v.VoicePercentage = round1(float64(monthly.VoiceMessages) / float64(monthly.TotalDreams) * 100)
		v.TextPercentage = round1(float64(monthly.TextMessages) / float64(monthly.TotalDreams) * 100)
		v.AvgTokensPerDream = round1(float64(monthly.TokensUsed) / float64(monthly.TotalDreams))
		v.ErrorRate = round1(float64(monthly.Errors) / float64(monthly.TotalDreams) * 100)
	}

	gptCost := float64(monthly.TokensUsed) / 1000 * gpt4CostPer1KTokens
	whisperCost := float64(monthly.VoiceMessages) * avgVoiceMinutes * whisperCostPerMinute
	v.EstimatedCost = math.Round((gptCost+whisperCost)*100) / 100

	return v
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
