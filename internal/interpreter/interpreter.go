package interpreter

import (
	"context"
	"log/slog"

	"dreami/internal/analytics"
	"dreami/internal/dreams"
	"dreami/internal/llm"
	"dreami/internal/quota"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeQuotaExceeded is a normal terminal outcome, not a failure:
	// no provider call was made and nothing was recorded.
	OutcomeQuotaExceeded
	OutcomeProviderFailure
)

type Result struct {
	Outcome        Outcome
	Interpretation string
	TokensUsed     int
	Remaining      int
	DaysUntilReset int
	IsFollowUp     bool
}

// Service runs the full interpretation flow for one incoming message:
// quota check, context assembly, provider call, history and analytics
// updates.
type Service struct {
	llmClient    llm.Client
	history      *dreams.Manager
	classifier   *dreams.Classifier
	quota        *quota.Policy
	store        analytics.Store
	systemPrompt string
}

func New(llmClient llm.Client, history *dreams.Manager, classifier *dreams.Classifier, policy *quota.Policy, store analytics.Store, systemPrompt string) *Service {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Service{
		llmClient:    llmClient,
		history:      history,
		classifier:   classifier,
		quota:        policy,
		store:        store,
		systemPrompt: systemPrompt,
	}
}

func (s *Service) Interpret(ctx context.Context, userID int64, text string, channel analytics.Channel) Result {
	isFollowUp := s.classifier.IsFollowUp(text)

	if !s.quota.Allow(userID) {
		slog.Info("monthly limit reached", "user_id", userID)
		return Result{
			Outcome:        OutcomeQuotaExceeded,
			DaysUntilReset: s.quota.DaysUntilReset(),
			IsFollowUp:     isFollowUp,
		}
	}

	msgs := s.buildContext(userID, text, isFollowUp)

	resp, err := s.llmClient.Generate(ctx, msgs)
	if err != nil {
		// Single attempt, no automatic retry: record and surface.
		slog.Error("interpretation failed", "user_id", userID, "err", err)
		s.store.RecordError("dream_interpretation")
		return Result{Outcome: OutcomeProviderFailure, IsFollowUp: isFollowUp}
	}

	if !isFollowUp {
		s.history.Append(userID, text, resp.Content)
	}
	s.store.RecordInterpretation(userID, channel, resp.TotalTokens)

	return Result{
		Outcome:        OutcomeOK,
		Interpretation: resp.Content,
		TokensUsed:     resp.TotalTokens,
		Remaining:      s.quota.Remaining(userID),
		DaysUntilReset: s.quota.DaysUntilReset(),
		IsFollowUp:     isFollowUp,
	}
}

// buildContext frames a new dream with a single instruction, or, for a
// follow-up with a prior dream on record, replays the earlier exchange
// before the new question so the model answers in its own context.
func (s *Service) buildContext(userID int64, text string, isFollowUp bool) []llm.Message {
	msgs := []llm.Message{{Role: "system", Content: s.systemPrompt}}
	if isFollowUp {
		if last, ok := s.history.Latest(userID); ok {
			return append(msgs,
				llm.Message{Role: "user", Content: "Вот мой сон: " + last.Dream},
				llm.Message{Role: "assistant", Content: last.Interpretation},
				llm.Message{Role: "user", Content: text},
			)
		}
	}
	return append(msgs, llm.Message{
		Role:    "user",
		Content: "Пожалуйста, помоги разобраться в значении этого сна: " + text,
	})
}
