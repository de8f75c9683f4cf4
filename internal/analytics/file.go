package analytics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// FileStore keeps one JSON document per calendar month under dir,
// named dream_analytics_YYYY_MM.json. The month is always resolved at
// call time, so the store rolls over transparently at month boundaries.
//
// By default concurrent read-modify-write cycles are NOT serialized:
// two overlapping writers race and the last save wins, matching the
// single-writer assumption of the deployment. WithSerializedWrites
// opts into a mutex around each cycle.
type FileStore struct {
	dir        string
	mu         sync.Mutex
	serialized bool
	now        func() time.Time
}

type Option func(*FileStore)

// WithSerializedWrites makes every load→mutate→save cycle atomic with
// respect to other calls on the same store.
func WithSerializedWrites() Option {
	return func(s *FileStore) { s.serialized = true }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure analytics dir: %w", err)
	}
	s := &FileStore{dir: dir, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *FileStore) periodPath() string {
	return filepath.Join(s.dir, "dream_analytics_"+s.now().Format("2006_01")+".json")
}

func (s *FileStore) load() *PeriodData {
	b, err := os.ReadFile(s.periodPath())
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to read analytics file", "path", s.periodPath(), "err", err)
		}
		return newPeriodData()
	}
	data := newPeriodData()
	if err := json.Unmarshal(b, data); err != nil {
		slog.Error("failed to decode analytics file", "path", s.periodPath(), "err", err)
		return newPeriodData()
	}
	if data.Users == nil {
		data.Users = make(map[string]UserUsage)
	}
	if data.Daily == nil {
		data.Daily = make(map[string]DailyStats)
	}
	return data
}

func (s *FileStore) save(data *PeriodData) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		slog.Error("failed to encode analytics data", "err", err)
		return
	}
	if err := os.WriteFile(s.periodPath(), b, 0o644); err != nil {
		slog.Error("failed to save analytics file", "path", s.periodPath(), "err", err)
	}
}

func (s *FileStore) lock() func() {
	if !s.serialized {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *FileStore) RecordInterpretation(userID int64, channel Channel, tokensUsed int) {
	defer s.lock()()
	data := s.load()
	today := s.now().Format("2006-01-02")

	data.TotalDreams++
	data.TokensUsed += tokensUsed
	switch channel {
	case ChannelVoice:
		data.VoiceMessages++
	default:
		data.TextMessages++
	}

	key := strconv.FormatInt(userID, 10)
	user, ok := data.Users[key]
	if !ok {
		user = UserUsage{FirstInteraction: today}
	}
	user.TotalDreams++
	user.LastInteraction = today
	if channel == ChannelVoice {
		user.VoiceMessages++
	} else {
		user.TextMessages++
	}
	data.Users[key] = user

	day := data.Daily[today]
	day.TotalDreams++
	day.TokensUsed += tokensUsed
	if channel == ChannelVoice {
		day.VoiceMessages++
	} else {
		day.TextMessages++
	}
	data.Daily[today] = day

	s.save(data)
}

func (s *FileStore) RecordError(category string) {
	defer s.lock()()
	data := s.load()
	today := s.now().Format("2006-01-02")

	data.Errors++
	day := data.Daily[today]
	day.Errors++
	data.Daily[today] = day

	slog.Warn("recorded error event", "category", category)
	s.save(data)
}

func (s *FileStore) UserUsage(userID int64) UserUsage {
	defer s.lock()()
	data := s.load()
	return data.Users[strconv.FormatInt(userID, 10)]
}

func (s *FileStore) PeriodSummary() Summary {
	defer s.lock()()
	data := s.load()
	return Summary{
		TotalDreams:   data.TotalDreams,
		VoiceMessages: data.VoiceMessages,
		TextMessages:  data.TextMessages,
		TotalUsers:    len(data.Users),
		TokensUsed:    data.TokensUsed,
		Errors:        data.Errors,
	}
}

func (s *FileStore) DailySummary(date string) (DailyStats, bool) {
	defer s.lock()()
	data := s.load()
	day, ok := data.Daily[date]
	return day, ok
}
