package daily

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/store"
)

// DateFormat is the calendar-day key a challenge is generated under.
const DateFormat = "2006-01-02"

// Bonus multiplier range, [BonusMin, BonusMax).
const (
	BonusMin = 1.5
	BonusMax = 2.5
)

// Challenge is the daily-rotating pairing of one quiz and one puzzle
// with a bonus multiplier. The pairing fields never change for a given
// day; the Done flags record completion of each half.
type Challenge struct {
	Date       string  `json:"date"`
	QuizID     string  `json:"quiz_id"`
	PuzzleID   string  `json:"puzzle_id"`
	Multiplier float64 `json:"multiplier"`
	QuizDone   bool    `json:"quiz_done"`
	PuzzleDone bool    `json:"puzzle_done"`
}

// Service generates and caches one Challenge per calendar day under a
// fixed snapshot key.
type Service struct {
	cat *catalog.Catalog
	kv  store.KV
	log *zap.Logger
	rng *rand.Rand
}

// NewService creates a daily challenge service.
func NewService(cat *catalog.Catalog, kv store.KV, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cat: cat,
		kv:  kv,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Today returns the challenge for the current calendar day, generating
// and persisting a fresh one if none exists yet. Regeneration is a
// no-op while a challenge for today is cached.
func (s *Service) Today(now time.Time) Challenge {
	today := now.Format(DateFormat)

	if cached, ok := s.load(); ok && cached.Date == today {
		return cached
	}

	quizzes := s.cat.Quizzes(catalog.QuizFilter{})
	puzzles := s.cat.Puzzles(catalog.PuzzleFilter{})
	ch := Challenge{
		Date:       today,
		QuizID:     quizzes[s.rng.Intn(len(quizzes))].ID,
		PuzzleID:   puzzles[s.rng.Intn(len(puzzles))].ID,
		Multiplier: BonusMin + s.rng.Float64()*(BonusMax-BonusMin),
	}
	s.persist(ch)
	return ch
}

// MarkQuizDone records completion of the day's quiz half.
func (s *Service) MarkQuizDone(now time.Time) Challenge {
	ch := s.Today(now)
	ch.QuizDone = true
	s.persist(ch)
	return ch
}

// MarkPuzzleDone records completion of the day's puzzle half.
func (s *Service) MarkPuzzleDone(now time.Time) Challenge {
	ch := s.Today(now)
	ch.PuzzleDone = true
	s.persist(ch)
	return ch
}

func (s *Service) load() (Challenge, bool) {
	raw, ok, err := s.kv.Get(context.Background(), store.KeyDailyChallenge)
	if err != nil {
		s.log.Warn("load daily challenge failed", zap.Error(err))
		return Challenge{}, false
	}
	if !ok {
		return Challenge{}, false
	}
	var ch Challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		s.log.Warn("daily challenge snapshot undecodable", zap.Error(err))
		return Challenge{}, false
	}
	return ch, true
}

func (s *Service) persist(ch Challenge) {
	raw, err := json.Marshal(ch)
	if err != nil {
		s.log.Error("marshal daily challenge failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(context.Background(), store.KeyDailyChallenge, raw); err != nil {
		s.log.Warn("persist daily challenge failed", zap.Error(err))
	}
}
