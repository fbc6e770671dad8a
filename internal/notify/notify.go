package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nmehta/noggin/internal/store"
)

// Reminder is a best-effort, locally scheduled notification. Reminders
// surface as a home screen banner once due; there is no OS integration.
type Reminder struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Scheduler schedules and drains reminders. Callers treat it as
// fire-and-forget: a failure is logged by the caller and never affects
// session logic.
type Scheduler interface {
	// Schedule registers a reminder, replacing any existing reminder
	// with the same ID.
	Schedule(ctx context.Context, r Reminder) error
	// Due returns reminders whose time has passed and removes them.
	Due(ctx context.Context, now time.Time) ([]Reminder, error)
}

// KVScheduler persists the reminder list wholesale under a single key,
// with the same overwrite-on-update degradation rules as the providers.
type KVScheduler struct {
	kv store.KV
}

// NewKVScheduler creates a Scheduler backed by the given KV.
func NewKVScheduler(kv store.KV) *KVScheduler {
	return &KVScheduler{kv: kv}
}

func (s *KVScheduler) Schedule(ctx context.Context, r Reminder) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range list {
		if list[i].ID == r.ID {
			list[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, r)
	}
	return s.save(ctx, list)
}

func (s *KVScheduler) Due(ctx context.Context, now time.Time) ([]Reminder, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var due, pending []Reminder
	for _, r := range list {
		if !r.At.After(now) {
			due = append(due, r)
		} else {
			pending = append(pending, r)
		}
	}
	if len(due) == 0 {
		return nil, nil
	}
	if err := s.save(ctx, pending); err != nil {
		return nil, err
	}
	return due, nil
}

func (s *KVScheduler) load(ctx context.Context) ([]Reminder, error) {
	raw, ok, err := s.kv.Get(ctx, store.KeyReminders)
	if err != nil {
		return nil, fmt.Errorf("load reminders: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var list []Reminder
	if err := json.Unmarshal(raw, &list); err != nil {
		// Undecodable snapshot degrades to an empty list.
		return nil, nil
	}
	return list, nil
}

func (s *KVScheduler) save(ctx context.Context, list []Reminder) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal reminders: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyReminders, raw); err != nil {
		return fmt.Errorf("save reminders: %w", err)
	}
	return nil
}

// Nop is a Scheduler that does nothing, for tests and headless commands.
type Nop struct{}

func (Nop) Schedule(context.Context, Reminder) error           { return nil }
func (Nop) Due(context.Context, time.Time) ([]Reminder, error) { return nil, nil }
