// Package reminder runs the periodic due-card digest: an hourly sweep
// that logs how many cards are waiting in each deck so an external
// notifier can pick the summary up from the log stream.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/studystack/studystack-api/internal/store"
)

// Digest owns the scheduler for the due-card sweep.
type Digest struct {
	decks     store.DeckStore
	scheduler *gocron.Scheduler
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// NewDigest creates the digest sweep. Call Start to begin scheduling.
func NewDigest(decks store.DeckStore, log *slog.Logger) *Digest {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Digest{
		decks:     decks,
		scheduler: gocron.NewScheduler(time.UTC),
		logger:    log.With(slog.String("component", "due_digest")),
		timeFunc:  func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the hourly sweep and runs it once immediately so a
// fresh boot reports its backlog without waiting an hour.
func (d *Digest) Start() error {
	if _, err := d.scheduler.Every(1).Hour().Do(d.sweep); err != nil {
		return err
	}

	d.scheduler.StartAsync()
	d.sweep()
	return nil
}

// Stop halts the scheduler. Safe to call more than once.
func (d *Digest) Stop() {
	d.scheduler.Stop()
}

// sweep counts due cards per deck and logs the digest.
func (d *Digest) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	decks, err := d.decks.List(ctx)
	if err != nil {
		d.logger.Error("due digest sweep failed", slog.String("error", err.Error()))
		return
	}

	now := d.timeFunc()
	totalDue := 0
	for _, deck := range decks {
		due := len(deck.DueCards(now))
		if due == 0 {
			continue
		}
		totalDue += due
		d.logger.Info("cards due for review",
			slog.String("deck_id", deck.ID.String()),
			slog.String("deck_name", deck.Name),
			slog.Int("due", due))
	}

	d.logger.Info("due digest complete",
		slog.Int("decks", len(decks)),
		slog.Int("total_due", totalDue))
}
