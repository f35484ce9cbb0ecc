// Package round implements one invitation pass over the pending guests.
package round

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rsvp-bot/internal/greenapi"
	"rsvp-bot/internal/storage"
)

const (
	dateLayout = "2006-01-02"

	// Pause between sends, to stay friendly with provider rate limits.
	sendDelay = 200 * time.Millisecond
)

// Sender delivers a text message to a chat id.
type Sender interface {
	Send(ctx context.Context, chatID, text string) error
}

// Failure records one guest whose send attempt failed during a round.
type Failure struct {
	ChatID string `json:"chat_id"`
	Error  string `json:"error"`
}

// Summary reports the outcome of one round.
type Summary struct {
	RoundID  string    `json:"round_id"`
	Total    int       `json:"total"`
	Pending  int       `json:"pending"`
	Sent     int       `json:"sent"`
	Failures []Failure `json:"failures,omitempty"`
}

// Runner sends the invitation template to every pending guest.
type Runner struct {
	store    storage.GuestStore
	sender   Sender
	template string
	delay    time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewRunner creates a Runner. The template must contain a {name} placeholder
// which is replaced with each guest's full name.
func NewRunner(store storage.GuestStore, sender Sender, template string, log zerolog.Logger) *Runner {
	return &Runner{
		store:    store,
		sender:   sender,
		template: template,
		delay:    sendDelay,
		now:      time.Now,
		log:      log.With().Str("component", "round").Logger(),
	}
}

// Run executes one round: load all guests, send to each pending one, record
// LastSent on success, and save the full set back. A failed send is recorded
// in the summary and never aborts the round; only a store load/save failure
// returns an error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	guests, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RoundID: uuid.New().String(),
		Total:   len(guests),
	}
	log := r.log.With().Str("round_id", summary.RoundID).Logger()

	today := r.now().Format(dateLayout)
	for i := range guests {
		g := &guests[i]
		if !g.Status.Pending() {
			continue
		}
		summary.Pending++

		chatID := greenapi.ChatID(g.Phone)
		msg := strings.ReplaceAll(r.template, "{name}", g.FullName)

		if err := r.sender.Send(ctx, chatID, msg); err != nil {
			summary.Failures = append(summary.Failures, Failure{ChatID: chatID, Error: err.Error()})
			log.Warn().Err(err).Str("chat_id", chatID).Msg("send failed, skipping guest")
			continue
		}

		g.LastSent = today
		summary.Sent++
		log.Info().Str("chat_id", chatID).Str("name", g.FullName).Msg("invitation sent")

		if r.delay > 0 {
			time.Sleep(r.delay)
		}
	}

	if err := r.store.SaveAll(guests); err != nil {
		return nil, err
	}

	log.Info().
		Int("total", summary.Total).
		Int("pending", summary.Pending).
		Int("sent", summary.Sent).
		Int("failed", len(summary.Failures)).
		Msg("round finished")
	return summary, nil
}
