package round

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-bot/internal/models"
)

type mockStore struct {
	guests  []models.Guest
	loadErr error
	saveErr error
	saved   []models.Guest
}

func (m *mockStore) LoadAll() ([]models.Guest, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]models.Guest, len(m.guests))
	copy(out, m.guests)
	return out, nil
}

func (m *mockStore) SaveAll(guests []models.Guest) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = guests
	return nil
}

type mockSender struct {
	failFor map[string]error
	sent    []string // chat ids in send order
	texts   []string
}

func (m *mockSender) Send(ctx context.Context, chatID, text string) error {
	if err, ok := m.failFor[chatID]; ok {
		return err
	}
	m.sent = append(m.sent, chatID)
	m.texts = append(m.texts, text)
	return nil
}

func newTestRunner(store *mockStore, sender *mockSender, template string) *Runner {
	r := NewRunner(store, sender, template, zerolog.Nop())
	r.delay = 0
	r.now = func() time.Time { return time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC) }
	return r
}

func TestRunSendsOnlyToPending(t *testing.T) {
	store := &mockStore{guests: []models.Guest{
		{FullName: "A", Phone: "0521111111", Status: models.StatusEmpty},
		{FullName: "B", Phone: "0522222222", Status: models.StatusYes},
		{FullName: "C", Phone: "0523333333", Status: models.StatusNo},
		{FullName: "D", Phone: "0524444444", Status: models.StatusMaybe},
		{FullName: "E", Phone: "0525555555", Status: models.StatusUnknown},
	}}
	sender := &mockSender{}

	summary, err := newTestRunner(store, sender, "hi {name}").Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.Pending)
	assert.Equal(t, 3, summary.Sent)
	assert.Empty(t, summary.Failures)
	assert.NotEmpty(t, summary.RoundID)

	assert.Equal(t, []string{
		"972521111111@c.us",
		"972524444444@c.us",
		"972525555555@c.us",
	}, sender.sent, "pending guests contacted in stored order")
	assert.Equal(t, []string{"hi A", "hi D", "hi E"}, sender.texts)

	require.Len(t, store.saved, 5)
	assert.Equal(t, "2025-09-01", store.saved[0].LastSent)
	assert.Empty(t, store.saved[1].LastSent, "terminal guests are untouched")
	assert.Equal(t, models.StatusEmpty, store.saved[0].Status, "a send never changes status")
}

func TestRunContinuesPastFailures(t *testing.T) {
	store := &mockStore{guests: []models.Guest{
		{FullName: "A", Phone: "0521111111", Status: models.StatusEmpty},
		{FullName: "B", Phone: "0522222222", Status: models.StatusEmpty},
	}}
	sender := &mockSender{failFor: map[string]error{
		"972521111111@c.us": errors.New("provider timeout"),
	}}

	summary, err := newTestRunner(store, sender, "hi {name}").Run(context.Background())
	require.NoError(t, err, "individual send failures never fail the round")

	assert.Equal(t, 2, summary.Pending)
	assert.Equal(t, 1, summary.Sent)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "972521111111@c.us", summary.Failures[0].ChatID)
	assert.Contains(t, summary.Failures[0].Error, "provider timeout")

	require.Len(t, store.saved, 2)
	assert.Empty(t, store.saved[0].LastSent, "failed guest keeps empty LastSent")
	assert.Equal(t, "2025-09-01", store.saved[1].LastSent)
}

func TestRunStoreErrorsAreFatal(t *testing.T) {
	loadErr := errors.New("store unavailable")
	_, err := newTestRunner(&mockStore{loadErr: loadErr}, &mockSender{}, "hi {name}").Run(context.Background())
	assert.ErrorIs(t, err, loadErr)

	saveErr := errors.New("disk full")
	store := &mockStore{
		guests:  []models.Guest{{FullName: "A", Phone: "0521111111"}},
		saveErr: saveErr,
	}
	_, err = newTestRunner(store, &mockSender{}, "hi {name}").Run(context.Background())
	assert.ErrorIs(t, err, saveErr)
}

func TestRunEmptyStore(t *testing.T) {
	store := &mockStore{}
	summary, err := newTestRunner(store, &mockSender{}, "hi {name}").Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Pending)
	assert.Zero(t, summary.Sent)
}
