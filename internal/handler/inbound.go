// Package handler processes inbound webhook events from the messaging
// provider and reconciles guest RSVP status.
package handler

import (
	"time"

	"github.com/rs/zerolog"

	"rsvp-bot/internal/classify"
	"rsvp-bot/internal/greenapi"
	"rsvp-bot/internal/storage"
)

const (
	answeredAtLayout = "2006-01-02 15:04"

	typeIncomingMessage = "incomingMessageReceived"
)

// Result tells the transport boundary how to answer the provider.
type Result string

const (
	ResultOK      Result = "ok"
	ResultIgnored Result = "ignored"
	ResultError   Result = "error"
)

// WebhookEvent is the Green API notification envelope.
type WebhookEvent struct {
	Body *EventBody `json:"body"`
}

// EventBody carries one notification. Only incoming text messages are acted
// on; SenderData and MessageData are pointers so missing payload sections
// are distinguishable from empty ones.
type EventBody struct {
	TypeWebhook string       `json:"typeWebhook"`
	SenderData  *SenderData  `json:"senderData"`
	MessageData *MessageData `json:"messageData"`
}

type SenderData struct {
	ChatID string `json:"chatId"`
}

type MessageData struct {
	TextMessageData *TextMessageData `json:"textMessageData"`
}

type TextMessageData struct {
	TextMessage string `json:"textMessage"`
}

// InboundHandler applies inbound replies to the guest store.
type InboundHandler struct {
	store storage.GuestStore
	now   func() time.Time
	log   zerolog.Logger
}

// NewInboundHandler creates an InboundHandler backed by store.
func NewInboundHandler(store storage.GuestStore, log zerolog.Logger) *InboundHandler {
	return &InboundHandler{
		store: store,
		now:   time.Now,
		log:   log.With().Str("component", "inbound").Logger(),
	}
}

// HandleInbound processes one webhook event. Events without the expected
// envelope or with a non-message type are ignored without mutation. A
// recognized sender gets its status overwritten with the classified
// decision; an unrecognized sender is logged and the store is left
// untouched.
func (h *InboundHandler) HandleInbound(evt *WebhookEvent) Result {
	if evt == nil || evt.Body == nil {
		return ResultIgnored
	}
	if evt.Body.TypeWebhook != typeIncomingMessage {
		return ResultIgnored
	}

	if evt.Body.SenderData == nil || evt.Body.SenderData.ChatID == "" ||
		evt.Body.MessageData == nil || evt.Body.MessageData.TextMessageData == nil {
		h.log.Error().Str("type", evt.Body.TypeWebhook).Msg("malformed incoming message payload")
		return ResultError
	}

	sender := evt.Body.SenderData.ChatID
	text := evt.Body.MessageData.TextMessageData.TextMessage
	decision := classify.Reply(text)

	guests, err := h.store.LoadAll()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load guests")
		return ResultError
	}

	for i := range guests {
		if greenapi.ChatID(guests[i].Phone) != sender {
			continue
		}

		guests[i].Status = decision
		guests[i].AnsweredAt = h.now().Format(answeredAtLayout)

		if err := h.store.SaveAll(guests); err != nil {
			h.log.Error().Err(err).Msg("failed to save guests")
			return ResultError
		}

		h.log.Info().
			Str("chat_id", sender).
			Str("decision", string(decision)).
			Msg("guest reply recorded")
		return ResultOK
	}

	h.log.Info().Str("chat_id", sender).Msg("reply from unknown sender, ignoring")
	return ResultOK
}
