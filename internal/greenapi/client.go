package greenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const sendTimeout = 10 * time.Second

// Client sends text messages through the Green API REST endpoint for a
// single WhatsApp instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for the instance identified by accountID,
// authenticated with token.
func NewClient(accountID, token string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: fmt.Sprintf("https://api.green-api.com/waInstance%s", accountID),
		token:   token,
		http:    &http.Client{Timeout: sendTimeout},
		log:     log.With().Str("component", "greenapi").Logger(),
	}
}

// SendError reports a failed message delivery for a single chat.
type SendError struct {
	ChatID     string
	StatusCode int // 0 when the request never got a response
	Message    string
}

func (e *SendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("send to %s: provider returned %d: %s", e.ChatID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("send to %s: %s", e.ChatID, e.Message)
}

type sendRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// Send delivers a single text message to chatID. A non-2xx provider
// response or a transport failure (including timeout) returns a *SendError.
func (c *Client) Send(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendRequest{ChatID: chatID, Message: text})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/sendMessage/%s", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SendError{ChatID: chatID, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &SendError{
			ChatID:     chatID,
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	c.log.Debug().Str("chat_id", chatID).Msg("message sent")
	return nil
}
