// Package notify delivers formatted review notifications to a Slack
// incoming webhook. Transient failures are retryable; a rejected payload
// is permanent and reported as ErrRejected.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrRejected indicates the sink refused the message (malformed payload,
// dead webhook). Retrying the same message can't succeed.
var ErrRejected = errors.New("notification rejected by sink")

// Message is one Slack webhook payload
type Message struct {
	Channel     string       `json:"channel,omitempty"`
	Username    string       `json:"username,omitempty"`
	IconEmoji   string       `json:"icon_emoji,omitempty"`
	IconURL     string       `json:"icon_url,omitempty"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a Slack message attachment
type Attachment struct {
	Color     string `json:"color,omitempty"`
	Title     string `json:"title,omitempty"`
	TitleLink string `json:"title_link,omitempty"`
	Text      string `json:"text,omitempty"`
	Footer    string `json:"footer,omitempty"`
	Timestamp int64  `json:"ts,omitempty"`
}

// Client posts messages to a single Slack incoming webhook
type Client struct {
	hook   string
	client *http.Client
}

// NewClient creates a Slack webhook client
func NewClient(hook string, timeout time.Duration) *Client {
	return &Client{
		hook: hook,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send delivers one message. Returns ErrRejected (wrapped) for permanent
// failures and a plain error for transient ones.
func (c *Client) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w: %w", ErrRejected, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.hook, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	reason := strings.TrimSpace(string(body))

	// slack answers client errors (invalid_payload, channel_not_found...)
	// with 4xx; those won't succeed on retry. 429 is the exception.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return fmt.Errorf("webhook returned %d (%s): %w", resp.StatusCode, reason, ErrRejected)
	}

	return fmt.Errorf("webhook returned %d (%s)", resp.StatusCode, reason)
}
