package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"
)

// Config for the chat platform's push endpoint. The platform issues
// short-lived channel access tokens via OAuth2 client credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	PushURL      string
}

// Client sends push messages to chat users. The oauth2 transport caches
// and refreshes the channel token transparently.
type Client struct {
	httpClient *http.Client
	pushURL    string
}

func NewClient(ctx context.Context, cfg Config) *Client {
	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	return &Client{
		httpClient: creds.Client(ctx),
		pushURL:    cfg.PushURL,
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Push sends one text message to a chat user.
func (c *Client) Push(ctx context.Context, chatUserID, text string) error {
	body, err := json.Marshal(pushRequest{
		To:       chatUserID,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
