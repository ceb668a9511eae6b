package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftwork/attendance-bot-go/internal/handler/chat"
	"github.com/shiftwork/attendance-bot-go/internal/handler/http/response"
)

// WebhookHandler receives the chat platform's event envelope and feeds
// each text event through the dialog handler. Replies are returned in
// the response body; non-text events are ignored.
type WebhookHandler struct {
	chat *chat.Handler
}

func NewWebhookHandler(chatHandler *chat.Handler) WebhookHandler {
	return WebhookHandler{chat: chatHandler}
}

type webhookEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type webhookEnvelope struct {
	Events []webhookEvent `json:"events"`
}

type webhookReply struct {
	UserID       string   `json:"user_id"`
	Text         string   `json:"text"`
	QuickReplies []string `json:"quick_replies,omitempty"`
}

func (h WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var envelope webhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		response.BadRequest(w, "Invalid webhook payload", nil)
		return
	}

	replies := make([]webhookReply, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		if event.Type != "" && event.Type != "message" {
			continue
		}
		if event.UserID == "" {
			continue
		}

		reply := h.chat.Handle(r.Context(), chat.Event{UserID: event.UserID, Text: event.Text})
		replies = append(replies, webhookReply{
			UserID:       event.UserID,
			Text:         reply.Text,
			QuickReplies: reply.QuickReplies,
		})
	}

	response.Success(w, map[string]interface{}{"replies": replies})
}
