package http

import "github.com/Pavel26ru/BruCup/internal/domain"

type UserDTO struct {
	ID        int64  `json:"id" binding:"required"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type MessageRefDTO struct {
	ChatID    int64  `json:"chatId"`
	MessageID string `json:"messageId"`
}

// EventRequest is one chat-transport turn delivered over the webhook.
type EventRequest struct {
	ConversationID string        `json:"conversationId" binding:"required"`
	User           UserDTO       `json:"user" binding:"required"`
	Kind           string        `json:"kind" binding:"required,oneof=command free_text button_press"`
	Payload        string        `json:"payload"`
	Message        MessageRefDTO `json:"message"`
}

type EventResponse struct {
	Text      string          `json:"text"`
	Keyboard  domain.Keyboard `json:"keyboard,omitempty"`
	Alert     bool            `json:"alert,omitempty"`
	Followups []string        `json:"followups,omitempty"`
}
