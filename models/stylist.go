package models

import "time"

// ChatRole identifies who wrote a stylist message
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is one entry of the stylist transcript
type ChatMessage struct {
	Role    ChatRole  `json:"role"`
	Content string    `json:"content"`
	HTML    string    `json:"html,omitempty"` // Rendered markdown for bot replies
	SentAt  time.Time `json:"sentAt"`
}

// StylistMessageRequest example: {"message": "What should I wear to a rooftop party?"}
type StylistMessageRequest struct {
	Message string `json:"message"`
}

// StylistTranscript is the chat drawer view
type StylistTranscript struct {
	Messages []ChatMessage `json:"messages"`
	Pending  bool          `json:"pending"`
}
