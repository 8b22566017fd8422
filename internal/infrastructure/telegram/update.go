package telegram

import "github.com/doeshing/minebot/internal/domain"

// Update is the subset of a Bot API update the bot reacts to.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is an incoming chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Inbound converts the update into a controller message. Updates without
// a text message are not for the controller.
func (u Update) Inbound() (domain.InboundMessage, bool) {
	if u.Message == nil || u.Message.Text == "" {
		return domain.InboundMessage{}, false
	}
	msg := domain.InboundMessage{
		ChatID: u.Message.Chat.ID,
		Text:   u.Message.Text,
	}
	if u.Message.From != nil {
		msg.UserID = u.Message.From.ID
	}
	return msg, true
}
