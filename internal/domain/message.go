package domain

import "strings"

// InboundMessage is a text message received from the chat transport.
type InboundMessage struct {
	ChatID int64
	UserID int64
	Text   string
}

// SessionKey returns the conversation key the message belongs to.
func (m InboundMessage) SessionKey() SessionKey {
	return NewSessionKey(m.UserID, m.ChatID)
}

// Command splits a bot command into its name and argument list.
// "/predict@SomeBot 5" yields ("predict", ["5"], true). Text that does not
// start with a slash is not a command.
func (m InboundMessage) Command() (name string, args []string, ok bool) {
	fields := strings.Fields(m.Text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}
	name = strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return "", nil, false
	}
	return strings.ToLower(name), fields[1:], true
}
