package commands

// Error messages
const (
	ErrConfigLoaderUnavailable = "config loader unavailable"
	ErrHistoryStoreUnavailable = "history store unavailable"
	ErrWebhookURLRequired      = "webhook URL required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgHistoryCleared           = "History cleared."
	MsgWebhookDeleted           = "Webhook deleted."
)

// Chat REPL
const (
	chatPrompt     = "> "
	chatReplyLabel = "bot: "
	chatChatID     = 1
	chatUserID     = 1
)

// RedactedToken replaces the bot token in printed configuration.
const RedactedToken = "<redacted>"
