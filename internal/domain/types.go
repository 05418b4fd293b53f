package domain

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is a single message in a chat conversation.
// Turns arrive from the client each request; the server keeps no
// conversation state of its own.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ModelReply is the result of a single model invocation. It is produced
// per call and never persisted.
type ModelReply struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// HistoryLimit is the maximum number of prior turns forwarded to the
// model. Older turns are dropped, not summarized.
const HistoryLimit = 10

// CapHistory returns the most recent HistoryLimit turns of history.
// The input slice is not modified.
func CapHistory(history []ConversationTurn) []ConversationTurn {
	if len(history) <= HistoryLimit {
		return history
	}
	return history[len(history)-HistoryLimit:]
}

// NormalizeRole maps arbitrary client-supplied role strings onto the two
// roles the model API accepts. Anything that is not "user" is forwarded
// as "assistant".
func NormalizeRole(raw string) Role {
	if raw == string(RoleUser) {
		return RoleUser
	}
	return RoleAssistant
}
