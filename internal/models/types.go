package models

// NATS request for one chat turn
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	// ManualText carries already-extracted documentation text the caller
	// wants embedded in the prompt; PDF parsing happens upstream.
	ManualText string `json:"manual_text,omitempty"`
}

// NATS response for one chat turn
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Kind      string `json:"kind"` // "conversation", "applied", "warning"
	// RawReply preserves the model's unprocessed reply when a command was
	// extracted but could not be applied, for operator inspection.
	RawReply     string  `json:"raw_reply,omitempty"`
	StateChanged bool    `json:"state_changed"`
	ErrorCode    *string `json:"error_code,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// Kind values
const (
	KindConversation = "conversation"
	KindApplied      = "applied"
	KindWarning      = "warning"
	KindError        = "error"
)

// Error codes
const (
	ErrorOracleFailed = "ORACLE_FAILED"
	ErrorStoreFailed  = "STORE_FAILED"
	ErrorBadRequest   = "BAD_REQUEST"
)

// NATS request on the admin subject
type AdminRequest struct {
	Op        string `json:"op"` // "add_machine", "list" or "reset_session"
	Nome      string `json:"nome,omitempty"`
	Stato     string `json:"stato,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// NATS response on the admin subject
type AdminResponse struct {
	OK bool `json:"ok"`
	// Listing carries the rendered machine listing for the "list" op.
	Listing string `json:"listing,omitempty"`
	Error   string `json:"error,omitempty"`
}
