package domain

import "time"

// IncomingEmail describes the message being replied to. It is not yet
// persisted at context-build time, so it carries no storage id.
type IncomingEmail struct {
	MessageID  string   `json:"message_id"`
	ThreadID   string   `json:"thread_id"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Snippet    string   `json:"snippet"`
	ReceivedAt string   `json:"received_at"`
	Labels     []string `json:"labels"`
}

// ContextEmail is the normalized view of one email inside an assembled
// context window.
type ContextEmail struct {
	ID             string     `json:"id"`
	MessageID      string     `json:"message_id"`
	From           string     `json:"from"`
	FromEmail      string     `json:"from_email"`
	To             string     `json:"to"`
	Subject        string     `json:"subject"`
	Body           string     `json:"body"`
	Snippet        string     `json:"snippet"`
	ReceivedAt     *time.Time `json:"received_at"`
	IsCurrentEmail bool       `json:"is_current_email"`
}

// ThreadContext holds the admitted history of the incoming email's thread,
// ordered oldest first.
type ThreadContext struct {
	ThreadID   string         `json:"thread_id"`
	EmailCount int            `json:"email_count"`
	Emails     []ContextEmail `json:"emails"`
}

// SenderContext holds recent correspondence from the same sender outside the
// thread, ordered newest first.
type SenderContext struct {
	SenderEmail string         `json:"sender_email"`
	SenderName  string         `json:"sender_name"`
	EmailCount  int            `json:"email_count"`
	Emails      []ContextEmail `json:"emails"`
}

// ContextMetadata reports how the build went. ThreadEmailsLoaded and
// SenderEmailsLoaded count the raw, deduplicated sets before truncation so
// callers can tell "how much existed" from "how much survived the budget".
type ContextMetadata struct {
	ContextBuildTimeMs int64 `json:"context_build_time_ms"`
	ThreadEmailsLoaded int   `json:"thread_emails_loaded"`
	SenderEmailsLoaded int   `json:"sender_emails_loaded"`
	TokenEstimate      int   `json:"token_estimate"`
	Truncated          bool  `json:"truncated"`
}

// EmailContext is the assembled context window delivered to the drafting
// agent. Thread and SenderHistory are nil when nothing qualified.
type EmailContext struct {
	IncomingEmail ContextEmail    `json:"incoming_email"`
	Thread        *ThreadContext  `json:"thread"`
	SenderHistory *SenderContext  `json:"sender_history"`
	Metadata      ContextMetadata `json:"metadata"`
}
