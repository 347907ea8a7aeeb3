package dto

import (
	emaildomain "replydraft-backend/internal/email/domain"
)

type BuildContextRequest struct {
	Email  emaildomain.IncomingEmail `json:"email" binding:"required"`
	Config *ContextOverrides         `json:"config"`
}

// ContextOverrides carries per-request limit overrides. Omitted fields fall
// back to the server defaults.
type ContextOverrides struct {
	MaxThreadEmails    int `json:"max_thread_emails"`
	MaxSenderEmails    int `json:"max_sender_emails"`
	SenderLookbackDays int `json:"sender_lookback_days"`
	TotalTokenBudget   int `json:"total_token_budget"`
}

type PromptContextResponse struct {
	Prompt   string                      `json:"prompt"`
	Metadata emaildomain.ContextMetadata `json:"metadata"`
}

type IngestEmailRequest struct {
	Raw string `json:"raw" binding:"required"`
}

type IngestEmailResponse struct {
	ID        string  `json:"id"`
	MessageID string  `json:"message_id"`
	ThreadID  *string `json:"thread_id"`
	Subject   string  `json:"subject"`
}
