package usecase

import (
	"context"

	emaildomain "replydraft-backend/internal/email/domain"
)

// ContextUsecase assembles bounded context windows for the drafting agent.
type ContextUsecase interface {
	// BuildContext gathers thread and sender history for the incoming email
	// and fits it to the token budget. It always returns a well-formed
	// EmailContext: loader failures degrade to empty sections, never errors.
	BuildContext(ctx context.Context, userID string, incoming emaildomain.IncomingEmail, overrides *ContextConfig) *emaildomain.EmailContext
	// FormatForPrompt renders an assembled context into the plain-text block
	// injected into the agent prompt
	FormatForPrompt(emailCtx *emaildomain.EmailContext) string
	// IngestRawEmail parses a raw RFC822 message and stores it for the user.
	// Returns the stored record, or the existing one when the message id was
	// already ingested.
	IngestRawEmail(ctx context.Context, userID string, raw []byte) (*emaildomain.StoredEmail, error)
}
