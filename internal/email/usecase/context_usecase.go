package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	emaildomain "replydraft-backend/internal/email/domain"
	"replydraft-backend/internal/email/repository"
	"replydraft-backend/pkg/mailaddr"
)

// threadOverfetch gives the budgeter a small margin to drop the oldest items
// without starving the result.
const threadOverfetch = 2

// contextUsecase implements ContextUsecase interface
type contextUsecase struct {
	emailRepo repository.EmailRepository
	defaults  ContextConfig
}

// NewContextUsecase creates a new instance of contextUsecase. The defaults
// apply to every build unless the caller overrides them.
func NewContextUsecase(emailRepo repository.EmailRepository, defaults ContextConfig) ContextUsecase {
	return &contextUsecase{
		emailRepo: emailRepo,
		defaults:  defaults,
	}
}

func (u *contextUsecase) BuildContext(ctx context.Context, userID string, incoming emaildomain.IncomingEmail, overrides *ContextConfig) *emaildomain.EmailContext {
	start := time.Now()
	cfg := mergeConfig(u.defaults, overrides)

	senderEmail := mailaddr.ExtractEmailAddress(incoming.From)
	senderName := mailaddr.ExtractDisplayName(incoming.From)

	// Fire both loaders concurrently; each branch maps its own failure to an
	// empty result so a broken thread fetch cannot take sender context down
	// with it (and vice versa).
	var (
		wg           sync.WaitGroup
		threadEmails []*emaildomain.StoredEmail
		senderEmails []*emaildomain.StoredEmail
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		emails, err := u.loadThreadHistory(ctx, userID, incoming.ThreadID, incoming.MessageID, cfg.MaxThreadEmails)
		if err != nil {
			log.Printf("[ContextBuild] thread history load failed for user %s thread %s: %v", userID, incoming.ThreadID, err)
			return
		}
		threadEmails = emails
	}()
	go func() {
		defer wg.Done()
		emails, err := u.loadSenderHistory(ctx, userID, senderEmail, incoming.MessageID, cfg.SenderLookbackDays, cfg.MaxSenderEmails)
		if err != nil {
			log.Printf("[ContextBuild] sender history load failed for user %s sender %s: %v", userID, senderEmail, err)
			return
		}
		senderEmails = emails
	}()
	wg.Wait()

	// Drop sender emails already surfaced by the thread.
	threadMessageIDs := make(map[string]bool, len(threadEmails))
	for _, email := range threadEmails {
		threadMessageIDs[email.MessageID] = true
	}
	dedupedSender := make([]*emaildomain.StoredEmail, 0, len(senderEmails))
	for _, email := range senderEmails {
		if !threadMessageIDs[email.MessageID] {
			dedupedSender = append(dedupedSender, email)
		}
	}

	var thread *emaildomain.ThreadContext
	if len(threadEmails) > 0 {
		thread = &emaildomain.ThreadContext{
			ThreadID:   incoming.ThreadID,
			EmailCount: len(threadEmails),
			Emails:     toContextEmails(threadEmails),
		}
	}
	var sender *emaildomain.SenderContext
	if len(dedupedSender) > 0 {
		sender = &emaildomain.SenderContext{
			SenderEmail: senderEmail,
			SenderName:  senderName,
			EmailCount:  len(dedupedSender),
			Emails:      toContextEmails(dedupedSender),
		}
	}

	budgeted := applyBudget(thread, sender, cfg)

	return &emaildomain.EmailContext{
		IncomingEmail: incomingToContextEmail(incoming, senderEmail),
		Thread:        budgeted.thread,
		SenderHistory: budgeted.sender,
		Metadata: emaildomain.ContextMetadata{
			ContextBuildTimeMs: time.Since(start).Milliseconds(),
			ThreadEmailsLoaded: len(threadEmails),
			SenderEmailsLoaded: len(dedupedSender),
			TokenEstimate:      budgeted.tokenEstimate,
			Truncated:          budgeted.truncated,
		},
	}
}

// loadThreadHistory fetches the most recent messages of the thread and
// returns them oldest first. An absent thread id short-circuits before any
// query is issued.
func (u *contextUsecase) loadThreadHistory(ctx context.Context, userID, threadID, excludeMessageID string, maxCount int) ([]*emaildomain.StoredEmail, error) {
	if threadID == "" {
		return nil, nil
	}
	emails, err := u.emailRepo.FindEmails(ctx, repository.EmailFilter{
		UserID:           userID,
		ThreadID:         threadID,
		ExcludeMessageID: excludeMessageID,
		OrderDesc:        true,
		Limit:            maxCount + threadOverfetch,
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(emails)-1; i < j; i, j = i+1, j-1 {
		emails[i], emails[j] = emails[j], emails[i]
	}
	return emails, nil
}

// loadSenderHistory fetches recent messages from the sender, newest first,
// within the lookback window. Matching is substring-based because stored from
// fields may retain full `"Name" <addr>` formatting while the key is
// address-only.
func (u *contextUsecase) loadSenderHistory(ctx context.Context, userID, senderEmail, excludeMessageID string, lookbackDays, maxCount int) ([]*emaildomain.StoredEmail, error) {
	cutoff := time.Now().AddDate(0, 0, -lookbackDays)
	return u.emailRepo.FindEmails(ctx, repository.EmailFilter{
		UserID:           userID,
		SenderContains:   senderEmail,
		ExcludeMessageID: excludeMessageID,
		ReceivedAfter:    &cutoff,
		OrderDesc:        true,
		Limit:            maxCount,
	})
}

func toContextEmails(emails []*emaildomain.StoredEmail) []emaildomain.ContextEmail {
	result := make([]emaildomain.ContextEmail, 0, len(emails))
	for _, email := range emails {
		result = append(result, toContextEmail(email))
	}
	return result
}

func toContextEmail(email *emaildomain.StoredEmail) emaildomain.ContextEmail {
	subject := email.Subject
	if subject == "" {
		subject = "(No Subject)"
	}
	return emaildomain.ContextEmail{
		ID:         email.ID,
		MessageID:  email.MessageID,
		From:       email.FromAddress,
		FromEmail:  mailaddr.ExtractEmailAddress(email.FromAddress),
		To:         email.ToAddress,
		Subject:    subject,
		Body:       email.Body,
		Snippet:    email.Snippet,
		ReceivedAt: email.ReceivedAt,
	}
}

func incomingToContextEmail(incoming emaildomain.IncomingEmail, senderEmail string) emaildomain.ContextEmail {
	subject := incoming.Subject
	if subject == "" {
		subject = "(No Subject)"
	}
	return emaildomain.ContextEmail{
		MessageID:      incoming.MessageID,
		From:           incoming.From,
		FromEmail:      senderEmail,
		To:             incoming.To,
		Subject:        subject,
		Body:           incoming.Body,
		Snippet:        incoming.Snippet,
		ReceivedAt:     parseReceivedAt(incoming.ReceivedAt),
		IsCurrentEmail: true,
	}
}

// parseReceivedAt tolerates the timestamp formats providers actually send.
// An unparseable value leaves the record valid, just undated.
func parseReceivedAt(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.RFC1123Z, time.RFC1123} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}
