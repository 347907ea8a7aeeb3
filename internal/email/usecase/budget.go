package usecase

import (
	"fmt"
	"sort"
	"time"

	emaildomain "replydraft-backend/internal/email/domain"
	"replydraft-backend/pkg/tokens"
)

// Fixed sub-budgets carved out of the total. These are intentionally NOT
// derived from the configured TotalTokenBudget: only the sender branch
// responds to a smaller total, through the remaining-budget check below.
const (
	threadTokenBudget = 5000
	senderTokenBudget = 2000
	promptReserve     = 1000
)

// budgetResult is what applyBudget hands back to the assembler.
type budgetResult struct {
	thread        *emaildomain.ThreadContext
	sender        *emaildomain.SenderContext
	tokenEstimate int
	truncated     bool
}

// estimateEmailTokens prices one email the way it will roughly appear in the
// rendered prompt: a From line, a Subject line, and the body (or snippet).
func estimateEmailTokens(email emaildomain.ContextEmail) int {
	content := email.Body
	if content == "" {
		content = email.Snippet
	}
	rendered := fmt.Sprintf("From: %s\nSubject: %s\n%s", email.From, email.Subject, content)
	return tokens.Estimate(rendered)
}

// applyBudget truncates the raw thread and sender sets to fit their token
// budgets. Thread context always has priority: sender content only gets
// whatever remains of the total after the thread and the prompt reserve.
// Sender emails must already be deduplicated against the thread set.
func applyBudget(thread *emaildomain.ThreadContext, sender *emaildomain.SenderContext, cfg ContextConfig) budgetResult {
	result := budgetResult{}

	threadTokens := 0
	if thread != nil && len(thread.Emails) > 0 {
		// Walk newest to oldest so recency wins, then restore chronology:
		// truncation changes membership, never display order.
		admitted := make([]emaildomain.ContextEmail, 0, len(thread.Emails))
		for i := len(thread.Emails) - 1; i >= 0; i-- {
			cost := estimateEmailTokens(thread.Emails[i])
			if threadTokens+cost > threadTokenBudget {
				result.truncated = true
				continue
			}
			threadTokens += cost
			admitted = append(admitted, thread.Emails[i])
		}
		if len(admitted) > 0 {
			sort.SliceStable(admitted, func(i, j int) bool {
				return receivedBefore(admitted[i].ReceivedAt, admitted[j].ReceivedAt)
			})
			result.thread = &emaildomain.ThreadContext{
				ThreadID:   thread.ThreadID,
				EmailCount: len(admitted),
				Emails:     admitted,
			}
		}
	}

	senderTokens := 0
	if sender != nil && len(sender.Emails) > 0 {
		remaining := cfg.TotalTokenBudget - threadTokens - promptReserve
		if remaining <= 0 {
			// Thread ate the budget; the whole sender context is dropped.
			result.truncated = true
		} else {
			branchBudget := senderTokenBudget
			if remaining < branchBudget {
				branchBudget = remaining
			}
			// First-fit in received order, no backtracking.
			admitted := make([]emaildomain.ContextEmail, 0, len(sender.Emails))
			for _, email := range sender.Emails {
				cost := estimateEmailTokens(email)
				if senderTokens+cost > branchBudget {
					result.truncated = true
					break
				}
				senderTokens += cost
				admitted = append(admitted, email)
			}
			if len(admitted) > 0 {
				result.sender = &emaildomain.SenderContext{
					SenderEmail: sender.SenderEmail,
					SenderName:  sender.SenderName,
					EmailCount:  len(admitted),
					Emails:      admitted,
				}
			}
		}
	}

	result.tokenEstimate = threadTokens + senderTokens
	return result
}

// receivedBefore orders two nullable timestamps; nil sorts first so undated
// emails keep their fetched position at the front of the chronology.
func receivedBefore(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}
