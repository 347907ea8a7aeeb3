package usecase

import (
	"fmt"
	"strings"
	"time"

	emaildomain "replydraft-backend/internal/email/domain"
)

// Section markers are part of the contract: agent prompt templates may match
// them literally.
const (
	ThreadSectionMarker = "=== THREAD HISTORY ==="
	SenderSectionMarker = "=== OTHER EMAILS FROM THIS SENDER ==="

	firstTimeSenderNotice = "Note: This appears to be the first email from this sender. No prior conversation history is available."
)

// senderPreviewLimit and senderPreviewChars bound the sender section, which
// exists to orient the agent, not to reproduce whole emails.
const (
	senderPreviewLimit = 3
	senderPreviewChars = 100
)

func (u *contextUsecase) FormatForPrompt(emailCtx *emaildomain.EmailContext) string {
	return FormatForPrompt(emailCtx)
}

// FormatForPrompt renders an assembled context into the plain-text block the
// drafting agent consumes. Pure function, no I/O.
func FormatForPrompt(emailCtx *emaildomain.EmailContext) string {
	var b strings.Builder

	if emailCtx.Thread != nil {
		b.WriteString(ThreadSectionMarker)
		b.WriteString("\n\n")
		for _, email := range emailCtx.Thread.Emails {
			b.WriteString("From: " + email.From + "\n")
			b.WriteString("Subject: " + email.Subject + "\n")
			if email.ReceivedAt != nil {
				b.WriteString("Date: " + email.ReceivedAt.Format("Mon, 2 Jan 2006 15:04") + "\n")
			}
			b.WriteString(emailContent(email))
			b.WriteString("\n\n")
		}
	}

	if emailCtx.SenderHistory != nil {
		b.WriteString(SenderSectionMarker)
		b.WriteString("\n\n")
		shown := emailCtx.SenderHistory.Emails
		if len(shown) > senderPreviewLimit {
			shown = shown[:senderPreviewLimit]
		}
		for _, email := range shown {
			line := "- " + email.Subject
			if label := relativeDateLabel(email.ReceivedAt); label != "" {
				line += " (" + label + ")"
			}
			b.WriteString(line + "\n")
			if preview := previewText(email); preview != "" {
				b.WriteString("  " + preview + "\n")
			}
		}
		b.WriteString("\n")
	}

	if emailCtx.Thread == nil && emailCtx.SenderHistory == nil {
		b.WriteString(firstTimeSenderNotice)
		b.WriteString("\n")
	}

	if emailCtx.Metadata.Truncated {
		b.WriteString(fmt.Sprintf(
			"Note: older history was omitted to fit the context budget (%d thread emails and %d sender emails were available).\n",
			emailCtx.Metadata.ThreadEmailsLoaded, emailCtx.Metadata.SenderEmailsLoaded))
	}

	return b.String()
}

func emailContent(email emaildomain.ContextEmail) string {
	if email.Body != "" {
		return email.Body
	}
	if email.Snippet != "" {
		return email.Snippet
	}
	return "(No content)"
}

func previewText(email emaildomain.ContextEmail) string {
	preview := email.Body
	if preview == "" {
		preview = email.Snippet
	}
	preview = strings.Join(strings.Fields(preview), " ")
	if len(preview) > senderPreviewChars {
		preview = preview[:senderPreviewChars] + "..."
	}
	return preview
}

// relativeDateLabel renders a coarse human label for when an email arrived.
// Undated emails get no label.
func relativeDateLabel(receivedAt *time.Time) string {
	if receivedAt == nil {
		return ""
	}
	days := int(time.Since(*receivedAt).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		weeks := days / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}
