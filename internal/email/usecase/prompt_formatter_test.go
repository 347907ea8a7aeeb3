package usecase

import (
	"strings"
	"testing"
	"time"

	emaildomain "replydraft-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWith(thread *emaildomain.ThreadContext, sender *emaildomain.SenderContext) *emaildomain.EmailContext {
	return &emaildomain.EmailContext{
		IncomingEmail: emaildomain.ContextEmail{
			MessageID:      "incoming",
			From:           "alice@example.com",
			Subject:        "Re: numbers",
			IsCurrentEmail: true,
		},
		Thread:        thread,
		SenderHistory: sender,
	}
}

func TestFormatForPromptThreadSection(t *testing.T) {
	received := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	emailCtx := contextWith(&emaildomain.ThreadContext{
		ThreadID:   "thread-1",
		EmailCount: 2,
		Emails: []emaildomain.ContextEmail{
			{From: "alice@example.com", Subject: "numbers", Body: "first message", ReceivedAt: &received},
			{From: "me@example.com", Subject: "Re: numbers", Snippet: "snippet only"},
		},
	}, nil)

	prompt := FormatForPrompt(emailCtx)

	assert.Contains(t, prompt, ThreadSectionMarker)
	assert.NotContains(t, prompt, SenderSectionMarker)
	assert.Contains(t, prompt, "From: alice@example.com")
	assert.Contains(t, prompt, "Subject: numbers")
	assert.Contains(t, prompt, "Date: Sun, 1 Mar 2026 09:30")
	assert.Contains(t, prompt, "first message")
	// Snippet stands in when the body is empty; undated emails get no Date line.
	assert.Contains(t, prompt, "snippet only")
	assert.Equal(t, 1, strings.Count(prompt, "Date:"))
}

func TestFormatForPromptSenderSection(t *testing.T) {
	received := time.Now().Add(-26 * time.Hour)
	emailCtx := contextWith(nil, &emaildomain.SenderContext{
		SenderEmail: "alice@example.com",
		SenderName:  "Alice",
		EmailCount:  1,
		Emails: []emaildomain.ContextEmail{
			{Subject: "status update", Body: strings.Repeat("long body ", 30), ReceivedAt: &received},
		},
	})

	prompt := FormatForPrompt(emailCtx)

	assert.Contains(t, prompt, SenderSectionMarker)
	assert.Contains(t, prompt, "- status update (yesterday)")
	// Previews are capped well below the full body.
	for _, line := range strings.Split(prompt, "\n") {
		assert.LessOrEqual(t, len(line), senderPreviewChars+10)
	}
}

func TestFormatForPromptSenderPreviewLimit(t *testing.T) {
	emails := make([]emaildomain.ContextEmail, 0, 5)
	for _, subject := range []string{"one", "two", "three", "four", "five"} {
		emails = append(emails, emaildomain.ContextEmail{Subject: subject, Body: "b"})
	}
	emailCtx := contextWith(nil, &emaildomain.SenderContext{
		SenderEmail: "alice@example.com",
		EmailCount:  len(emails),
		Emails:      emails,
	})

	prompt := FormatForPrompt(emailCtx)

	assert.Contains(t, prompt, "- three")
	assert.NotContains(t, prompt, "- four")
	assert.NotContains(t, prompt, "- five")
}

func TestFormatForPromptFirstTimeSender(t *testing.T) {
	prompt := FormatForPrompt(contextWith(nil, nil))

	assert.Contains(t, prompt, "first email from this sender")
	assert.NotContains(t, prompt, ThreadSectionMarker)
	assert.NotContains(t, prompt, SenderSectionMarker)
}

func TestFormatForPromptTruncationNote(t *testing.T) {
	emailCtx := contextWith(&emaildomain.ThreadContext{
		ThreadID:   "thread-1",
		EmailCount: 1,
		Emails:     []emaildomain.ContextEmail{{From: "a@example.com", Subject: "s", Body: "b"}},
	}, nil)
	emailCtx.Metadata = emaildomain.ContextMetadata{
		ThreadEmailsLoaded: 12,
		SenderEmailsLoaded: 4,
		Truncated:          true,
	}

	prompt := FormatForPrompt(emailCtx)

	require.Contains(t, prompt, "older history was omitted")
	assert.Contains(t, prompt, "12 thread emails")
	assert.Contains(t, prompt, "4 sender emails")
}

func TestRelativeDateLabel(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		at   *time.Time
		want string
	}{
		{"nil", nil, ""},
		{"hours ago", timePtr(now.Add(-2 * time.Hour)), "today"},
		{"yesterday", timePtr(now.Add(-30 * time.Hour)), "yesterday"},
		{"days", timePtr(now.Add(-4 * 24 * time.Hour)), "4 days ago"},
		{"one week", timePtr(now.Add(-8 * 24 * time.Hour)), "1 week ago"},
		{"weeks", timePtr(now.Add(-16 * 24 * time.Hour)), "2 weeks ago"},
		{"one month", timePtr(now.Add(-35 * 24 * time.Hour)), "1 month ago"},
		{"months", timePtr(now.Add(-70 * 24 * time.Hour)), "2 months ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeDateLabel(tt.at))
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
