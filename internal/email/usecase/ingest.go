package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/mail"
	"regexp"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"

	emaildomain "replydraft-backend/internal/email/domain"
)

const snippetChars = 200

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// IngestRawEmail parses a raw RFC822 message into a StoredEmail and persists
// it. Re-ingesting a message id the user already has returns the existing
// record unchanged.
func (u *contextUsecase) IngestRawEmail(ctx context.Context, userID string, raw []byte) (*emaildomain.StoredEmail, error) {
	parsed, err := parseRawEmail(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	if parsed.MessageID != "" {
		existing, err := u.emailRepo.GetEmailByMessageID(ctx, userID, parsed.MessageID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			log.Printf("[Ingest] message %s already stored for user %s, skipping", parsed.MessageID, userID)
			return existing, nil
		}
	}

	parsed.UserID = userID
	if err := u.emailRepo.SaveEmail(ctx, parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// parseRawEmail walks the MIME structure, preferring text/plain for the body
// and keeping the first text/html part as a fallback for snippet derivation.
func parseRawEmail(raw []byte) (*emaildomain.StoredEmail, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		// Fall back to a bare header/body split for messages go-message
		// cannot handle.
		m, mailErr := mail.ReadMessage(bytes.NewReader(raw))
		if mailErr != nil {
			return nil, err
		}
		body, _ := io.ReadAll(m.Body)
		email := storedFromHeaders(
			m.Header.Get("Message-Id"), m.Header.Get("From"), m.Header.Get("To"),
			m.Header.Get("Subject"), m.Header.Get("Date"), m.Header.Get("References"))
		email.Body = string(body)
		email.Snippet = deriveSnippet(email.Body, false)
		return email, nil
	}

	header := entity.Header
	email := storedFromHeaders(
		header.Get("Message-Id"), header.Get("From"), header.Get("To"),
		header.Get("Subject"), header.Get("Date"), header.Get("References"))

	var plain, html string
	collectTextParts(entity, &plain, &html)
	if plain != "" {
		email.Body = plain
		email.Snippet = deriveSnippet(plain, false)
	} else if html != "" {
		email.Body = html
		email.Snippet = deriveSnippet(html, true)
	}

	return email, nil
}

func collectTextParts(entity *message.Entity, plain, html *string) {
	mediaType, _, _ := entity.Header.ContentType()

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := entity.MultipartReader()
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			collectTextParts(part, plain, html)
		}
		return
	}

	switch {
	case mediaType == "text/plain" && *plain == "":
		body, _ := io.ReadAll(entity.Body)
		*plain = string(body)
	case mediaType == "text/html" && *html == "":
		body, _ := io.ReadAll(entity.Body)
		*html = string(body)
	}
}

func storedFromHeaders(messageID, from, to, subject, date, references string) *emaildomain.StoredEmail {
	email := &emaildomain.StoredEmail{
		MessageID:   strings.Trim(strings.TrimSpace(messageID), "<>"),
		FromAddress: from,
		ToAddress:   to,
		Subject:     subject,
	}

	if parsed, err := mail.ParseDate(date); err == nil {
		email.ReceivedAt = &parsed
	}

	// The oldest referenced message id doubles as the thread key when the
	// provider supplies no native thread identifier.
	if refs := strings.Fields(references); len(refs) > 0 {
		threadID := strings.Trim(refs[0], "<>")
		email.ThreadID = &threadID
	}

	return email
}

// deriveSnippet collapses a body into a short plain-text preview, stripping
// markup the way list views do.
func deriveSnippet(body string, isHTML bool) string {
	if isHTML {
		body = htmlTagPattern.ReplaceAllString(body, " ")
		body = strings.ReplaceAll(body, "&nbsp;", " ")
		body = strings.ReplaceAll(body, "&lt;", "<")
		body = strings.ReplaceAll(body, "&gt;", ">")
		body = strings.ReplaceAll(body, "&amp;", "&")
		body = strings.ReplaceAll(body, "&quot;", "\"")
	}
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > snippetChars {
		body = body[:snippetChars] + "..."
	}
	return body
}
