package repository

import (
	"context"
	"strings"
	"time"

	emaildomain "replydraft-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailFilter describes one query against the mail store. Zero-valued fields
// are ignored.
type EmailFilter struct {
	UserID           string
	ThreadID         string
	SenderContains   string // case-insensitive substring match on from_address
	ExcludeMessageID string
	ReceivedAfter    *time.Time // rows with NULL received_at are still included
	OrderDesc        bool
	Limit            int
}

// EmailRepository is the storage port the context engine reads through.
type EmailRepository interface {
	// FindEmails returns stored emails matching the filter, ordered by
	// receive time.
	FindEmails(ctx context.Context, filter EmailFilter) ([]*emaildomain.StoredEmail, error)
	// GetEmailByMessageID retrieves one email, or nil when absent
	GetEmailByMessageID(ctx context.Context, userID, messageID string) (*emaildomain.StoredEmail, error)
	// SaveEmail persists a new email, assigning an id when empty
	SaveEmail(ctx context.Context, email *emaildomain.StoredEmail) error
}

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) FindEmails(ctx context.Context, filter EmailFilter) ([]*emaildomain.StoredEmail, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if filter.ThreadID != "" {
		query = query.Where("thread_id = ?", filter.ThreadID)
	}
	if filter.SenderContains != "" {
		pattern := "%" + strings.ToLower(filter.SenderContains) + "%"
		query = query.Where("LOWER(from_address) LIKE ?", pattern)
	}
	if filter.ExcludeMessageID != "" {
		query = query.Where("message_id <> ?", filter.ExcludeMessageID)
	}
	if filter.ReceivedAfter != nil {
		// A missing timestamp must not hide a real email.
		query = query.Where("received_at >= ? OR received_at IS NULL", *filter.ReceivedAfter)
	}

	if filter.OrderDesc {
		query = query.Order("received_at DESC")
	} else {
		query = query.Order("received_at ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var emails []*emaildomain.StoredEmail
	if err := query.Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) GetEmailByMessageID(ctx context.Context, userID, messageID string) (*emaildomain.StoredEmail, error) {
	var email emaildomain.StoredEmail
	err := r.db.WithContext(ctx).Where("user_id = ? AND message_id = ?", userID, messageID).First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) SaveEmail(ctx context.Context, email *emaildomain.StoredEmail) error {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	if email.CreatedAt.IsZero() {
		email.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(email).Error
}
