package domain

import "time"

// StoredEmail is the persisted representation of a message in the mail store.
// The context engine only reads these; ingest writes them.
type StoredEmail struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index:idx_user_thread;index:idx_user_message;not null"`
	MessageID   string     `json:"message_id" gorm:"index:idx_user_message;not null"`
	ThreadID    *string    `json:"thread_id" gorm:"index:idx_user_thread"`
	FromAddress string     `json:"from_address" gorm:"not null"`
	ToAddress   string     `json:"to_address"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body" gorm:"type:text"`
	Snippet     string     `json:"snippet" gorm:"type:text"`
	ReceivedAt  *time.Time `json:"received_at" gorm:"index"`
	Labels      string     `json:"labels" gorm:"type:text"` // JSON-encoded array
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName specifies the table name for GORM
func (StoredEmail) TableName() string {
	return "emails"
}
