package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteAuditRecord is one appended row of the quote request audit trail. The
// table is append-only; nothing in the codebase updates or deletes rows.
type QuoteAuditRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubmittedAt    string    `gorm:"column:submitted_at;not null"`
	FullName       string    `gorm:"column:full_name;not null"`
	Company        string    `gorm:"column:company"`
	Email          string    `gorm:"column:email;not null"`
	Phone          string    `gorm:"column:phone;not null"`
	Country        string    `gorm:"column:country"`
	QuoteType      string    `gorm:"column:quote_type;not null"`
	Details        string    `gorm:"column:details;not null"`
	AttachmentURLs string    `gorm:"column:attachment_urls"`
	ClientIP       string    `gorm:"column:client_ip"`
	UserAgent      string    `gorm:"column:user_agent"`
	CreatedAt      time.Time
}

func (QuoteAuditRecord) TableName() string {
	return "quote_audit_records"
}

func (r *QuoteAuditRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
