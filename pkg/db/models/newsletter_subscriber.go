package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsletterSubscriber stores one opted-in address. Email is unique; re-subscribing
// surfaces as a conflict to the caller.
type NewsletterSubscriber struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	CreatedAt time.Time
}

func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

func (s *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
