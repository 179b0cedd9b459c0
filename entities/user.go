package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	IdentityProviderRef string     `gorm:"uniqueIndex" json:"identity_provider_ref"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	FullName            string     `json:"full_name"`
	PhoneNumber         string     `json:"phone_number,omitempty"`
	MailConnected       bool       `json:"mail_connected"`
	MailRefreshToken    string     `gorm:"type:text" json:"-"` // AES-GCM encrypted at rest
	LastInboxScanDate   *time.Time `json:"last_inbox_scan_date,omitempty"`
	ReminderPreference  string     `gorm:"default:email" json:"reminder_preference"` // "email", "sms", "both"

	Timestamp
}
