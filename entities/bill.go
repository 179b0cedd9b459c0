package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Bill struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID `gorm:"index;not null" json:"user_id"`
	ProductName         string    `gorm:"not null" json:"product_name"`
	StoreName           string    `json:"store_name"`
	Brand               string    `gorm:"default:Unknown" json:"brand"`
	PurchaseDate        time.Time `gorm:"not null" json:"purchase_date"`
	WarrantyYears       int       `gorm:"default:1" json:"warranty_years"`
	ExpiryDate          time.Time `gorm:"index;not null" json:"expiry_date"`
	PurchasePrice       float64   `gorm:"default:0" json:"purchase_price"`
	Keywords            string    `gorm:"type:text" json:"-"` // comma-joined, see KeywordList
	Status              string    `gorm:"default:pending" json:"status"` // "pending", "verified", "claimed", "expired", "archived"
	ReminderDaysBefore  int       `gorm:"default:30" json:"reminder_days_before"`
	ReminderSent        bool      `gorm:"default:false" json:"reminder_sent"`
	BillImageURL        string    `json:"bill_image_url,omitempty"`
	Source              string    `gorm:"default:upload" json:"source"` // "upload", "gmail-import"
	StoreEmail          string    `json:"store_email,omitempty"`
	StorePhone          string    `json:"store_phone,omitempty"`
	WarrantyDetailsText string    `gorm:"type:text" json:"warranty_details_text,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

func (b *Bill) KeywordList() []string {
	if b.Keywords == "" {
		return []string{}
	}
	parts := strings.Split(b.Keywords, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

func (b *Bill) SetKeywords(keywords []string) {
	b.Keywords = strings.Join(keywords, ",")
}
