package models

import (
	"time"

	"github.com/google/uuid"
)

// DonorProfile is created together with its User at registration.
// LastDonationDate is written only by the request lifecycle manager.
type DonorProfile struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	BloodType        string     `json:"blood_type" gorm:"size:3;not null"`
	IsAvailable      bool       `json:"is_available" gorm:"default:true"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	Location         string     `json:"location" gorm:"size:255"`
	Phone            string     `json:"phone" gorm:"size:20"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
