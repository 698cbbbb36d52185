package models

import "github.com/google/uuid"

// RequesterProfile is created lazily on the requester's first profile update.
type RequesterProfile struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Phone    string    `json:"phone" gorm:"size:20"`
	Location string    `json:"location" gorm:"size:255"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
