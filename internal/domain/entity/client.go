package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer of the business. A client may optionally be
// linked to a login user for the client-facing portal.
type Client struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name      string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	WhatsApp  string     `gorm:"type:varchar(20)" json:"whatsapp,omitempty"`
	AvatarURL string     `gorm:"type:text" json:"avatar_url,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ClientID" json:"appointments,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}
