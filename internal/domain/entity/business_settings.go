package entity

import "time"

// BusinessSettings holds the single-row business configuration: branding,
// opening hours and credentials for the outbound WhatsApp and assistant
// integrations. Credentials here override the environment defaults.
type BusinessSettings struct {
	ID             int              `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessName   string           `gorm:"type:varchar(255);not null" json:"business_name"`
	Description    string           `gorm:"type:text" json:"description,omitempty"`
	LogoURL        string           `gorm:"type:text" json:"logo_url,omitempty"`
	PrimaryColor   string           `gorm:"type:varchar(20)" json:"primary_color,omitempty"`
	Slogan         string           `gorm:"type:varchar(255)" json:"slogan,omitempty"`
	Phone          string           `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email          string           `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address        string           `gorm:"type:text" json:"address,omitempty"`
	OpeningHours   WorkScheduleList `gorm:"type:jsonb" json:"opening_hours,omitempty"`
	WhatsAppAPIKey string           `gorm:"type:text" json:"-"`
	WhatsAppNumber string           `gorm:"type:varchar(20)" json:"whatsapp_number,omitempty"`
	GeminiAPIKey   string           `gorm:"type:text" json:"-"`
	GeminiPrompt   string           `gorm:"type:text" json:"gemini_prompt,omitempty"`
	Language       string           `gorm:"type:varchar(10);not null;default:'pt-BR'" json:"language"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BusinessSettings) TableName() string {
	return "business_settings"
}
