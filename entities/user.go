package entities

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserName     string    `gorm:"size:40;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:200;not null;uniqueIndex" json:"email"`
	DisplayName  string    `gorm:"size:80;not null" json:"display_name"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `gorm:"type:timestamp" json:"created_at"`

	Reviews []Review `gorm:"foreignKey:UserID" json:"-"`
}
