// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;not null" json:"name"`
	// Uniqueness is scoped to live rows so a soft-deleted user's email can
	// be registered again after an admin removes the account.
	Email        string `gorm:"size:100;uniqueIndex:idx_users_active_email,where:deleted_at is null;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:user" json:"role"`
	// SignatureURL points at an uploaded signature image under /uploads,
	// or holds a data URL for profiles migrated from the old app.
	SignatureURL *string        `gorm:"type:text" json:"signatureUrl,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
