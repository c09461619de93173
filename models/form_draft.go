package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormDraft is the server-side autosave store for in-progress diary forms,
// one row per user and diary type. The PDA form only ever lives here: its
// ficha and daily log are never written through the diary create path.
type FormDraft struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_form_drafts_user_tipo" json:"userId"`
	Tipo    string         `gorm:"size:10;not null;uniqueIndex:idx_form_drafts_user_tipo" json:"tipo"`
	Payload datatypes.JSON `gorm:"not null" json:"payload"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (FormDraft) TableName() string {
	return "form_drafts"
}

func (f *FormDraft) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
