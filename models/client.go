package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente is the customer registry managed by admins. Diaries reference
// clients by name, not by foreign key, matching the original data.
type Cliente struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Nome      string         `gorm:"size:200;not null" json:"nome"`
	Email     string         `gorm:"size:100" json:"email"`
	Telefone  string         `gorm:"size:20" json:"telefone"`
	Endereco  string         `json:"endereco"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Cliente) TableName() string {
	return "clientes"
}

func (c *Cliente) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
