package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PITDado is the one-to-one PIT detail for a diary.
type PITDado struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"diarioId"`

	Equipamento  string `json:"equipamento"`
	Ocorrencias  string `json:"ocorrencias,omitempty"`
	TotalEstacas int    `gorm:"column:total_estacas" json:"totalEstacas"`

	CreatedAt time.Time `json:"-"`
}

func (PITDado) TableName() string {
	return "pit_dados"
}

func (d *PITDado) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

type PITEstaca struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PITDadoID uuid.UUID `gorm:"column:pit_dado_id;type:uuid;index;not null" json:"pitDadoId"`

	Ordem           int    `gorm:"not null" json:"ordem"`
	EstacaNome      string `gorm:"column:estaca_nome;not null" json:"estacaNome"`
	Tipo            string `json:"tipo"`
	Diametro        string `json:"diametro"`
	Profundidade    string `json:"profundidade"`
	CotaArrasamento string `gorm:"column:cota_arrasamento" json:"cotaArrasamento"`
	ComprimentoUtil string `gorm:"column:comprimento_util" json:"comprimentoUtil"`
}

func (PITEstaca) TableName() string {
	return "pit_estacas"
}

func (e *PITEstaca) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
