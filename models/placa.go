package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PLACADado is the one-to-one plate-load-test detail for a diary.
type PLACADado struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"diarioId"`

	Equipamento string `json:"equipamento"`
	Macaco      string `json:"macaco"`
	Manometro   string `json:"manometro"`
	Ocorrencias string `json:"ocorrencias,omitempty"`

	CreatedAt time.Time `json:"-"`
}

func (PLACADado) TableName() string {
	return "placa_dados"
}

func (d *PLACADado) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// PLACAPonto is one test-point row with its two working-load readings.
type PLACAPonto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PLACADadoID uuid.UUID `gorm:"column:placa_dado_id;type:uuid;index;not null" json:"placaDadoId"`

	Ordem         int    `gorm:"not null" json:"ordem"`
	PontoNome     string `gorm:"column:ponto_nome;not null" json:"pontoNome"`
	CargaLeitura1 string `gorm:"column:carga_leitura1" json:"cargaLeitura1"`
	CargaLeitura2 string `gorm:"column:carga_leitura2" json:"cargaLeitura2"`
}

func (PLACAPonto) TableName() string {
	return "placa_pontos"
}

func (p *PLACAPonto) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
