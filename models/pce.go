package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PCE subtype that gates the driving-equipment / fuel-log group.
const PCESubtipoHelicoidal = "HELICOIDAL"

// PCEDado is the one-to-one PCE detail for a diary.
type PCEDado struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"diarioId"`

	TipoEnsaio   string         `gorm:"column:tipo_ensaio;not null" json:"tipoEnsaio"`
	Equipamento  string         `json:"equipamento"`
	Carregamento pq.StringArray `gorm:"type:text[]" json:"carregamento"`
	Ocorrencias  string         `json:"ocorrencias,omitempty"`

	// Gated group: only meaningful when TipoEnsaio == HELICOIDAL. The
	// submission path strips these for other subtypes.
	EquipCravacao        string `gorm:"column:equip_cravacao" json:"equipCravacao,omitempty"`
	HorimetroInicio      string `gorm:"column:horimetro_inicio" json:"horimetroInicio,omitempty"`
	HorimetroFim         string `gorm:"column:horimetro_fim" json:"horimetroFim,omitempty"`
	AbastecimentoLitros  string `gorm:"column:abastecimento_litros" json:"abastecimentoLitros,omitempty"`
	AbastecimentoHorario string `gorm:"column:abastecimento_horario" json:"abastecimentoHorario,omitempty"`

	CreatedAt time.Time `json:"-"`
}

func (PCEDado) TableName() string {
	return "pce_dados"
}

func (d *PCEDado) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// PCEEstaca is one pile row under a PCE detail. Ordem is 1-based and
// reflects submission order, not the on-screen order.
type PCEEstaca struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PCEDadoID uuid.UUID `gorm:"column:pce_dado_id;type:uuid;index;not null" json:"pceDadoId"`

	Ordem         int    `gorm:"not null" json:"ordem"`
	EstacaNome    string `gorm:"column:estaca_nome;not null" json:"estacaNome"`
	Profundidade  string `json:"profundidade"`
	CargaTrabalho string `gorm:"column:carga_trabalho" json:"cargaTrabalho"`
	Tipo          string `json:"tipo"`
	Diametro      string `json:"diametro"`
}

func (PCEEstaca) TableName() string {
	return "pce_estacas"
}

func (e *PCEEstaca) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
