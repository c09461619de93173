package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diary types. Stored explicitly on every row written by this service;
// rows migrated from the old app may have a blank Tipo and fall back to
// child-table inference (see InferDiaryType).
const (
	TipoPCE   = "PCE"
	TipoPIT   = "PIT"
	TipoPLACA = "PLACA"
	TipoPDA   = "PDA"
)

func ValidTipo(t string) bool {
	switch t {
	case TipoPCE, TipoPIT, TipoPLACA, TipoPDA:
		return true
	}
	return false
}

// Diario is the parent work-diary record.
type Diario struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClienteNome string    `gorm:"column:cliente_nome;not null" json:"clienteNome"`
	Endereco    string    `gorm:"not null" json:"endereco"`

	// Optional structured address; when present the effective Endereco is
	// composed from these at submission time.
	Estado string `gorm:"size:2" json:"estado,omitempty"`
	Cidade string `json:"cidade,omitempty"`
	Rua    string `json:"rua,omitempty"`
	Numero string `gorm:"size:20" json:"numero,omitempty"`

	Equipe                string   `json:"equipe"`
	Tipo                  string   `gorm:"size:10;index" json:"tipo"`
	Data                  DateOnly `gorm:"type:date;not null;index" json:"data"`
	HoraInicio            string   `gorm:"column:hora_inicio;size:5" json:"horaInicio"`
	HoraFim               string   `gorm:"column:hora_fim;size:5" json:"horaFim"`
	ServicosExecutados    string   `gorm:"column:servicos_executados" json:"servicosExecutados"`
	AssinaturaGeotest     string   `gorm:"column:assinatura_geotest" json:"assinaturaGeotest"`
	AssinaturaGeotestImg  string   `gorm:"column:assinatura_geotest_img;type:text" json:"assinaturaGeotestImg,omitempty"`
	AssinaturaResponsavel string   `gorm:"column:assinatura_responsavel" json:"assinaturaResponsavel"`
	Observacoes           string   `json:"observacoes,omitempty"`

	CreatedBy uuid.UUID `gorm:"type:uuid;index" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Diario) TableName() string {
	return "diarios"
}

func (d *Diario) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// InferDiaryType resolves the effective type for a diary whose Tipo flag is
// blank by checking which child table holds a row for it. Priority order is
// fixed: PLACA, then PIT, then PCE (first match wins). A diary that somehow
// matches more than one child table is classified by that same order.
func InferDiaryType(tipo string, id uuid.UUID, placaIDs, pitIDs, pceIDs map[uuid.UUID]bool) string {
	if tipo != "" {
		return tipo
	}
	if placaIDs[id] {
		return TipoPLACA
	}
	if pitIDs[id] {
		return TipoPIT
	}
	if pceIDs[id] {
		return TipoPCE
	}
	return ""
}

// SortDiaries orders most-recently-created first. Diaries with equal or
// missing creation timestamps fall back to the business date, newest first,
// so legacy rows without created_at still land in a sensible spot.
func SortDiaries(diarios []Diario) {
	sort.SliceStable(diarios, func(i, j int) bool {
		ci, cj := diarios[i].CreatedAt, diarios[j].CreatedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return time.Time(diarios[i].Data).After(time.Time(diarios[j].Data))
	})
}
