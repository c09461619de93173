package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/geodiario/config"
	"p9e.in/geodiario/middleware"
	"p9e.in/geodiario/models"
)

// createDiaryReq is the submission payload: the parent diary fields plus
// exactly one type-specific section. PDA is not accepted here; its ficha
// and daily log only exist in the autosave draft store.
type createDiaryReq struct {
	models.Diario

	PCE *struct {
		Dado    models.PCEDado     `json:"dado"`
		Estacas []models.PCEEstaca `json:"estacas"`
	} `json:"pce,omitempty"`

	PIT *struct {
		Dado    models.PITDado     `json:"dado"`
		Estacas []models.PITEstaca `json:"estacas"`
	} `json:"pit,omitempty"`

	PLACA *struct {
		Dado   models.PLACADado    `json:"dado"`
		Pontos []models.PLACAPonto `json:"pontos"`
	} `json:"placa,omitempty"`
}

// composeEndereco resolves the effective address: a complete structured
// selection wins over the free-text field; otherwise the free text is used
// verbatim.
func composeEndereco(d models.Diario) string {
	if d.Rua != "" && d.Cidade != "" && d.Estado != "" {
		if d.Numero != "" {
			return fmt.Sprintf("%s, %s - %s/%s", d.Rua, d.Numero, d.Cidade, d.Estado)
		}
		return fmt.Sprintf("%s - %s/%s", d.Rua, d.Cidade, d.Estado)
	}
	return d.Endereco
}

// stripGatedPCEFields clears the driving-equipment and fuel-log group
// unless the submitted subtype is HELICOIDAL. The draft keeps those values
// for toggle-back; the persisted row must not.
func stripGatedPCEFields(dado models.PCEDado) models.PCEDado {
	if dado.TipoEnsaio == models.PCESubtipoHelicoidal {
		return dado
	}
	dado.EquipCravacao = ""
	dado.HorimetroInicio = ""
	dado.HorimetroFim = ""
	dado.AbastecimentoLitros = ""
	dado.AbastecimentoHorario = ""
	return dado
}

func validateCreateDiary(req *createDiaryReq) string {
	switch req.Tipo {
	case models.TipoPCE:
		if req.PCE == nil {
			return "pce section is required for tipo PCE"
		}
	case models.TipoPIT:
		if req.PIT == nil {
			return "pit section is required for tipo PIT"
		}
	case models.TipoPLACA:
		if req.PLACA == nil {
			return "placa section is required for tipo PLACA"
		}
	case models.TipoPDA:
		return "PDA diaries are kept as drafts and cannot be submitted here"
	default:
		return "tipo must be one of PCE, PIT, PLACA"
	}
	if req.ClienteNome == "" {
		return "clienteNome is required"
	}
	if composeEndereco(req.Diario) == "" {
		return "endereco is required"
	}
	if req.Data.IsZero() {
		return "data is required"
	}
	return ""
}

// CreateDiary persists a new diary and its type-specific rows in one
// transaction: parent first, then the detail, then the child rows tagged
// with a 1-based ordem. The first failing insert aborts the transaction
// and its error is surfaced verbatim, so no orphaned parent or detail row
// is ever left behind.
func CreateDiary(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req createDiaryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := validateCreateDiary(&req); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	d := req.Diario
	d.ID = uuid.Nil
	d.Endereco = composeEndereco(d)
	d.CreatedBy = uuid.MustParse(claims.UserID)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return insertDiaryTree(tx, &req, &d)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// insertDiaryTree writes the parent, the type-specific detail and the child
// rows, tagging each child with a 1-based ordem in submission order. Runs
// inside the caller's transaction; the first failing insert aborts it.
func insertDiaryTree(tx *gorm.DB, req *createDiaryReq, d *models.Diario) error {
	if err := tx.Create(d).Error; err != nil {
		return err
	}

	switch d.Tipo {
	case models.TipoPCE:
		dado := stripGatedPCEFields(req.PCE.Dado)
		dado.ID = uuid.Nil
		dado.DiarioID = d.ID
		if err := tx.Create(&dado).Error; err != nil {
			return err
		}
		for i := range req.PCE.Estacas {
			e := req.PCE.Estacas[i]
			e.ID = uuid.Nil
			e.PCEDadoID = dado.ID
			e.Ordem = i + 1
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
		}

	case models.TipoPIT:
		dado := req.PIT.Dado
		dado.ID = uuid.Nil
		dado.DiarioID = d.ID
		if err := tx.Create(&dado).Error; err != nil {
			return err
		}
		for i := range req.PIT.Estacas {
			e := req.PIT.Estacas[i]
			e.ID = uuid.Nil
			e.PITDadoID = dado.ID
			e.Ordem = i + 1
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
		}

	case models.TipoPLACA:
		dado := req.PLACA.Dado
		dado.ID = uuid.Nil
		dado.DiarioID = d.ID
		if err := tx.Create(&dado).Error; err != nil {
			return err
		}
		for i := range req.PLACA.Pontos {
			p := req.PLACA.Pontos[i]
			p.ID = uuid.Nil
			p.PLACADadoID = dado.ID
			p.Ordem = i + 1
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
