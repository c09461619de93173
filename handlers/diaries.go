package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"p9e.in/geodiario/config"
	"p9e.in/geodiario/models"
)

// diaryListFilters are the server-side filters of the listing endpoint.
type diaryListFilters struct {
	Start   string // data >= start (YYYY-MM-DD)
	End     string // data <= end
	Query   string // substring across cliente_nome / endereco / servicos_executados
	Cliente string // exact cliente_nome
}

func parseDiaryFilters(r *http.Request) diaryListFilters {
	q := r.URL.Query()
	return diaryListFilters{
		Start:   q.Get("start"),
		End:     q.Get("end"),
		Query:   q.Get("q"),
		Cliente: q.Get("client"),
	}
}

// fetchDiaries loads the filtered diary set, resolves missing type flags
// from child-table presence and sorts newest-created first. All
// authenticated users see all diaries.
func fetchDiaries(f diaryListFilters) ([]models.Diario, error) {
	q := config.DB.Model(&models.Diario{})
	if f.Start != "" {
		q = q.Where("data >= ?", f.Start)
	}
	if f.End != "" {
		q = q.Where("data <= ?", f.End)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("cliente_nome ILIKE ? OR endereco ILIKE ? OR servicos_executados ILIKE ?",
			like, like, like)
	}
	if f.Cliente != "" {
		q = q.Where("cliente_nome = ?", f.Cliente)
	}

	var diarios []models.Diario
	var placaIDs, pitIDs, pceIDs map[uuid.UUID]bool

	// The diary rows and the per-type presence sets have no ordering
	// dependency, so fetch them concurrently and join by id afterwards.
	var g errgroup.Group
	g.Go(func() error {
		return q.Find(&diarios).Error
	})
	g.Go(func() (err error) {
		placaIDs, pitIDs, pceIDs, err = config.ChildPresenceSets(config.DB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range diarios {
		diarios[i].Tipo = models.InferDiaryType(diarios[i].Tipo, diarios[i].ID, placaIDs, pitIDs, pceIDs)
	}
	models.SortDiaries(diarios)
	return diarios, nil
}

func GetAllDiaries(w http.ResponseWriter, r *http.Request) {
	diarios, err := fetchDiaries(parseDiaryFilters(r))
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(diarios)
}

// diaryDetail is the full response for one diary: the parent plus the
// type-specific section that exists for it. Sections the diary does not
// have stay null.
type diaryDetail struct {
	Diario models.Diario `json:"diario"`

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

// loadDiaryDetail fetches the type-specific detail and its ordered child
// rows. A failed or absent detail fetch is not fatal: the section is left
// out and the caller gets the parent alone (logged, no user-facing error).
func loadDiaryDetail(d models.Diario) diaryDetail {
	out := diaryDetail{Diario: d}

	switch d.Tipo {
	case models.TipoPCE:
		var dado models.PCEDado
		if err := config.DB.Where("diario_id = ?", d.ID).First(&dado).Error; err != nil {
			logDetailErr(d.ID, err)
			return out
		}
		var estacas []models.PCEEstaca
		if err := config.DB.Where("pce_dado_id = ?", dado.ID).Order("ordem asc").Find(&estacas).Error; err != nil {
			logDetailErr(d.ID, err)
			return out
		}
		out.PCE = &struct {
			Dado    models.PCEDado     `json:"dado"`
			Estacas []models.PCEEstaca `json:"estacas"`
		}{dado, estacas}

	case models.TipoPIT:
		var dado models.PITDado
		if err := config.DB.Where("diario_id = ?", d.ID).First(&dado).Error; err != nil {
			logDetailErr(d.ID, err)
			return out
		}
		var estacas []models.PITEstaca
		if err := config.DB.Where("pit_dado_id = ?", dado.ID).Order("ordem asc").Find(&estacas).Error; err != nil {
			logDetailErr(d.ID, err)
			return out
		}
		out.PIT = &struct {
			Dado    models.PITDado     `json:"dado"`
			Estacas []models.PITEstaca `json:"estacas"`
		}{dado, estacas}

	case models.TipoPLACA:
		var dado models.PLACADado
		if err := config.DB.Where("diario_id = ?", d.ID).First(&dado).Error; err != nil {
			logDetailErr(d.ID, err)
			return out
		}
		var pontos []models.PLACAPonto
		if err := config.DB.Where("placa_dado_id = ?", dado.ID).Order("ordem asc").Find(&pontos).Error; err != nil {
			logDetailErr(d.ID, err)
			return out
		}
		out.PLACA = &struct {
			Dado   models.PLACADado    `json:"dado"`
			Pontos []models.PLACAPonto `json:"pontos"`
		}{dado, pontos}
	}
	return out
}

func logDetailErr(id uuid.UUID, err error) {
	if err == gorm.ErrRecordNotFound {
		return
	}
	log.Printf("diary %s: detail fetch failed: %v", id, err)
}

func GetDiary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var d models.Diario
	if err := config.DB.First(&d, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if d.Tipo == "" {
		placaIDs, pitIDs, pceIDs, err := config.ChildPresenceSets(config.DB)
		if err == nil {
			d.Tipo = models.InferDiaryType("", d.ID, placaIDs, pitIDs, pceIDs)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loadDiaryDetail(d))
}

// DeleteDiary removes a diary and its type-specific rows, grandchildren
// first, then the detail, then the parent (foreign-key order).
func DeleteDiary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var d models.Diario
	if err := config.DB.First(&d, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return deleteDiaryTree(tx, &d)
	})
	if err != nil {
		http.Error(w, "failed to delete diary: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteDiaryTree removes the type-specific rows grandchildren first, then
// the detail, then the parent (foreign-key order). Runs inside the caller's
// transaction.
func deleteDiaryTree(tx *gorm.DB, d *models.Diario) error {
	var pce models.PCEDado
	if err := tx.Where("diario_id = ?", d.ID).First(&pce).Error; err == nil {
		if err := tx.Where("pce_dado_id = ?", pce.ID).Delete(&models.PCEEstaca{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&pce).Error; err != nil {
			return err
		}
	}
	var pit models.PITDado
	if err := tx.Where("diario_id = ?", d.ID).First(&pit).Error; err == nil {
		if err := tx.Where("pit_dado_id = ?", pit.ID).Delete(&models.PITEstaca{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&pit).Error; err != nil {
			return err
		}
	}
	var placa models.PLACADado
	if err := tx.Where("diario_id = ?", d.ID).First(&placa).Error; err == nil {
		if err := tx.Where("placa_dado_id = ?", placa.ID).Delete(&models.PLACAPonto{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&placa).Error; err != nil {
			return err
		}
	}
	return tx.Delete(d).Error
}
