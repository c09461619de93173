package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"p9e.in/geodiario/config"
	"p9e.in/geodiario/middleware"
	"p9e.in/geodiario/models"
	"p9e.in/geodiario/pkg/draft"
	"p9e.in/geodiario/utils"
)

// ExportDiariesCSV downloads the filtered diary list as CSV (same filters
// as the listing endpoint).
func ExportDiariesCSV(w http.ResponseWriter, r *http.Request) {
	diarios, err := fetchDiaries(parseDiaryFilters(r))
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := utils.BuildCSV(diarios)
	if err != nil {
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("diarios_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ExportDiariesExcel downloads the filtered diary list as .xlsx.
func ExportDiariesExcel(w http.ResponseWriter, r *http.Request) {
	diarios, err := fetchDiaries(parseDiaryFilters(r))
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	f, err := utils.BuildExcel(diarios)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("diarios_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportDiaryPDF downloads one diary as the printable report, including
// the type-specific section when it exists. PDA diaries render from the
// author's autosave draft since PDA never persists detail rows.
func ExportDiaryPDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var d models.Diario
	if err := config.DB.First(&d, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	detail := loadDiaryDetail(d)
	in := utils.DiaryPDFInput{Diario: detail.Diario}
	if detail.PCE != nil {
		in.PCEDado = &detail.PCE.Dado
		in.PCEEstacas = detail.PCE.Estacas
	}
	if detail.PIT != nil {
		in.PITDado = &detail.PIT.Dado
		in.PITEstacas = detail.PIT.Estacas
	}
	if detail.PLACA != nil {
		in.PLACADado = &detail.PLACA.Dado
		in.PLACAPontos = detail.PLACA.Pontos
	}
	if d.Tipo == models.TipoPDA {
		if pda := loadPDADraft(d, middleware.GetUserID(r)); pda != nil {
			in.PDA = pda
		}
	}

	data, err := utils.BuildPDF(in)
	if err != nil {
		http.Error(w, "failed to generate PDF file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("diario_%s_%s.pdf", d.Tipo, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// loadPDADraft fetches the PDA autosave of the diary author, falling back
// to the requesting user's own draft.
func loadPDADraft(d models.Diario, requesterID string) *draft.PDADraft {
	for _, userID := range []string{d.CreatedBy.String(), requesterID} {
		var fd models.FormDraft
		if err := config.DB.Where("user_id = ? AND tipo = ?", userID, models.TipoPDA).
			First(&fd).Error; err != nil {
			continue
		}
		var pda draft.PDADraft
		if err := json.Unmarshal(fd.Payload, &pda); err != nil {
			continue
		}
		return &pda
	}
	return nil
}
