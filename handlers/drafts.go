package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/geodiario/config"
	"p9e.in/geodiario/middleware"
	"p9e.in/geodiario/models"
	"p9e.in/geodiario/pkg/draft"
)

// GetDraft returns the caller's autosaved form state for one diary type,
// seeding a blank draft when nothing has been saved yet.
func GetDraft(w http.ResponseWriter, r *http.Request) {
	tipo := mux.Vars(r)["tipo"]
	if !models.ValidTipo(tipo) {
		http.Error(w, "unknown diary type", http.StatusBadRequest)
		return
	}
	userID := middleware.GetUserID(r)

	var fd models.FormDraft
	err := config.DB.Where("user_id = ? AND tipo = ?", userID, tipo).First(&fd).Error
	if err == gorm.ErrRecordNotFound {
		payload, _ := json.Marshal(blankDraft(tipo))
		fd = models.FormDraft{
			UserID:  uuid.MustParse(userID),
			Tipo:    tipo,
			Payload: payload,
		}
	} else if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fd)
}

// saveDraftReq carries either a whole replacement payload (classic
// autosave) or a single tagged action applied server-side.
type saveDraftReq struct {
	Payload json.RawMessage `json:"payload,omitempty"`
	Action  *draft.Action   `json:"action,omitempty"`
}

func SaveDraft(w http.ResponseWriter, r *http.Request) {
	tipo := mux.Vars(r)["tipo"]
	if !models.ValidTipo(tipo) {
		http.Error(w, "unknown diary type", http.StatusBadRequest)
		return
	}
	userID := middleware.GetUserID(r)

	var req saveDraftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var payload []byte
	switch {
	case req.Action != nil:
		current := currentPayload(userID, tipo)
		next, err := applyAction(tipo, current, *req.Action)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		payload = next
	case len(req.Payload) > 0:
		// Round-trip through the typed draft so malformed payloads are
		// rejected instead of stored.
		next, err := normalizePayload(tipo, req.Payload)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		payload = next
	default:
		http.Error(w, "payload or action is required", http.StatusBadRequest)
		return
	}

	fd := models.FormDraft{
		UserID:  uuid.MustParse(userID),
		Tipo:    tipo,
		Payload: datatypes.JSON(payload),
	}
	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tipo"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&fd).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fd)
}

// DeleteDraft discards the autosaved state, e.g. after a successful
// submission.
func DeleteDraft(w http.ResponseWriter, r *http.Request) {
	tipo := mux.Vars(r)["tipo"]
	userID := middleware.GetUserID(r)

	if err := config.DB.Where("user_id = ? AND tipo = ?", userID, tipo).
		Delete(&models.FormDraft{}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func blankDraft(tipo string) interface{} {
	switch tipo {
	case models.TipoPCE:
		return draft.NewPCEDraft()
	case models.TipoPIT:
		return draft.NewPITDraft()
	case models.TipoPLACA:
		return draft.NewPLACADraft()
	default:
		return draft.NewPDADraft()
	}
}

func currentPayload(userID, tipo string) []byte {
	var fd models.FormDraft
	if err := config.DB.Where("user_id = ? AND tipo = ?", userID, tipo).First(&fd).Error; err == nil {
		return fd.Payload
	}
	payload, _ := json.Marshal(blankDraft(tipo))
	return payload
}

func applyAction(tipo string, current []byte, a draft.Action) ([]byte, error) {
	switch tipo {
	case models.TipoPCE:
		var d draft.PCEDraft
		if err := json.Unmarshal(current, &d); err != nil {
			return nil, err
		}
		next, err := d.Apply(a)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	case models.TipoPIT:
		var d draft.PITDraft
		if err := json.Unmarshal(current, &d); err != nil {
			return nil, err
		}
		next, err := d.Apply(a)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	case models.TipoPLACA:
		var d draft.PLACADraft
		if err := json.Unmarshal(current, &d); err != nil {
			return nil, err
		}
		next, err := d.Apply(a)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	default:
		var d draft.PDADraft
		if err := json.Unmarshal(current, &d); err != nil {
			return nil, err
		}
		next, err := d.Apply(a)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	}
}

func normalizePayload(tipo string, raw json.RawMessage) ([]byte, error) {
	switch tipo {
	case models.TipoPCE:
		var d draft.PCEDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return json.Marshal(d)
	case models.TipoPIT:
		var d draft.PITDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return json.Marshal(d)
	case models.TipoPLACA:
		var d draft.PLACADraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return json.Marshal(d)
	default:
		var d draft.PDADraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return json.Marshal(d)
	}
}
