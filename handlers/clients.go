package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/geodiario/config"
	"p9e.in/geodiario/models"
)

func GetAllClients(w http.ResponseWriter, r *http.Request) {
	var clientes []models.Cliente
	if err := config.DB.Order("nome asc").Find(&clientes).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clientes)
}

func CreateClient(w http.ResponseWriter, r *http.Request) {
	var c models.Cliente
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if c.Nome == "" {
		http.Error(w, "nome is required", http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&c).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func GetClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var c models.Cliente
	if err := config.DB.First(&c, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var c models.Cliente
	if err := config.DB.First(&c, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := config.DB.Save(&c).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Where("id = ?", id).Delete(&models.Cliente{})
	if result.Error != nil {
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
