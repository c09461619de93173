package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/geodiario/handlers"
	"p9e.in/geodiario/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.RequestLogMiddleware)

	// User profile endpoint
	api.HandleFunc("/profile", handlers.Profile).Methods("GET")

	// Work diaries: the export routes must be registered before the
	// parameterized ones so mux does not swallow "export" as an {id}.
	api.HandleFunc("/diaries/export/csv", handlers.ExportDiariesCSV).Methods("GET")
	api.HandleFunc("/diaries/export/excel", handlers.ExportDiariesExcel).Methods("GET")
	api.HandleFunc("/diaries", handlers.GetAllDiaries).Methods("GET")
	api.HandleFunc("/diaries", handlers.CreateDiary).Methods("POST")
	api.HandleFunc("/diaries/{id}", handlers.GetDiary).Methods("GET")
	api.HandleFunc("/diaries/{id}/export/pdf", handlers.ExportDiaryPDF).Methods("GET")

	// Autosave drafts
	api.HandleFunc("/drafts/{tipo}", handlers.GetDraft).Methods("GET")
	api.HandleFunc("/drafts/{tipo}", handlers.SaveDraft).Methods("PUT")
	api.HandleFunc("/drafts/{tipo}", handlers.DeleteDraft).Methods("DELETE")

	// Clients (read for everyone, writes are admin-only below)
	api.HandleFunc("/clients", handlers.GetAllClients).Methods("GET")
	api.HandleFunc("/clients/{id}", handlers.GetClient).Methods("GET")

	// Signature upload
	api.HandleFunc("/files/signature", handlers.UploadSignature).Methods("POST")

	// Assistant proxy
	api.HandleFunc("/assistant/chat", handlers.AssistantChat).Methods("POST")

	// =====================================================
	// Admin Routes (require admin role)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", handlers.GetAllUsers).Methods("GET")
	admin.HandleFunc("/users", handlers.CreateUser).Methods("POST")
	admin.HandleFunc("/users/{id}", handlers.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", handlers.DeleteUser).Methods("DELETE")

	admin.HandleFunc("/clients", handlers.CreateClient).Methods("POST")
	admin.HandleFunc("/clients/{id}", handlers.UpdateClient).Methods("PUT")
	admin.HandleFunc("/clients/{id}", handlers.DeleteClient).Methods("DELETE")

	admin.HandleFunc("/diaries/{id}", handlers.DeleteDiary).Methods("DELETE")

	return r
}
