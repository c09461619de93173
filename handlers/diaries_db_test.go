package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"p9e.in/geodiario/config"
	"p9e.in/geodiario/middleware"
	"p9e.in/geodiario/models"
)

// setupTestDB swaps config.DB for an in-memory SQLite database for the
// duration of one test. A single connection keeps the memory database
// alive and shared across transactions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Cliente{}, &models.Diario{},
		&models.PCEDado{}, &models.PCEEstaca{},
		&models.PITDado{}, &models.PITEstaca{},
		&models.PLACADado{}, &models.PLACAPonto{},
		&models.FormDraft{},
	))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

const pceCreateBody = `{
	"tipo": "PCE",
	"clienteNome": "Construtora Alfa",
	"endereco": "Obra km 12, rodovia SP-330",
	"data": "2026-03-10",
	"horaInicio": "07:30",
	"horaFim": "17:00",
	"pce": {
		"dado": {
			"tipoEnsaio": "PRE_MOLDADA",
			"equipamento": "Macaco 200t",
			"equipCravacao": "Bate-estaca D-30"
		},
		"estacas": [
			{"estacaNome": "E-01", "profundidade": "12,5", "cargaTrabalho": "60"},
			{"estacaNome": "E-02", "profundidade": "11,0"}
		]
	}
}`

func postDiary(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := middleware.GenerateToken(uuid.New().String(), "user", "Ana", "ana@geotest.com.br")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/diaries", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.JWTMiddleware(http.HandlerFunc(CreateDiary)).ServeHTTP(rr, req)
	return rr
}

func TestCreateDiaryPersistsFullTree(t *testing.T) {
	db := setupTestDB(t)

	rr := postDiary(t, pceCreateBody)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created models.Diario
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	var nDiarios int64
	require.NoError(t, db.Model(&models.Diario{}).Count(&nDiarios).Error)
	require.EqualValues(t, 1, nDiarios)

	var dado models.PCEDado
	require.NoError(t, db.Where("diario_id = ?", created.ID).First(&dado).Error)
	require.Equal(t, "PRE_MOLDADA", dado.TipoEnsaio)
	// gated group must not be persisted for non-HELICOIDAL subtypes
	require.Empty(t, dado.EquipCravacao)

	var estacas []models.PCEEstaca
	require.NoError(t, db.Where("pce_dado_id = ?", dado.ID).Order("ordem asc").Find(&estacas).Error)
	require.Len(t, estacas, 2)
	require.Equal(t, 1, estacas[0].Ordem)
	require.Equal(t, "E-01", estacas[0].EstacaNome)
	require.Equal(t, "12,5", estacas[0].Profundidade)
	require.Equal(t, 2, estacas[1].Ordem)
	require.Equal(t, "E-02", estacas[1].EstacaNome)
}

func TestCreateDiaryRollsBackWhenDetailInsertFails(t *testing.T) {
	db := setupTestDB(t)

	// Losing the detail table makes the second insert of the transaction
	// fail after the parent insert already succeeded.
	require.NoError(t, db.Migrator().DropTable(&models.PCEDado{}))

	rr := postDiary(t, pceCreateBody)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var nDiarios, nEstacas int64
	require.NoError(t, db.Model(&models.Diario{}).Count(&nDiarios).Error)
	require.NoError(t, db.Model(&models.PCEEstaca{}).Count(&nEstacas).Error)
	require.EqualValues(t, 0, nDiarios, "parent row must be rolled back")
	require.EqualValues(t, 0, nEstacas)
}

func TestDeleteDiaryRemovesTreeChildrenFirst(t *testing.T) {
	db := setupTestDB(t)

	var req createDiaryReq
	require.NoError(t, json.Unmarshal([]byte(`{
		"tipo": "PIT",
		"clienteNome": "Construtora Beta",
		"endereco": "Canteiro central",
		"data": "2026-04-02",
		"pit": {
			"dado": {"equipamento": "PIT Collector", "totalEstacas": 2},
			"estacas": [
				{"estacaNome": "P-01", "diametro": "40"},
				{"estacaNome": "P-02", "diametro": "40"}
			]
		}
	}`), &req))

	d := req.Diario
	d.CreatedBy = uuid.New()
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return insertDiaryTree(tx, &req, &d)
	}))

	var deleted []string
	require.NoError(t, db.Callback().Delete().After("gorm:delete").
		Register("test_record_delete_order", func(tx *gorm.DB) {
			deleted = append(deleted, tx.Statement.Table)
		}))

	httpReq := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/diaries/"+d.ID.String(), nil)
	httpReq = mux.SetURLVars(httpReq, map[string]string{"id": d.ID.String()})
	rr := httptest.NewRecorder()
	DeleteDiary(rr, httpReq)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	require.Equal(t, []string{"pit_estacas", "pit_dados", "diarios"}, deleted)

	for _, model := range []interface{}{
		&models.Diario{}, &models.PITDado{}, &models.PITEstaca{},
	} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		require.EqualValues(t, 0, n)
	}
}

func TestUserEmailReusableAfterSoftDelete(t *testing.T) {
	db := setupTestDB(t)

	u1 := models.User{Name: "Ana", Email: "ana@geotest.com.br", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&u1).Error)

	dup := models.User{Name: "Outra Ana", Email: "ana@geotest.com.br", PasswordHash: "x", Role: models.RoleUser}
	require.Error(t, db.Create(&dup).Error, "live duplicate must still be rejected")

	require.NoError(t, db.Delete(&u1).Error)

	u2 := models.User{Name: "Ana de novo", Email: "ana@geotest.com.br", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&u2).Error, "email must be free once the old account is soft-deleted")
}
