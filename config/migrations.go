package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/geodiario/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10012026_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Cliente{}, &models.Diario{},
					&models.PCEDado{}, &models.PCEEstaca{},
					&models.PITDado{}, &models.PITEstaca{},
					&models.PLACADado{}, &models.PLACAPonto{})
			},
		},
		{
			ID: "10012026_add_form_drafts",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.FormDraft{})
			},
		},
		{
			// One-time backfill for rows imported from the old app, which
			// left the tipo flag blank and relied on child-table presence.
			// After this runs the listing's inference is only a safety net.
			ID: "12012026_infer_missing_diary_types",
			Migrate: func(tx *gorm.DB) error {
				placaIDs, pitIDs, pceIDs, err := ChildPresenceSets(tx)
				if err != nil {
					return err
				}

				var blank []models.Diario
				if err := tx.Where("tipo = '' OR tipo IS NULL").Find(&blank).Error; err != nil {
					return err
				}
				for _, d := range blank {
					tipo := models.InferDiaryType("", d.ID, placaIDs, pitIDs, pceIDs)
					if tipo == "" {
						continue
					}
					if err := tx.Model(&models.Diario{}).Where("id = ?", d.ID).
						Update("tipo", tipo).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			// Scope email uniqueness to live rows. The original index also
			// covered soft-deleted users, so a removed account blocked its
			// email forever.
			ID: "15012026_users_email_partial_unique",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("DROP INDEX IF EXISTS idx_users_email").Error; err != nil {
					return err
				}
				return tx.AutoMigrate(&models.User{})
			},
		},
	})
	return m.Migrate()
}

// ChildPresenceSets bulk-loads the diary ids present in each type-specific
// detail table. Shared by the inference migration and the listing fallback.
func ChildPresenceSets(tx *gorm.DB) (placa, pit, pce map[uuid.UUID]bool, err error) {
	load := func(model interface{}) (map[uuid.UUID]bool, error) {
		var ids []uuid.UUID
		if err := tx.Model(model).Pluck("diario_id", &ids).Error; err != nil {
			return nil, err
		}
		set := make(map[uuid.UUID]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		return set, nil
	}

	if placa, err = load(&models.PLACADado{}); err != nil {
		return nil, nil, nil, err
	}
	if pit, err = load(&models.PITDado{}); err != nil {
		return nil, nil, nil, err
	}
	if pce, err = load(&models.PCEDado{}); err != nil {
		return nil, nil, nil, err
	}
	return placa, pit, pce, nil
}
