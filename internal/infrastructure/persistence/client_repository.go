// Package persistence provides GORM-backed repository implementations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mcpfinanceiro/backend/internal/domain/shared"
	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
	"github.com/mcpfinanceiro/backend/internal/infrastructure/persistence/models"
)

// GormClientRepository implements tenant.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID loads a client together with its settings sections. A client whose
// settings rows are missing is treated as not found: the engine cannot resolve
// without templates.
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Client, error) {
	var clientRow models.ClientModel
	if err := r.db.WithContext(ctx).First(&clientRow, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var boletoRow models.BoletoSettingsModel
	if err := r.db.WithContext(ctx).First(&boletoRow, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var responseRow models.ResponseSettingsModel
	if err := r.db.WithContext(ctx).First(&responseRow, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var mediaRow models.MediaSettingsModel
	if err := r.db.WithContext(ctx).First(&mediaRow, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	client := models.ToDomain(&clientRow, &boletoRow, &responseRow, &mediaRow)
	client.ApplyDefaults()
	return client, nil
}

// Create persists a new client with all settings sections atomically.
func (r *GormClientRepository) Create(ctx context.Context, client *tenant.Client) error {
	clientRow, boletoRow, responseRow, mediaRow := models.FromDomain(client)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clientRow).Error; err != nil {
			return err
		}
		if err := tx.Create(boletoRow).Error; err != nil {
			return err
		}
		if err := tx.Create(responseRow).Error; err != nil {
			return err
		}
		return tx.Create(mediaRow).Error
	})
}

// UpdateSettings applies a partial settings update to an existing client.
// Each provided section updates only the fields that are set in the patch.
func (r *GormClientRepository) UpdateSettings(ctx context.Context, id uuid.UUID, patch *tenant.SettingsPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clientRow models.ClientModel
		if err := tx.Select("id").First(&clientRow, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if patch.Boleto != nil {
			updates := boletoUpdates(patch.Boleto)
			if len(updates) > 0 {
				if err := applySectionUpdate(tx, &models.BoletoSettingsModel{}, id, updates); err != nil {
					return err
				}
			}
		}
		if patch.Responses != nil {
			updates := responseUpdates(patch.Responses)
			if len(updates) > 0 {
				if err := applySectionUpdate(tx, &models.ResponseSettingsModel{}, id, updates); err != nil {
					return err
				}
			}
		}
		if patch.Media != nil {
			updates := mediaUpdates(patch.Media)
			if len(updates) > 0 {
				if err := applySectionUpdate(tx, &models.MediaSettingsModel{}, id, updates); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func applySectionUpdate(tx *gorm.DB, model interface{}, clientID uuid.UUID, updates map[string]interface{}) error {
	result := tx.Model(model).Where("client_id = ?", clientID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func boletoUpdates(p *tenant.BoletoSettingsPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if p.DaysBeforeDue != nil {
		updates["days_before_due"] = *p.DaysBeforeDue
	}
	if p.DaysAfterDue != nil {
		updates["days_after_due"] = *p.DaysAfterDue
	}
	if p.DirectSendSituations != nil {
		updates["direct_send_situations"] = pq.StringArray(p.DirectSendSituations)
	}
	if p.LagCheckSituations != nil {
		updates["lag_check_situations"] = pq.StringArray(p.LagCheckSituations)
	}
	if p.LagCheckThresholdDays != nil {
		updates["lag_check_threshold_days"] = *p.LagCheckThresholdDays
	}
	return updates
}

func responseUpdates(p *tenant.ResponseSettingsPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Success != nil {
		updates["success"] = *p.Success
	}
	if p.RegularizationMotorcycle != nil {
		updates["regularization_motorcycle"] = *p.RegularizationMotorcycle
	}
	if p.RegularizationVehicle != nil {
		updates["regularization_vehicle"] = *p.RegularizationVehicle
	}
	if p.Settled != nil {
		updates["settled"] = *p.Settled
	}
	return updates
}

func mediaUpdates(p *tenant.MediaSettingsPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Enabled != nil {
		updates["enabled"] = *p.Enabled
	}
	if p.MotorcycleVideoURL != nil {
		updates["motorcycle_video_url"] = *p.MotorcycleVideoURL
	}
	if p.CarVideoURL != nil {
		updates["car_video_url"] = *p.CarVideoURL
	}
	return updates
}
