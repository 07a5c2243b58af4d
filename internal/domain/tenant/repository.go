package tenant

import (
	"context"

	"github.com/google/uuid"
)

// SettingsPatch carries a partial settings update. Nil sections and nil
// fields are left untouched.
type SettingsPatch struct {
	Boleto    *BoletoSettingsPatch
	Responses *ResponseSettingsPatch
	Media     *MediaSettingsPatch
}

// BoletoSettingsPatch is a partial update of BoletoSettings.
type BoletoSettingsPatch struct {
	DaysBeforeDue         *int
	DaysAfterDue          *int
	DirectSendSituations  []string
	LagCheckSituations    []string
	LagCheckThresholdDays *int
}

// ResponseSettingsPatch is a partial update of ResponseSettings.
type ResponseSettingsPatch struct {
	Success                  *string
	RegularizationMotorcycle *string
	RegularizationVehicle    *string
	Settled                  *string
}

// MediaSettingsPatch is a partial update of MediaSettings.
type MediaSettingsPatch struct {
	Enabled            *bool
	MotorcycleVideoURL *string
	CarVideoURL        *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *SettingsPatch) IsEmpty() bool {
	return p == nil || (p.Boleto == nil && p.Responses == nil && p.Media == nil)
}

// ClientRepository is the persistence contract for client records and their
// policy settings.
type ClientRepository interface {
	// FindByID loads a client together with its settings. Returns
	// shared.ErrNotFound when the client or any settings section is missing.
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// Create persists a new client with all settings sections atomically.
	Create(ctx context.Context, client *Client) error

	// UpdateSettings applies a partial settings update to an existing client.
	UpdateSettings(ctx context.Context, id uuid.UUID, patch *SettingsPatch) error
}
