// Package models contains the GORM persistence models and their conversions
// to and from the domain types.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
)

// ClientModel is the persistence model for a tenant client record.
type ClientModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Name         string    `gorm:"type:varchar(200);not null"`
	Active       bool      `gorm:"not null;default:true"`
	ERPToken     string    `gorm:"column:erp_token;type:text;not null"`
	ChatToken    string    `gorm:"type:text;not null"`
	ChannelToken string    `gorm:"type:text;not null"`
	ERPBaseURL   string    `gorm:"column:erp_base_url;type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// BoletoSettingsModel holds the lookup-window and delivery-policy settings of
// one client.
type BoletoSettingsModel struct {
	ClientID              uuid.UUID      `gorm:"type:uuid;primary_key"`
	UpdatedAt             time.Time      `gorm:"not null"`
	DaysBeforeDue         int            `gorm:"not null;default:0"`
	DaysAfterDue          int            `gorm:"not null;default:0"`
	DirectSendSituations  pq.StringArray `gorm:"type:text[]"`
	LagCheckSituations    pq.StringArray `gorm:"type:text[]"`
	LagCheckThresholdDays *int           `gorm:"type:integer"`
}

// TableName returns the table name for GORM
func (BoletoSettingsModel) TableName() string {
	return "client_boleto_settings"
}

// ResponseSettingsModel holds the message templates of one client.
type ResponseSettingsModel struct {
	ClientID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	UpdatedAt                time.Time `gorm:"not null"`
	Success                  string    `gorm:"type:text;not null"`
	RegularizationMotorcycle string    `gorm:"type:text;not null"`
	RegularizationVehicle    string    `gorm:"type:text;not null"`
	Settled                  string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ResponseSettingsModel) TableName() string {
	return "client_response_settings"
}

// MediaSettingsModel holds the inspection-video settings of one client.
type MediaSettingsModel struct {
	ClientID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UpdatedAt          time.Time `gorm:"not null"`
	Enabled            bool      `gorm:"not null;default:false"`
	MotorcycleVideoURL string    `gorm:"column:motorcycle_video_url;type:text"`
	CarVideoURL        string    `gorm:"column:car_video_url;type:text"`
}

// TableName returns the table name for GORM
func (MediaSettingsModel) TableName() string {
	return "client_media_settings"
}

// ToDomain assembles the domain Client from the client row and its settings
// rows.
func ToDomain(c *ClientModel, b *BoletoSettingsModel, r *ResponseSettingsModel, m *MediaSettingsModel) *tenant.Client {
	client := &tenant.Client{
		ID:           c.ID,
		Name:         c.Name,
		Active:       c.Active,
		ERPToken:     c.ERPToken,
		ChatToken:    c.ChatToken,
		ChannelToken: c.ChannelToken,
		ERPBaseURL:   c.ERPBaseURL,
		Boleto: tenant.BoletoSettings{
			DaysBeforeDue:         b.DaysBeforeDue,
			DaysAfterDue:          b.DaysAfterDue,
			DirectSendSituations:  []string(b.DirectSendSituations),
			LagCheckSituations:    []string(b.LagCheckSituations),
			LagCheckThresholdDays: b.LagCheckThresholdDays,
		},
		Responses: tenant.ResponseSettings{
			Success:                  r.Success,
			RegularizationMotorcycle: r.RegularizationMotorcycle,
			RegularizationVehicle:    r.RegularizationVehicle,
			Settled:                  r.Settled,
		},
		Media: tenant.MediaSettings{
			Enabled:            m.Enabled,
			MotorcycleVideoURL: m.MotorcycleVideoURL,
			CarVideoURL:        m.CarVideoURL,
		},
	}
	return client
}

// FromDomain splits a domain Client into its persistence rows.
func FromDomain(client *tenant.Client) (*ClientModel, *BoletoSettingsModel, *ResponseSettingsModel, *MediaSettingsModel) {
	c := &ClientModel{
		ID:           client.ID,
		Name:         client.Name,
		Active:       client.Active,
		ERPToken:     client.ERPToken,
		ChatToken:    client.ChatToken,
		ChannelToken: client.ChannelToken,
		ERPBaseURL:   client.ERPBaseURL,
	}
	b := &BoletoSettingsModel{
		ClientID:              client.ID,
		DaysBeforeDue:         client.Boleto.DaysBeforeDue,
		DaysAfterDue:          client.Boleto.DaysAfterDue,
		DirectSendSituations:  pq.StringArray(client.Boleto.DirectSendSituations),
		LagCheckSituations:    pq.StringArray(client.Boleto.LagCheckSituations),
		LagCheckThresholdDays: client.Boleto.LagCheckThresholdDays,
	}
	r := &ResponseSettingsModel{
		ClientID:                 client.ID,
		Success:                  client.Responses.Success,
		RegularizationMotorcycle: client.Responses.RegularizationMotorcycle,
		RegularizationVehicle:    client.Responses.RegularizationVehicle,
		Settled:                  client.Responses.Settled,
	}
	m := &MediaSettingsModel{
		ClientID:           client.ID,
		Enabled:            client.Media.Enabled,
		MotorcycleVideoURL: client.Media.MotorcycleVideoURL,
		CarVideoURL:        client.Media.CarVideoURL,
	}
	return c, b, r, m
}
