package tenantcfg

import (
	"github.com/google/uuid"

	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
)

// CreateClientRequest carries everything needed to provision a tenant.
type CreateClientRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Active       *bool  `json:"active"`
	ERPToken     string `json:"erp_token" binding:"required"`
	ChatToken    string `json:"chat_token" binding:"required"`
	ChannelToken string `json:"channel_token" binding:"required"`
	ERPBaseURL   string `json:"erp_base_url" binding:"omitempty,url"`

	Boleto    BoletoSettingsInput   `json:"boleto_settings"`
	Responses ResponseSettingsInput `json:"response_settings" binding:"required"`
	Media     MediaSettingsInput    `json:"media_settings"`
}

// BoletoSettingsInput mirrors tenant.BoletoSettings for inbound payloads.
// Absent situation lists and an absent threshold fall back to the product
// defaults; explicit empty lists and an explicit zero are kept.
type BoletoSettingsInput struct {
	DaysBeforeDue         int      `json:"days_before_due" binding:"min=0"`
	DaysAfterDue          int      `json:"days_after_due" binding:"min=0"`
	DirectSendSituations  []string `json:"direct_send_situations"`
	LagCheckSituations    []string `json:"lag_check_situations"`
	LagCheckThresholdDays *int     `json:"lag_check_threshold_days" binding:"omitempty,min=0"`
}

// ResponseSettingsInput mirrors tenant.ResponseSettings for inbound payloads.
type ResponseSettingsInput struct {
	Success                  string `json:"success" binding:"required"`
	RegularizationMotorcycle string `json:"regularization_motorcycle" binding:"required"`
	RegularizationVehicle    string `json:"regularization_vehicle" binding:"required"`
	Settled                  string `json:"settled" binding:"required"`
}

// MediaSettingsInput mirrors tenant.MediaSettings for inbound payloads.
type MediaSettingsInput struct {
	Enabled            bool   `json:"enabled"`
	MotorcycleVideoURL string `json:"motorcycle_video_url" binding:"omitempty,url"`
	CarVideoURL        string `json:"car_video_url" binding:"omitempty,url"`
}

// SettingsPatchRequest is the inbound partial-update payload. Absent fields
// stay untouched.
type SettingsPatchRequest struct {
	Boleto    *BoletoSettingsPatchInput   `json:"boleto_settings"`
	Responses *ResponseSettingsPatchInput `json:"response_settings"`
	Media     *MediaSettingsPatchInput    `json:"media_settings"`
}

// BoletoSettingsPatchInput is a partial update of the boleto settings section.
type BoletoSettingsPatchInput struct {
	DaysBeforeDue         *int     `json:"days_before_due" binding:"omitempty,min=0"`
	DaysAfterDue          *int     `json:"days_after_due" binding:"omitempty,min=0"`
	DirectSendSituations  []string `json:"direct_send_situations"`
	LagCheckSituations    []string `json:"lag_check_situations"`
	LagCheckThresholdDays *int     `json:"lag_check_threshold_days" binding:"omitempty,min=0"`
}

// ResponseSettingsPatchInput is a partial update of the response templates.
type ResponseSettingsPatchInput struct {
	Success                  *string `json:"success"`
	RegularizationMotorcycle *string `json:"regularization_motorcycle"`
	RegularizationVehicle    *string `json:"regularization_vehicle"`
	Settled                  *string `json:"settled"`
}

// MediaSettingsPatchInput is a partial update of the media settings section.
type MediaSettingsPatchInput struct {
	Enabled            *bool   `json:"enabled"`
	MotorcycleVideoURL *string `json:"motorcycle_video_url" binding:"omitempty,url"`
	CarVideoURL        *string `json:"car_video_url" binding:"omitempty,url"`
}

// ToDomainPatch converts the transport patch to the repository patch.
func (r *SettingsPatchRequest) ToDomainPatch() *tenant.SettingsPatch {
	patch := &tenant.SettingsPatch{}
	if r.Boleto != nil {
		patch.Boleto = &tenant.BoletoSettingsPatch{
			DaysBeforeDue:         r.Boleto.DaysBeforeDue,
			DaysAfterDue:          r.Boleto.DaysAfterDue,
			DirectSendSituations:  r.Boleto.DirectSendSituations,
			LagCheckSituations:    r.Boleto.LagCheckSituations,
			LagCheckThresholdDays: r.Boleto.LagCheckThresholdDays,
		}
	}
	if r.Responses != nil {
		patch.Responses = &tenant.ResponseSettingsPatch{
			Success:                  r.Responses.Success,
			RegularizationMotorcycle: r.Responses.RegularizationMotorcycle,
			RegularizationVehicle:    r.Responses.RegularizationVehicle,
			Settled:                  r.Responses.Settled,
		}
	}
	if r.Media != nil {
		patch.Media = &tenant.MediaSettingsPatch{
			Enabled:            r.Media.Enabled,
			MotorcycleVideoURL: r.Media.MotorcycleVideoURL,
			CarVideoURL:        r.Media.CarVideoURL,
		}
	}
	return patch
}

// ClientResponse is the outbound representation of a client. Tokens are never
// echoed back.
type ClientResponse struct {
	ID         uuid.UUID             `json:"id"`
	Name       string                `json:"name"`
	Active     bool                  `json:"active"`
	ERPBaseURL string                `json:"erp_base_url"`
	Boleto     BoletoSettingsInput   `json:"boleto_settings"`
	Responses  ResponseSettingsInput `json:"response_settings"`
	Media      MediaSettingsInput    `json:"media_settings"`
}

// ToClientResponse maps a domain client to its outbound representation.
func ToClientResponse(c *tenant.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Active:     c.Active,
		ERPBaseURL: c.ERPBaseURL,
		Boleto: BoletoSettingsInput{
			DaysBeforeDue:         c.Boleto.DaysBeforeDue,
			DaysAfterDue:          c.Boleto.DaysAfterDue,
			DirectSendSituations:  c.Boleto.DirectSendSituations,
			LagCheckSituations:    c.Boleto.LagCheckSituations,
			LagCheckThresholdDays: c.Boleto.LagCheckThresholdDays,
		},
		Responses: ResponseSettingsInput{
			Success:                  c.Responses.Success,
			RegularizationMotorcycle: c.Responses.RegularizationMotorcycle,
			RegularizationVehicle:    c.Responses.RegularizationVehicle,
			Settled:                  c.Responses.Settled,
		},
		Media: MediaSettingsInput{
			Enabled:            c.Media.Enabled,
			MotorcycleVideoURL: c.Media.MotorcycleVideoURL,
			CarVideoURL:        c.Media.CarVideoURL,
		},
	}
}
