// Package tenantcfg provisions clients of the resolution service and manages
// their policy settings.
package tenantcfg

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcpfinanceiro/backend/internal/domain/shared"
	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
)

// Service handles client provisioning and settings updates.
type Service struct {
	clients tenant.ClientRepository
	logger  *zap.Logger
}

// NewService creates a tenantcfg Service.
func NewService(clients tenant.ClientRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{clients: clients, logger: logger}
}

// Create provisions a new client with its settings. The lookup-window
// invariant (daysBefore + daysAfter <= 30) is enforced before persisting.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	client := &tenant.Client{
		ID:           uuid.New(),
		Name:         req.Name,
		Active:       active,
		ERPToken:     req.ERPToken,
		ChatToken:    req.ChatToken,
		ChannelToken: req.ChannelToken,
		ERPBaseURL:   req.ERPBaseURL,
		Boleto: tenant.BoletoSettings{
			DaysBeforeDue:         req.Boleto.DaysBeforeDue,
			DaysAfterDue:          req.Boleto.DaysAfterDue,
			DirectSendSituations:  req.Boleto.DirectSendSituations,
			LagCheckSituations:    req.Boleto.LagCheckSituations,
			LagCheckThresholdDays: req.Boleto.LagCheckThresholdDays,
		},
		Responses: tenant.ResponseSettings{
			Success:                  req.Responses.Success,
			RegularizationMotorcycle: req.Responses.RegularizationMotorcycle,
			RegularizationVehicle:    req.Responses.RegularizationVehicle,
			Settled:                  req.Responses.Settled,
		},
		Media: tenant.MediaSettings{
			Enabled:            req.Media.Enabled,
			MotorcycleVideoURL: req.Media.MotorcycleVideoURL,
			CarVideoURL:        req.Media.CarVideoURL,
		},
	}
	client.ApplyDefaults()

	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("name", client.Name),
	)

	response := ToClientResponse(client)
	return &response, nil
}

// Get loads a client with its settings.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// PatchSettings applies a partial settings update. The window invariant is
// re-validated against the merged result, not just the patch.
func (s *Service) PatchSettings(ctx context.Context, id uuid.UUID, patch *tenant.SettingsPatch) (*ClientResponse, error) {
	if patch.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Settings patch cannot be empty")
	}

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := client.Boleto
	if b := patch.Boleto; b != nil {
		if b.DaysBeforeDue != nil {
			merged.DaysBeforeDue = *b.DaysBeforeDue
		}
		if b.DaysAfterDue != nil {
			merged.DaysAfterDue = *b.DaysAfterDue
		}
		if b.LagCheckThresholdDays != nil {
			merged.LagCheckThresholdDays = b.LagCheckThresholdDays
		}
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if err := s.clients.UpdateSettings(ctx, id, patch); err != nil {
		return nil, err
	}

	s.logger.Info("Client settings updated", zap.String("client_id", id.String()))

	updated, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(updated)
	return &response, nil
}
