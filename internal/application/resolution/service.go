// Package resolution implements the boleto resolution engine: given a plate,
// a phone number and a tenant, it decides what to tell the customer and which
// media to push as best-effort side effects.
package resolution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcpfinanceiro/backend/internal/domain/boleto"
	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
	"github.com/mcpfinanceiro/backend/internal/infrastructure/telemetry"
)

// Fixed customer-facing copy for terminal non-error outcomes.
const (
	msgClientUnavailable = "Cliente não encontrado ou inativo."
	msgVehicleNotFound   = "Veículo não encontrado."
	msgBoletoLookupError = "Erro ao buscar boleto: "
	msgVehicleLookupErr  = "Erro ao buscar veículo: "
)

// Template variables substituted into the success template.
const (
	varDueDate = "data_vencimento"
	varAmount  = "valor_boleto"
)

// Channel communicates whether the governing boleto was actively payable.
type Channel string

// Channel values returned to integrations.
const (
	ChannelActive  Channel = "active"
	ChannelBlocked Channel = "blocked"
)

// Outcome reasons, used for logging and metrics.
const (
	ReasonDelivered         = "delivered"
	ReasonSettled           = "settled"
	ReasonRegularization    = "regularization"
	ReasonClientUnavailable = "client_unavailable"
	ReasonVehicleNotFound   = "vehicle_not_found"
	ReasonERPError          = "erp_error"
)

// ClientStore loads tenant policy configuration. It is the read-only slice of
// tenant.ClientRepository the engine needs.
type ClientStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Client, error)
}

// MediaDispatcher fires best-effort outbound notifications. Calls return
// immediately; delivery failures are swallowed by the implementation and must
// never surface here.
type MediaDispatcher interface {
	SendPaymentCode(creds tenant.ChannelCredentials, phone, code string)
	SendPaymentLink(creds tenant.ChannelCredentials, phone, link string)
	SendInspectionVideo(creds tenant.ChannelCredentials, phone, videoURL string)
}

// Request is a single resolution request. Plate and phone arrive already
// normalized by the transport layer.
type Request struct {
	ClientID uuid.UUID
	Plate    string
	Phone    string
}

// Outcome is the decision returned to the caller. Reason is internal
// bookkeeping; Message and Channel are the public contract.
type Outcome struct {
	Message string
	Channel Channel
	Reason  string
}

// Service orchestrates the end-to-end resolution. It holds no per-request
// state; every resolution is an independent computation over injected
// collaborators.
type Service struct {
	clients    ClientStore
	erp        boleto.Provider
	dispatcher MediaDispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a resolution Service.
func NewService(clients ClientStore, erp boleto.Provider, dispatcher MediaDispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		clients:    clients,
		erp:        erp,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Resolve runs the full decision for one plate + phone request. Failures
// degrade to a sayable message; the caller always gets an Outcome.
func (s *Service) Resolve(ctx context.Context, req Request) Outcome {
	ctx, span := telemetry.StartServiceSpan(ctx, "resolution", "resolve",
		telemetry.WithAttribute(telemetry.SpanAttrClientID, req.ClientID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrPlate, req.Plate),
	)
	defer span.End()

	out := s.resolve(ctx, req)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrChannel, string(out.Channel),
		telemetry.SpanAttrReason, out.Reason,
	)
	if out.Reason != ReasonERPError {
		telemetry.SetOK(span)
	}
	return out
}

func (s *Service) resolve(ctx context.Context, req Request) Outcome {
	log := s.logger.With(
		zap.String("client_id", req.ClientID.String()),
		zap.String("plate", req.Plate),
	)

	client, err := s.clients.FindByID(ctx, req.ClientID)
	if err != nil {
		log.Warn("Client lookup failed", zap.Error(err))
		return Outcome{Message: msgClientUnavailable, Channel: ChannelBlocked, Reason: ReasonClientUnavailable}
	}
	if !client.Active {
		log.Info("Client is inactive")
		return Outcome{Message: msgClientUnavailable, Channel: ChannelBlocked, Reason: ReasonClientUnavailable}
	}
	client.ApplyDefaults()

	today := s.now()
	start, end := boleto.LookupWindow(today, client.Boleto.DaysBeforeDue, client.Boleto.DaysAfterDue)
	baseURL, token := client.ERPCredentials()
	creds := boleto.Credentials{BaseURL: baseURL, Token: token}

	records, err := s.erp.ListBoletos(ctx, creds, boleto.Query{
		Plate:    req.Plate,
		DueStart: boleto.FormatBR(start),
		DueEnd:   boleto.FormatBR(end),
	})
	if err != nil {
		log.Error("Boleto lookup failed", zap.Error(err))
		return Outcome{Message: msgBoletoLookupError + err.Error(), Channel: ChannelBlocked, Reason: ReasonERPError}
	}

	if record, ok := boleto.SelectGoverning(records); ok {
		return s.resolveBoleto(log, client, record, req.Phone, today)
	}

	vehicles, err := s.erp.FindVehicle(ctx, creds, req.Plate)
	if err != nil {
		log.Error("Vehicle lookup failed", zap.Error(err))
		return Outcome{Message: msgVehicleLookupErr + err.Error(), Channel: ChannelBlocked, Reason: ReasonERPError}
	}
	if len(vehicles) == 0 {
		log.Info("Vehicle not found")
		return Outcome{Message: msgVehicleNotFound, Channel: ChannelBlocked, Reason: ReasonVehicleNotFound}
	}

	return s.resolveVehicleWithoutBoleto(client, &vehicles[0], req.Phone)
}

// resolveBoleto classifies the governing boleto and applies the tenant's
// delivery policy.
func (s *Service) resolveBoleto(log *zap.Logger, client *tenant.Client, record *boleto.Boleto, phone string, today time.Time) Outcome {
	if record.IsSettled() {
		return Outcome{Message: client.Responses.Settled, Channel: ChannelBlocked, Reason: ReasonSettled}
	}

	vehicle, _ := record.GoverningVehicle()

	if !record.IsOpen() {
		log.Info("Boleto in irregular state", zap.String("status", record.Status))
		return s.regularize(client, vehicle.FipeCode, phone)
	}

	// A situation present in both sets is lag-checked: the stricter branch
	// deliberately takes precedence.
	if client.Boleto.RequiresLagCheck(vehicle.Situation) {
		if due, err := boleto.ParseDate(record.DueDate); err == nil {
			if lag := boleto.DaysSince(due, today); lag > client.Boleto.ThresholdDays() {
				log.Info("Boleto past lag threshold",
					zap.Int("lag_days", lag),
					zap.Int("threshold_days", client.Boleto.ThresholdDays()),
				)
				return s.regularize(client, vehicle.FipeCode, phone)
			}
		}
	} else if !client.Boleto.AllowsDirectSend(vehicle.Situation) {
		log.Info("Situation not eligible for delivery", zap.String("situation", vehicle.Situation))
		return s.regularize(client, vehicle.FipeCode, phone)
	}

	return s.deliver(client, record, phone)
}

// deliver fires the payment media and renders the success template.
func (s *Service) deliver(client *tenant.Client, record *boleto.Boleto, phone string) Outcome {
	creds := client.MessagingCredentials()
	if code := record.PaymentCode(); code != "" {
		s.dispatcher.SendPaymentCode(creds, phone, code)
	}
	if link := record.PaymentLink(); link != "" {
		s.dispatcher.SendPaymentLink(creds, phone, link)
	}

	message := RenderTemplate(client.Responses.Success, map[string]string{
		varDueDate: record.DueDate,
		varAmount:  record.DisplayAmount(),
	})
	return Outcome{Message: message, Channel: ChannelActive, Reason: ReasonDelivered}
}

// regularize returns the classification-appropriate regularization template
// and pushes the inspection video when media is enabled.
func (s *Service) regularize(client *tenant.Client, fipeCode, phone string) Outcome {
	motorcycle := boleto.IsMotorcycle(fipeCode)
	if client.Media.Enabled {
		if videoURL := client.Media.InspectionVideoURL(motorcycle); videoURL != "" {
			s.dispatcher.SendInspectionVideo(client.MessagingCredentials(), phone, videoURL)
		}
	}
	return Outcome{Message: s.regularizationTemplate(client, motorcycle), Channel: ChannelBlocked, Reason: ReasonRegularization}
}

// resolveVehicleWithoutBoleto handles the no-record fallback: the vehicle
// exists but no boleto fell inside the lookup window.
func (s *Service) resolveVehicleWithoutBoleto(client *tenant.Client, vehicle *boleto.VehicleLookup, phone string) Outcome {
	motorcycle := boleto.IsMotorcycle(vehicle.FipeCode)

	permitted := client.Boleto.AllowsDirectSend(vehicle.Situation) ||
		client.Boleto.RequiresLagCheck(vehicle.Situation)
	if permitted && client.Media.Enabled {
		if videoURL := client.Media.InspectionVideoURL(motorcycle); videoURL != "" {
			s.dispatcher.SendInspectionVideo(client.MessagingCredentials(), phone, videoURL)
		}
	}

	return Outcome{Message: s.regularizationTemplate(client, motorcycle), Channel: ChannelBlocked, Reason: ReasonRegularization}
}

func (s *Service) regularizationTemplate(client *tenant.Client, motorcycle bool) string {
	if motorcycle {
		return client.Responses.RegularizationMotorcycle
	}
	return client.Responses.RegularizationVehicle
}
