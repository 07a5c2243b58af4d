package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcpfinanceiro/backend/internal/application/resolution"
	"github.com/mcpfinanceiro/backend/internal/infrastructure/logger"
	"github.com/mcpfinanceiro/backend/internal/infrastructure/telemetry"
)

// clientIDHeader carries the tenant ID when the webhook body omits it.
const clientIDHeader = "X-Client-Id"

// Resolver runs one boleto resolution. Satisfied by *resolution.Service.
type Resolver interface {
	Resolve(ctx context.Context, req resolution.Request) resolution.Outcome
}

// WebhookHandler handles the inbound resolution webhooks.
type WebhookHandler struct {
	BaseHandler
	resolver Resolver
	metrics  *telemetry.ResolutionMetrics
}

// NewWebhookHandler creates a new WebhookHandler. metrics may be nil.
func NewWebhookHandler(resolver Resolver, metrics *telemetry.ResolutionMetrics) *WebhookHandler {
	return &WebhookHandler{resolver: resolver, metrics: metrics}
}

// WebhookRequest is the direct webhook payload. ClientID may instead arrive
// in the X-Client-Id header.
type WebhookRequest struct {
	Plate    string `json:"placa" binding:"required"`
	Phone    string `json:"telefone" binding:"required"`
	ClientID string `json:"client_id" binding:"omitempty,uuid"`
}

// WebhookResponse is the direct webhook reply.
type WebhookResponse struct {
	Message string `json:"message"`
}

// Resolve godoc
// @Summary      Resolve a boleto for a vehicle
// @Description  Finds the tenant's governing boleto for the plate and returns the message to relay to the customer. Payment media are pushed asynchronously.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        X-Client-Id header string false "Tenant client ID (fallback when absent from the body)"
// @Param        request body WebhookRequest true "Plate, phone and tenant"
// @Success      200 {object} WebhookResponse
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /webhook [post]
func (h *WebhookHandler) Resolve(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	clientIDStr := req.ClientID
	if clientIDStr == "" {
		clientIDStr = c.GetHeader(clientIDHeader)
	}
	if clientIDStr == "" {
		h.BadRequest(c, "client_id is required (body or X-Client-Id header)")
		return
	}
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		h.BadRequest(c, "client_id must be a valid UUID")
		return
	}

	outcome := h.resolve(c, resolution.Request{
		ClientID: clientID,
		Plate:    NormalizePlate(req.Plate),
		Phone:    NormalizePhoneDigits(req.Phone),
	})

	c.JSON(http.StatusOK, WebhookResponse{Message: outcome.Message})
}

// ProviderWebhookRequest is the chat provider's form-completion payload.
type ProviderWebhookRequest struct {
	Metadata struct {
		IntegrationKey string `json:"chave_integracao" binding:"required,uuid"`
	} `json:"metadata" binding:"required"`
	Questions struct {
		VehiclePlate struct {
			Answer string `json:"answer" binding:"required"`
		} `json:"placa_veiculo" binding:"required"`
	} `json:"questions" binding:"required"`
	Contact struct {
		PhoneNumber string `json:"phonenumber" binding:"required"`
	} `json:"contact" binding:"required"`
}

// ProviderWebhookResponse is the provider webhook reply. Response tells the
// provider which conversation flow to continue with.
type ProviderWebhookResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

// ResolveProvider godoc
// @Summary      Resolve a boleto from a chat provider form
// @Description  Same resolution as the direct webhook, fed by the chat provider's form-completion payload. The response field drives the provider's next conversation flow.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        request body ProviderWebhookRequest true "Provider form payload"
// @Success      200 {object} ProviderWebhookResponse
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /integrations/webhook [post]
func (h *WebhookHandler) ResolveProvider(c *gin.Context) {
	var req ProviderWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	clientID, err := uuid.Parse(req.Metadata.IntegrationKey)
	if err != nil {
		h.BadRequest(c, "chave_integracao must be a valid UUID")
		return
	}

	outcome := h.resolve(c, resolution.Request{
		ClientID: clientID,
		Plate:    NormalizePlate(req.Questions.VehiclePlate.Answer),
		Phone:    NormalizePhoneDigits(req.Contact.PhoneNumber),
	})

	c.JSON(http.StatusOK, ProviderWebhookResponse{
		Message:  outcome.Message,
		Response: string(outcome.Channel),
	})
}

func (h *WebhookHandler) resolve(c *gin.Context, req resolution.Request) resolution.Outcome {
	ctx := c.Request.Context()
	outcome := h.resolver.Resolve(ctx, req)

	logger.GetGinLogger(c).Info("Resolution completed",
		resolutionFields(req, outcome)...,
	)
	if h.metrics != nil {
		h.metrics.RecordResolution(ctx, string(outcome.Channel), outcome.Reason)
	}
	return outcome
}

func resolutionFields(req resolution.Request, outcome resolution.Outcome) []zap.Field {
	return []zap.Field{
		zap.String("client_id", req.ClientID.String()),
		zap.String("plate", req.Plate),
		zap.String("channel", string(outcome.Channel)),
		zap.String("reason", outcome.Reason),
	}
}

// NormalizePlate upper-cases a plate and strips spaces and hyphens.
func NormalizePlate(plate string) string {
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return strings.ToUpper(plate)
}

// NormalizePhoneDigits strips everything but digits from a phone number.
func NormalizePhoneDigits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
