package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mcpfinanceiro/backend/internal/application/tenantcfg"
	"github.com/mcpfinanceiro/backend/internal/interfaces/http/dto"
)

// ClientHandler handles tenant client provisioning and settings endpoints.
type ClientHandler struct {
	BaseHandler
	clientService *tenantcfg.Service
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *tenantcfg.Service) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create godoc
// @Summary      Provision a client
// @Description  Creates a tenant with its boleto, response and media settings. The lookup window (days_before_due + days_after_due) may not exceed 30 days.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body tenantcfg.CreateClientRequest true "Client and settings"
// @Success      201 {object} dto.Response{data=tenantcfg.ClientResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req tenantcfg.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// Get godoc
// @Summary      Get a client
// @Description  Loads a client with its settings. Tokens are never echoed back.
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID" format(uuid)
// @Success      200 {object} dto.Response{data=tenantcfg.ClientResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.clientID(c)
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// PatchSettings godoc
// @Summary      Patch client settings
// @Description  Applies a partial settings update. The lookup-window invariant is re-validated against the merged result.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id path string true "Client ID" format(uuid)
// @Param        request body tenantcfg.SettingsPatchRequest true "Settings patch"
// @Success      200 {object} dto.Response{data=tenantcfg.ClientResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients/{id}/settings [patch]
func (h *ClientHandler) PatchSettings(c *gin.Context) {
	id, ok := h.clientID(c)
	if !ok {
		return
	}

	var req tenantcfg.SettingsPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.clientService.PatchSettings(c.Request.Context(), id, req.ToDomainPatch())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

func (h *ClientHandler) clientID(c *gin.Context) (uuid.UUID, bool) {
	var params dto.IDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		h.BadRequest(c, "Invalid client id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(params.ID)
	if err != nil {
		h.BadRequest(c, "Invalid client id")
		return uuid.Nil, false
	}
	return id, true
}
