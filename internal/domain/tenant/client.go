// Package tenant holds the per-client policy configuration that drives the
// boleto resolution engine.
package tenant

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mcpfinanceiro/backend/internal/domain/shared"
)

// DefaultERPBaseURL is used when a client record carries no base URL.
const DefaultERPBaseURL = "https://api.hinova.com.br/api/sga/v2"

// Policy defaults applied when a client record leaves them unset.
var (
	DefaultDirectSendSituations = []string{"ATIVO"}
	DefaultLagCheckSituations   = []string{"INADIMPLENTE"}
)

// DefaultLagCheckThresholdDays is the default number of days a lag-checked
// boleto may be past due and still be delivered.
const DefaultLagCheckThresholdDays = 2

// maxWindowDays caps the lookup window size accepted by the ERP.
const maxWindowDays = 30

// BoletoSettings controls the lookup window and the situation-based delivery
// policy. Nil situation lists and a nil threshold mean "never configured" and
// take the product defaults; an empty list and an explicit zero are valid
// configured values and are honored as stored.
type BoletoSettings struct {
	DaysBeforeDue         int
	DaysAfterDue          int
	DirectSendSituations  []string
	LagCheckSituations    []string
	LagCheckThresholdDays *int
}

// ResponseSettings holds the tenant-supplied message templates.
type ResponseSettings struct {
	Success                  string
	RegularizationMotorcycle string
	RegularizationVehicle    string
	Settled                  string
}

// MediaSettings controls inspection-video delivery.
type MediaSettings struct {
	Enabled            bool
	MotorcycleVideoURL string
	CarVideoURL        string
}

// ChannelCredentials identify the tenant against the chat provider.
type ChannelCredentials struct {
	Token   string
	Channel string
}

// Client is a tenant of the resolution service together with its policy
// configuration. It is read-only to the engine.
type Client struct {
	ID           uuid.UUID
	Name         string
	Active       bool
	ERPToken     string
	ChatToken    string
	ChannelToken string
	ERPBaseURL   string

	Boleto    BoletoSettings
	Responses ResponseSettings
	Media     MediaSettings
}

// ApplyDefaults fills absent policy fields with the product defaults. Only
// truly unset fields are touched: an explicitly empty situation list or a
// threshold of zero is a deliberate configuration and survives as-is.
func (c *Client) ApplyDefaults() {
	if c.ERPBaseURL == "" {
		c.ERPBaseURL = DefaultERPBaseURL
	}
	if c.Boleto.DirectSendSituations == nil {
		c.Boleto.DirectSendSituations = append([]string(nil), DefaultDirectSendSituations...)
	}
	if c.Boleto.LagCheckSituations == nil {
		c.Boleto.LagCheckSituations = append([]string(nil), DefaultLagCheckSituations...)
	}
	if c.Boleto.LagCheckThresholdDays == nil {
		d := DefaultLagCheckThresholdDays
		c.Boleto.LagCheckThresholdDays = &d
	}
}

// ERPCredentials returns the credentials for ERP calls on behalf of this
// client.
func (c *Client) ERPCredentials() (baseURL, token string) {
	return c.ERPBaseURL, c.ERPToken
}

// MessagingCredentials returns the credentials for chat dispatches on behalf
// of this client.
func (c *Client) MessagingCredentials() ChannelCredentials {
	return ChannelCredentials{Token: c.ChatToken, Channel: c.ChannelToken}
}

// Validate checks the invariants a client record must satisfy before being
// persisted.
func (c *Client) Validate() error {
	if c.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Client name is required")
	}
	if c.ERPToken == "" || c.ChatToken == "" || c.ChannelToken == "" {
		return shared.NewDomainError("INVALID_INPUT", "ERP and chat tokens are required")
	}
	if err := c.Boleto.Validate(); err != nil {
		return err
	}
	return c.Responses.Validate()
}

// Validate enforces the lookup-window invariant.
func (s BoletoSettings) Validate() error {
	if s.DaysBeforeDue < 0 || s.DaysAfterDue < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Lookup window days cannot be negative")
	}
	if s.DaysBeforeDue+s.DaysAfterDue > maxWindowDays {
		return shared.NewDomainError("INVALID_INPUT", "Lookup window cannot span more than 30 days")
	}
	if s.LagCheckThresholdDays != nil && *s.LagCheckThresholdDays < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Lag-check threshold cannot be negative")
	}
	return nil
}

// ThresholdDays returns the lag-check threshold, falling back to the product
// default when the tenant never configured one.
func (s BoletoSettings) ThresholdDays() int {
	if s.LagCheckThresholdDays == nil {
		return DefaultLagCheckThresholdDays
	}
	return *s.LagCheckThresholdDays
}

// Validate ensures every template is present.
func (r ResponseSettings) Validate() error {
	if r.Success == "" || r.RegularizationMotorcycle == "" || r.RegularizationVehicle == "" || r.Settled == "" {
		return shared.NewDomainError("INVALID_INPUT", "All response templates are required")
	}
	return nil
}

// RequiresLagCheck reports whether the vehicle situation falls under the
// due-date-lag policy. Matching trims surrounding whitespace and is case
// sensitive: tenant vocabularies are stored exactly as the ERP emits them.
func (s BoletoSettings) RequiresLagCheck(situation string) bool {
	return containsSituation(s.LagCheckSituations, situation)
}

// AllowsDirectSend reports whether the vehicle situation permits immediate
// delivery.
func (s BoletoSettings) AllowsDirectSend(situation string) bool {
	return containsSituation(s.DirectSendSituations, situation)
}

// InspectionVideoURL returns the classification-appropriate inspection video,
// or empty when none is configured.
func (m MediaSettings) InspectionVideoURL(motorcycle bool) string {
	if motorcycle {
		return m.MotorcycleVideoURL
	}
	return m.CarVideoURL
}

func containsSituation(set []string, situation string) bool {
	target := strings.TrimSpace(situation)
	for _, s := range set {
		if strings.TrimSpace(s) == target {
			return true
		}
	}
	return false
}
