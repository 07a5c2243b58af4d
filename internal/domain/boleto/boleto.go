// Package boleto contains the financial record model returned by the SGA ERP
// and the pure decision helpers that operate on it.
package boleto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Lifecycle states as emitted by the SGA ERP. Anything else is treated as a
// blocked state that requires manual regularization.
const (
	StatusSettled = "BAIXADO"
	StatusOpen    = "ABERTO"
)

// motorcycleFipePrefix marks the FIPE classification range for motorcycles.
const motorcycleFipePrefix = "81"

// Pix holds the instant-payment data attached to a boleto.
type Pix struct {
	QRCode    string `json:"qrcode,omitempty"`
	CopyPaste string `json:"copia_cola,omitempty"`
}

// Vehicle is a vehicle associated with a boleto.
type Vehicle struct {
	Code      int64  `json:"codigo_veiculo"`
	TypeCode  string `json:"codigo_tipo_veiculo"`
	Plate     string `json:"placa"`
	Chassis   string `json:"chassi"`
	FipeCode  string `json:"codigo_fipe"`
	Model     string `json:"modelo"`
	Situation string `json:"situacao_veiculo"`
}

// Boleto is a payable installment issued by the ERP. Field names mirror the
// SGA wire contract.
type Boleto struct {
	OurNumber     int64     `json:"nosso_numero"`
	DigitableLine string    `json:"linha_digitavel"`
	Link          string    `json:"link_boleto"`
	ShortLink     string    `json:"short_link"`
	Amount        string    `json:"valor_boleto"`
	DueDate       string    `json:"data_vencimento"`
	Status        string    `json:"situacao_boleto"`
	Pix           *Pix      `json:"pix"`
	Vehicles      []Vehicle `json:"veiculos"`
}

// VehicleLookup is the result of a standalone vehicle search by plate.
type VehicleLookup struct {
	Code      string `json:"codigo_veiculo"`
	Plate     string `json:"placa"`
	FipeCode  string `json:"codigo_fipe"`
	Situation string `json:"descricao_situacao"`
}

// IsSettled reports whether the boleto has been paid or closed.
func (b *Boleto) IsSettled() bool {
	return b.Status == StatusSettled
}

// IsOpen reports whether the boleto is currently payable.
func (b *Boleto) IsOpen() bool {
	return b.Status == StatusOpen
}

// GoverningVehicle returns the vehicle whose situation drives policy
// decisions. The ERP lists the governing vehicle first.
func (b *Boleto) GoverningVehicle() (Vehicle, bool) {
	if len(b.Vehicles) == 0 {
		return Vehicle{}, false
	}
	return b.Vehicles[0], true
}

// PaymentCode returns the preferred machine-payable code: the PIX copy-paste
// string when present, otherwise the digitable line.
func (b *Boleto) PaymentCode() string {
	if b.Pix != nil && b.Pix.CopyPaste != "" {
		return b.Pix.CopyPaste
	}
	return b.DigitableLine
}

// PaymentLink returns the preferred document link: the canonical link when
// present, otherwise the shortened fallback.
func (b *Boleto) PaymentLink() string {
	if b.Link != "" {
		return b.Link
	}
	return b.ShortLink
}

// DisplayAmount normalizes the amount for customer-facing messages. The ERP
// sends amounts as text; when it parses as a decimal it is reformatted with
// two fraction digits, otherwise the raw text is kept.
func (b *Boleto) DisplayAmount() string {
	d, err := decimal.NewFromString(strings.TrimSpace(b.Amount))
	if err != nil {
		return b.Amount
	}
	return d.StringFixed(2)
}

// IsMotorcycle reports whether a FIPE classification code denotes a
// motorcycle.
func IsMotorcycle(fipeCode string) bool {
	return strings.HasPrefix(strings.TrimSpace(fipeCode), motorcycleFipePrefix)
}
