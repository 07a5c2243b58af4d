package boleto

import "context"

// Credentials identify the tenant against the ERP. Each tenant carries its
// own API base URL and bearer token.
type Credentials struct {
	BaseURL string
	Token   string
}

// Query is the boleto lookup request: a plate plus an inclusive due-date
// window in the dd/mm/yyyy wire form.
type Query struct {
	Plate    string
	DueStart string
	DueEnd   string
}

// Provider is the outbound ERP contract consumed by the resolution engine.
// Implementations fail with a transport error on non-success responses; the
// engine converts such failures into user-facing diagnostics.
type Provider interface {
	// ListBoletos returns the boletos attached to a vehicle plate whose due
	// dates fall inside the query window.
	ListBoletos(ctx context.Context, creds Credentials, q Query) ([]Boleto, error)

	// FindVehicle looks up a vehicle by plate alone.
	FindVehicle(ctx context.Context, creds Credentials, plate string) ([]VehicleLookup, error)
}
