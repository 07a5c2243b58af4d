// Package erp implements the outbound SGA ERP client.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcpfinanceiro/backend/internal/domain/boleto"
)

// maxResponseSize is the maximum allowed response size from the SGA API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// RequestObserver receives the duration of each ERP round trip. Implementations
// must be safe for concurrent use. A nil observer disables observation.
type RequestObserver interface {
	ObserveERPRequest(ctx context.Context, operation string, elapsed time.Duration, err error)
}

// SGAClient implements boleto.Provider against the Hinova SGA HTTP API.
// Credentials are passed per call: each tenant carries its own base URL and
// bearer token.
type SGAClient struct {
	httpClient *http.Client
	observer   RequestObserver
}

// NewSGAClient creates an SGA client with the given request timeout.
func NewSGAClient(timeout time.Duration) *SGAClient {
	return &SGAClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithObserver attaches a request observer and returns the client.
func (c *SGAClient) WithObserver(obs RequestObserver) *SGAClient {
	c.observer = obs
	return c
}

type listBoletosRequest struct {
	Plate    string `json:"placa"`
	DueStart string `json:"data_vencimento_inicial"`
	DueEnd   string `json:"data_vencimento_final"`
}

// ListBoletos returns the boletos attached to a plate whose due dates fall
// inside the query window. The API answers with a bare JSON array; anything
// else is treated as an empty result, matching the SGA contract.
func (c *SGAClient) ListBoletos(ctx context.Context, creds boleto.Credentials, q boleto.Query) ([]boleto.Boleto, error) {
	endpoint := strings.TrimRight(creds.BaseURL, "/") + "/listar/boleto-associado-veiculo"

	payload, err := json.Marshal(listBoletosRequest{
		Plate:    q.Plate,
		DueStart: q.DueStart,
		DueEnd:   q.DueEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("sga: failed to encode request: %w", err)
	}

	body, err := c.do(ctx, "list_boletos", http.MethodPost, endpoint, creds.Token, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var boletos []boleto.Boleto
	if err := json.Unmarshal(body, &boletos); err != nil {
		// The API answers with an object on some error paths; treat any
		// non-array payload as no results.
		return nil, nil
	}
	return boletos, nil
}

// FindVehicle looks up a vehicle by plate alone.
func (c *SGAClient) FindVehicle(ctx context.Context, creds boleto.Credentials, plate string) ([]boleto.VehicleLookup, error) {
	endpoint := strings.TrimRight(creds.BaseURL, "/") + "/veiculo/buscar/" + url.PathEscape(plate)

	body, err := c.do(ctx, "find_vehicle", http.MethodGet, endpoint, creds.Token, nil)
	if err != nil {
		return nil, err
	}

	var vehicles []boleto.VehicleLookup
	if err := json.Unmarshal(body, &vehicles); err != nil {
		return nil, nil
	}
	return vehicles, nil
}

func (c *SGAClient) do(ctx context.Context, operation, method, endpoint, token string, reqBody io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("sga: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.observer != nil {
		c.observer.ObserveERPRequest(ctx, operation, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("sga: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("sga: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sga: %s failed: HTTP %d %s", operation, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
