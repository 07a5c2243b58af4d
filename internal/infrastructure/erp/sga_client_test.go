package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpfinanceiro/backend/internal/domain/boleto"
)

func TestSGAClient_ListBoletos(t *testing.T) {
	t.Run("sends window query and decodes boletos", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody listBoletosRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{
					"nosso_numero": 12345,
					"linha_digitavel": "34191.79001 01043.510047",
					"link_boleto": "https://sga.example.com/boleto/12345",
					"short_link": "https://sga.io/b/x",
					"valor_boleto": "150.5",
					"data_vencimento": "15/04/2024",
					"situacao_boleto": "ABERTO",
					"pix": {"qrcode": "qr", "copia_cola": "00020126pix"},
					"veiculos": [{"codigo_veiculo": 9, "placa": "ABC1D23", "codigo_fipe": "811234-5", "situacao_veiculo": "ATIVO"}]
				}
			]`))
		}))
		defer server.Close()

		client := NewSGAClient(5 * time.Second)
		boletos, err := client.ListBoletos(context.Background(), boleto.Credentials{BaseURL: server.URL, Token: "erp-token"}, boleto.Query{
			Plate:    "ABC1D23",
			DueStart: "10/04/2024",
			DueEnd:   "18/04/2024",
		})

		require.NoError(t, err)
		require.Len(t, boletos, 1)
		assert.Equal(t, "/listar/boleto-associado-veiculo", gotPath)
		assert.Equal(t, "Bearer erp-token", gotAuth)
		assert.Equal(t, "ABC1D23", gotBody.Plate)
		assert.Equal(t, "10/04/2024", gotBody.DueStart)
		assert.Equal(t, "18/04/2024", gotBody.DueEnd)
		assert.Equal(t, int64(12345), boletos[0].OurNumber)
		assert.Equal(t, "00020126pix", boletos[0].Pix.CopyPaste)
		assert.Equal(t, "ATIVO", boletos[0].Vehicles[0].Situation)
	})

	t.Run("non-array payload yields no results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"mensagem": "nenhum boleto"}`))
		}))
		defer server.Close()

		client := NewSGAClient(5 * time.Second)
		boletos, err := client.ListBoletos(context.Background(), boleto.Credentials{BaseURL: server.URL}, boleto.Query{Plate: "ABC1D23"})

		assert.NoError(t, err)
		assert.Empty(t, boletos)
	})

	t.Run("non-2xx status surfaces as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"erro": "token inválido"}`))
		}))
		defer server.Close()

		client := NewSGAClient(5 * time.Second)
		boletos, err := client.ListBoletos(context.Background(), boleto.Credentials{BaseURL: server.URL}, boleto.Query{Plate: "ABC1D23"})

		assert.Nil(t, boletos)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 401")
	})
}

func TestSGAClient_FindVehicle(t *testing.T) {
	t.Run("escapes plate in path and decodes vehicles", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			_, _ = w.Write([]byte(`[{"codigo_veiculo": "9", "placa": "ABC1D23", "codigo_fipe": "811234-5", "descricao_situacao": "INADIMPLENTE"}]`))
		}))
		defer server.Close()

		client := NewSGAClient(5 * time.Second)
		vehicles, err := client.FindVehicle(context.Background(), boleto.Credentials{BaseURL: server.URL, Token: "t"}, "ABC1D23")

		require.NoError(t, err)
		require.Len(t, vehicles, 1)
		assert.Equal(t, "/veiculo/buscar/ABC1D23", gotPath)
		assert.Equal(t, "INADIMPLENTE", vehicles[0].Situation)
		assert.Equal(t, "811234-5", vehicles[0].FipeCode)
	})

	t.Run("server error surfaces as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewSGAClient(5 * time.Second)
		vehicles, err := client.FindVehicle(context.Background(), boleto.Credentials{BaseURL: server.URL}, "ABC1D23")

		assert.Nil(t, vehicles)
		assert.Error(t, err)
	})
}
