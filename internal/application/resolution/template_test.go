package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	vars := map[string]string{
		"data_vencimento": "15/04/2024",
		"valor_boleto":    "123.40",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "plain placeholder",
			template: "Vence em {{ data_vencimento }}.",
			want:     "Vence em 15/04/2024.",
		},
		{
			name:     "dollar prefix tolerated",
			template: "Valor: {{ $valor_boleto }}",
			want:     "Valor: 123.40",
		},
		{
			name:     "no inner whitespace",
			template: "{{data_vencimento}}",
			want:     "15/04/2024",
		},
		{
			name:     "multiple and repeated placeholders",
			template: "{{ valor_boleto }} até {{ data_vencimento }} ({{ data_vencimento }})",
			want:     "123.40 até 15/04/2024 (15/04/2024)",
		},
		{
			name:     "unknown placeholder kept verbatim",
			template: "Olá {{ nome }}, vence em {{ data_vencimento }}.",
			want:     "Olá {{ nome }}, vence em 15/04/2024.",
		},
		{
			name:     "no placeholders",
			template: "Mensagem fixa.",
			want:     "Mensagem fixa.",
		},
		{
			name:     "empty template",
			template: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.template, vars))
		})
	}
}

func TestRenderTemplateValuesAreLiteral(t *testing.T) {
	// A replacement value that itself looks like a placeholder must not be
	// expanded again.
	got := RenderTemplate("{{ a }}", map[string]string{
		"a": "{{ b }}",
		"b": "never",
	})
	assert.Equal(t, "{{ b }}", got)
}
