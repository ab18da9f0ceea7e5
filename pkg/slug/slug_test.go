package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicore/clinicore/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Clinica Vida", want: "clinica-vida"},
		{name: "portuguese diacritics", input: "Clínica São João", want: "clinica-sao-joao"},
		{name: "cedilla", input: "Espaço Saúde", want: "espaco-saude"},
		{name: "punctuation collapses", input: "Dr. Silva & Associados", want: "dr-silva-associados"},
		{name: "leading and trailing junk", input: " --Odonto-- ", want: "odonto"},
		{name: "digits kept", input: "Unidade 2 Centro", want: "unidade-2-centro"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.input))
		})
	}
}

func TestMakeOptions(t *testing.T) {
	t.Parallel()

	t.Run("max length truncates", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "clinica", slug.Make("Clínica Vida", slug.MaxLength(8)))
	})

	t.Run("custom separator", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "clinica_vida", slug.Make("Clínica Vida", slug.Separator("_")))
	})
}
