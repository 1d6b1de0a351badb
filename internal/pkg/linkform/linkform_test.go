package linkform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSlug(t *testing.T) {
	t.Parallel()

	valid := []string{"vendas", "Vendas-2025", "a", "A-1-b-2", "123"}
	for _, s := range valid {
		assert.True(t, IsValidSlug(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "venda s", "vendas!", "açao", "ven_das", "vendas/loja", "venda."}
	for _, s := range invalid {
		assert.False(t, IsValidSlug(s), "expected %q to be invalid", s)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	_, errs := Validate(Input{Name: "", Whatsapp: "123", Message: ""})

	assert.Len(t, errs, 3)
	assert.Equal(t, ErrRequired, errs["name"])
	assert.Equal(t, ErrInvalidPhone, errs["whatsapp"])
	assert.Equal(t, ErrRequired, errs["message"])
}

func TestValidateHappyPath(t *testing.T) {
	t.Parallel()

	got, errs := Validate(Input{
		Name:     "Vendas",
		Whatsapp: "+55 11 91234-5678",
		Message:  "Olá",
	})

	assert.Empty(t, errs)
	assert.Equal(t, "Vendas", got.Name)
	assert.Equal(t, "5511912345678", got.WhatsappDigits)
	assert.Equal(t, "Olá", got.Message)
	assert.Empty(t, got.Slug, "empty slug is allowed, caller generates one")
}

func TestValidateFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        Input
		wantField string
		wantCode  string
	}{
		{
			name:      "whitespace-only name",
			in:        Input{Name: "   ", Whatsapp: "5511912345678", Message: "Olá"},
			wantField: "name",
			wantCode:  ErrRequired,
		},
		{
			name:      "bad slug",
			in:        Input{Name: "Vendas", Slug: "minha loja", Whatsapp: "5511912345678", Message: "Olá"},
			wantField: "slug",
			wantCode:  ErrInvalidSlug,
		},
		{
			name:      "missing whatsapp",
			in:        Input{Name: "Vendas", Whatsapp: "", Message: "Olá"},
			wantField: "whatsapp",
			wantCode:  ErrRequired,
		},
		{
			name:      "short phone despite punctuation",
			in:        Input{Name: "Vendas", Whatsapp: "(12) 345-67", Message: "Olá"},
			wantField: "whatsapp",
			wantCode:  ErrInvalidPhone,
		},
		{
			name:      "whitespace-only message",
			in:        Input{Name: "Vendas", Whatsapp: "5511912345678", Message: " \t "},
			wantField: "message",
			wantCode:  ErrRequired,
		},
		{
			name:      "relative redirect",
			in:        Input{Name: "Vendas", Whatsapp: "5511912345678", Message: "Olá", Redirect: "/obrigado"},
			wantField: "redirect",
			wantCode:  ErrInvalidURL,
		},
		{
			name:      "redirect without scheme",
			in:        Input{Name: "Vendas", Whatsapp: "5511912345678", Message: "Olá", Redirect: "example.com"},
			wantField: "redirect",
			wantCode:  ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Validate(tt.in)
			assert.Equal(t, tt.wantCode, errs[tt.wantField])
		})
	}
}

func TestValidateAcceptsAbsoluteRedirect(t *testing.T) {
	t.Parallel()

	got, errs := Validate(Input{
		Name:     "Vendas",
		Slug:     "vendas",
		Whatsapp: "5511912345678",
		Message:  "Olá",
		Redirect: "https://example.com/obrigado",
	})

	assert.Empty(t, errs)
	assert.Equal(t, "https://example.com/obrigado", got.Redirect)
	assert.Equal(t, "vendas", got.Slug)
}

func TestMessagesCoverAllCodes(t *testing.T) {
	t.Parallel()

	for _, code := range []string{ErrRequired, ErrInvalidSlug, ErrInvalidPhone, ErrInvalidURL} {
		assert.NotEmpty(t, Messages[code])
	}
}
