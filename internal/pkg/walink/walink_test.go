package walink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "+55 11 91234-5678", want: "5511912345678"},
		{in: "5511912345678", want: "5511912345678"},
		{in: "(11) 91234.5678", want: "11912345678"},
		{in: "abc", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in))
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phone   string
		message string
		want    string
	}{
		{
			name:    "accented message",
			phone:   "+55 11 91234-5678",
			message: "Olá",
			want:    "https://wa.me/5511912345678?text=Ol%C3%A1",
		},
		{
			name:    "spaces become percent-20",
			phone:   "5511912345678",
			message: "hello world",
			want:    "https://wa.me/5511912345678?text=hello%20world",
		},
		{
			name:    "empty message",
			phone:   "15551234567",
			message: "",
			want:    "https://wa.me/15551234567?text=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.phone, tt.message))
		})
	}

	assert.NotContains(t, Build("5511912345678", "hello world"), "+")
}

func TestBuildIsIdempotent(t *testing.T) {
	t.Parallel()

	first := Build("+55 (11) 91234-5678", "Olá, tudo bem?")
	second := Build("+55 (11) 91234-5678", "Olá, tudo bem?")
	assert.Equal(t, first, second)
}
