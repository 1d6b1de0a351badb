package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "+55 11 91234-5678", want: true},
		{in: "5511912345678", want: true},
		{in: "(11) 91234-5678", want: true},
		{in: "123", want: false},
		{in: "12345678-9", want: false}, // 9 digits
		{in: "1234567890", want: true},  // exactly 10
		{in: "", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValid(tt.in), "IsValid(%q)", tt.in)
	}
}

func TestByCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "55", ByCode("BR").DialCode)
	assert.Equal(t, "1", ByCode("us").DialCode)
	assert.Equal(t, "55", ByCode("XX").DialCode, "unknown code falls back to default")
	assert.Equal(t, DefaultCountry(), ByCode(""))
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	br := ByCode("BR")
	pt := ByCode("PT")

	tests := []struct {
		name    string
		raw     string
		country Country
		want    string
	}{
		{name: "bare number gets dial code", raw: "11912345678", country: br, want: "+5511912345678"},
		{name: "already prefixed", raw: "+5511912345678", country: br, want: "+5511912345678"},
		{name: "punctuation stripped", raw: "(11) 91234-5678", country: br, want: "+5511912345678"},
		{name: "foreign prefix replaced", raw: "+111222333", country: pt, want: "+351111222333"},
		{name: "empty input", raw: "", country: br, want: "+55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.raw, tt.country))
		})
	}
}
