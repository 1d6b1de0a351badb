package phone

import "strings"

// Country is an entry of the fixed dial-code selector shown next to the
// WhatsApp number input.
type Country struct {
	Name     string
	Code     string
	DialCode string
}

// Countries is the fixed selector list. Brazil comes first and is the
// default.
var Countries = []Country{
	{Name: "Brasil", Code: "BR", DialCode: "55"},
	{Name: "Estados Unidos", Code: "US", DialCode: "1"},
	{Name: "Portugal", Code: "PT", DialCode: "351"},
	{Name: "Espanha", Code: "ES", DialCode: "34"},
	{Name: "Argentina", Code: "AR", DialCode: "54"},
	{Name: "Chile", Code: "CL", DialCode: "56"},
	{Name: "Colômbia", Code: "CO", DialCode: "57"},
	{Name: "México", Code: "MX", DialCode: "52"},
	{Name: "Peru", Code: "PE", DialCode: "51"},
	{Name: "Uruguai", Code: "UY", DialCode: "598"},
}

// DefaultCountry returns the default selector entry (Brazil, dial code 55).
func DefaultCountry() Country {
	return Countries[0]
}

// ByCode looks up a country by its ISO code; falls back to the default.
func ByCode(code string) Country {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Countries {
		if c.Code == code {
			return c
		}
	}
	return DefaultCountry()
}

// NormalizeDigits strips everything except digits.
func NormalizeDigits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			b.WriteByte(phone[i])
		}
	}
	return b.String()
}

// IsValid reports whether the phone number carries at least 10 digits
// (country code included), ignoring any punctuation present.
func IsValid(phone string) bool {
	return len(NormalizeDigits(phone)) >= 10
}

// Coerce forces the typed value to start with the selected country's
// dial code, keeping only digits and the leading +. Whatever prefix the
// user typed is replaced by the active dial code.
func Coerce(raw string, country Country) string {
	cleaned := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '+' || (raw[i] >= '0' && raw[i] <= '9') {
			cleaned = append(cleaned, raw[i])
		}
	}
	value := string(cleaned)

	prefix := "+" + country.DialCode
	if strings.HasPrefix(value, prefix) {
		return value
	}
	value = strings.TrimPrefix(value, "+")
	return prefix + value
}
