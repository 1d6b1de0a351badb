// Package linkform validates raw link form input and normalizes it into
// the field set a Link is created from. Validation is a pure function:
// all fields are checked in one pass and every error is reported, there
// is no short-circuiting and no I/O.
package linkform

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ramoneds/linkwhats/internal/pkg/phone"
)

// Error codes keyed by field name.
const (
	ErrRequired     = "required"
	ErrInvalidSlug  = "invalid_slug"
	ErrInvalidPhone = "invalid_phone"
	ErrInvalidURL   = "invalid_url"
)

// Messages maps error codes to the human-readable messages shown in the
// form.
var Messages = map[string]string{
	ErrRequired:     "Campo obrigatório",
	ErrInvalidSlug:  "Use apenas letras, números e hífens",
	ErrInvalidPhone: "Número de WhatsApp inválido",
	ErrInvalidURL:   "Informe uma URL válida",
}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Input is the raw form payload. Redirect is only honored for pro
// plans; the plan gate handles that after validation.
type Input struct {
	Name     string
	Slug     string
	Whatsapp string
	Message  string
	Redirect string
}

// Normalized is the cleaned-up field set ready to merge into a Link.
type Normalized struct {
	Name           string
	Slug           string
	WhatsappDigits string
	Message        string
	Redirect       string
}

// FieldErrors maps field name to error code. Empty means valid.
type FieldErrors map[string]string

// IsValidSlug reports whether s consists only of letters, digits and
// hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Validate checks every field and collects all errors in one pass.
// An empty slug is accepted: the caller generates one (and resolves
// uniqueness against the store) before persisting.
func Validate(in Input) (Normalized, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs["name"] = ErrRequired
	}

	slug := strings.TrimSpace(in.Slug)
	if slug != "" && !IsValidSlug(slug) {
		errs["slug"] = ErrInvalidSlug
	}

	digits := phone.NormalizeDigits(in.Whatsapp)
	if strings.TrimSpace(in.Whatsapp) == "" {
		errs["whatsapp"] = ErrRequired
	} else if !phone.IsValid(in.Whatsapp) {
		errs["whatsapp"] = ErrInvalidPhone
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		errs["message"] = ErrRequired
	}

	redirect := strings.TrimSpace(in.Redirect)
	if redirect != "" && !isAbsoluteURL(redirect) {
		errs["redirect"] = ErrInvalidURL
	}

	if len(errs) > 0 {
		return Normalized{}, errs
	}

	return Normalized{
		Name:           name,
		Slug:           slug,
		WhatsappDigits: digits,
		Message:        message,
		Redirect:       redirect,
	}, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
