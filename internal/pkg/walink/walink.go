package walink

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// NormalizePhone strips everything except digits from a phone string.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			b.WriteByte(phone[i])
		}
	}
	return b.String()
}

// Build constructs the wa.me deep link for a phone number and pre-filled
// message. The phone may still contain punctuation or a leading +, only
// its digits end up in the URL path. The message is percent-encoded with
// spaces as %20, the exact query format wa.me expects.
//
// Build is deterministic: identical inputs always produce the identical
// output string.
func Build(phone, message string) string {
	digits := NormalizePhone(phone)
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return baseURL + digits + "?text=" + encoded
}
