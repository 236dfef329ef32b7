// Package whatsapp builds click-to-chat deep links. The application
// never sends messages itself: it hands the user's browser a wa.me URL
// with the text prefilled and the consumer client does the rest.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// DeepLink returns a wa.me URL that opens a chat with the given phone
// number and the text prefilled. The phone is normalized to bare digits
// (wa.me rejects "+", spaces and dashes).
func DeepLink(phone, text string) (string, error) {
	digits := normalizePhone(phone)
	if digits == "" {
		return "", fmt.Errorf("phone number %q has no digits", phone)
	}

	link := baseURL + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link, nil
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
