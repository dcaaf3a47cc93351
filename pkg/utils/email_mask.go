package utils

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// MaskEmail reduces an address to something safe to log: the first three
// characters of the local part and the registrable domain (eTLD+1).
//
//	john.doe@mail.example.co.uk -> joh...@example.co.uk
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}

	local, host, found := strings.Cut(email, "@")
	prefix := local
	if runes := []rune(local); len(runes) > 3 {
		prefix = string(runes[:3])
	}
	if !found || host == "" {
		return prefix + "..."
	}

	host = strings.ToLower(strings.TrimSuffix(host, "."))
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	return prefix + "...@" + registrable
}
