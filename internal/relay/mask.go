package relay

import "strings"

// MaskSecret redacts a credential for display, keeping at most the last
// four characters. Empty secrets stay empty.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	tail := s
	if len(s) > 4 {
		tail = s[len(s)-4:]
	}
	return "••••••••" + tail
}

// MaskEmail redacts an email address for display: first two characters of
// the local part, then the domain. The full address is never shown.
func MaskEmail(addr string) string {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok {
		return MaskSecret(addr)
	}
	head := local
	if len(local) > 2 {
		head = local[:2]
	}
	return head + "••••@" + domain
}
