package domain

import "strings"

// ValidEmail reports whether s looks like local@domain.tld: a non-empty local
// part, exactly one "@", and a domain containing a dot with non-empty segments
// around it. None of the parts may contain whitespace. Intentionally not
// RFC-complete; the goal is fast rejection of obviously malformed input.
func ValidEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, dom := s[:at], s[at+1:]
	if strings.ContainsAny(local, " \t\r\n\f\v") || strings.ContainsAny(dom, " \t\r\n\f\v") {
		return false
	}
	dot := strings.LastIndexByte(dom, '.')
	return dot > 0 && dot < len(dom)-1
}

// ValidPhone reports whether s is non-empty and composed only of decimal
// digits. No length bound, no country-code handling.
func ValidPhone(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
