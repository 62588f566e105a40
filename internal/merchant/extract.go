package merchant

import "strings"

// Extract pulls the likely counterparty fragment out of a raw description.
//
// Structured rail narrations like "UPI/512345678901/payment/GROCERY MART/okhdfc"
// carry the payee in the second slash-delimited segment; the longest segment
// is often an unrelated free-text fragment, so it is not preferred. Segments
// holding an @-handle or a long purely-numeric token (party ids) are never
// candidates. Free-text descriptions pass through trimmed.
func Extract(description string) string {
	desc := strings.TrimSpace(description)
	if !strings.Contains(desc, "/") {
		return desc
	}

	segments := strings.Split(desc, "/")
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" || strings.Contains(seg, "@") || longNumeric(seg) {
			continue
		}
		return seg
	}
	return desc
}

// longNumeric reports whether s is a purely numeric token long enough to be
// a party or reference id rather than a name.
func longNumeric(s string) bool {
	if len(s) < 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
