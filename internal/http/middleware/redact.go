package middleware

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// UUIDs go first so the looser phone pattern cannot eat their digit runs.
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	phoneRE = regexp.MustCompile(`(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// secretParams are query parameters whose values are never logged.
var secretParams = map[string]struct{}{
	"access_token": {},
	"api_key":      {},
	"password":     {},
	"token":        {},
}

// RedactQuery returns raw with secret parameter values masked and emails,
// phone numbers and UUIDs replaced by placeholders. Unparseable queries are
// pattern-redacted as a whole.
func RedactQuery(raw string) string {
	if raw == "" {
		return raw
	}
	if _, err := url.ParseQuery(raw); err != nil {
		return redactPII(raw)
	}
	parts := strings.Split(raw, "&")
	for i, kv := range parts {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			parts[i] = redactPII(k)
			continue
		}
		name, err := url.QueryUnescape(k)
		if err != nil {
			name = k
		}
		if _, secret := secretParams[strings.ToLower(name)]; secret {
			parts[i] = k + "=[REDACTED]"
			continue
		}
		if dec, err := url.QueryUnescape(v); err == nil {
			v = dec
		}
		parts[i] = k + "=" + redactPII(v)
	}
	return strings.Join(parts, "&")
}

func redactPII(s string) string {
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}
