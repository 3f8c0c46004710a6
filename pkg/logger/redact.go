package logger

import "strings"

// sensitiveKeys are substrings of field names whose values must never be
// written to the log.
var sensitiveKeys = []string{"password", "token", "secret", "authorization", "cookie"}

// RedactFields returns a copy of a field map with sensitive values masked.
// Used before logging request payloads or validation detail.
func RedactFields(fields map[string]string) map[string]string {
	if fields == nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if isSensitiveKey(k) {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}
