// Package sanitize screens free-text form input against a fixed blocklist of
// XSS and SQL-injection indicator patterns. It rejects suspicious input
// outright rather than escaping or cleaning it. The blocklist is a heuristic:
// URL-encoded or otherwise obfuscated payloads pass through undetected.
package sanitize

import "regexp"

var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[\s>]`),
	regexp.MustCompile(`(?i)</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
	regexp.MustCompile(`(?i)<(iframe|object|embed)[\s>]`),
	regexp.MustCompile(`(?i)data:text/html`),
}

var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(^|\s)(select|insert|update|delete|drop|union|alter|create|truncate)(\s|$)`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`/\*|\*/`),
	regexp.MustCompile(`(?i)['"]\s*(or|and)\s*['"0-9]`),
}

// ContainsMaliciousPatterns reports whether text matches any XSS or
// SQL-injection indicator pattern. Matching is case-insensitive.
func ContainsMaliciousPatterns(text string) bool {
	for _, p := range xssPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	for _, p := range sqlPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
