// Package redact scrubs sensitive fragments from strings before they
// reach logs or error responses: connection strings, credentials, file
// paths, and raw SQL.
package redact

import "regexp"

// Redaction placeholders
const (
	PathPlaceholder       = "[REDACTED_PATH]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
)

var (
	dbConnRegex   = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	sqlRegex      = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()]+(?:FROM|INTO|SET)[\s\w,*()='"$]+`,
	)
)

// String redacts sensitive fragments from s.
func String(s string) string {
	if s == "" {
		return s
	}

	s = dbConnRegex.ReplaceAllString(s, CredentialPlaceholder)
	s = passwordRegex.ReplaceAllString(s, CredentialPlaceholder)
	s = sqlRegex.ReplaceAllString(s, SQLPlaceholder)
	s = unixPathRegex.ReplaceAllString(s, PathPlaceholder)

	return s
}

// Error redacts an error's message. Nil errors yield an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
