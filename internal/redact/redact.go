// Package redact masks credentials in store connection strings before they
// reach logs or error messages.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// patterns holds the key=value credential forms accepted by libpq and gorm,
// and the user:password@tcp(...) form of the MySQL driver.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`),
	regexp.MustCompile(`(?i)(_auth(?:token)?\s*=\s*)([^&\s]+)`),
	// The password may itself contain '@', so it runs to the last '@' that
	// is followed by an optional net(addr) and the '/' before the database.
	regexp.MustCompile(`^([^:/@\s]+:)(\S*)(@(?:[a-z0-9]+\([^)]*\))?/)`),
}

// DSN replaces the password in a URL or key=value connection string with
// [REDACTED]. Strings without credentials are returned unchanged.
func DSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
			// url.String escapes the brackets.
			dsn = strings.ReplaceAll(u.String(), url.PathEscape(redacted), redacted)
		}
	}
	for _, re := range patterns {
		dsn = re.ReplaceAllString(dsn, "${1}"+redacted+"${3}")
	}
	return dsn
}

// Value masks v when key names a credential-bearing field.
func Value(key string, v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch key {
	case "password":
		return redacted
	case "dsn", "store_dsn":
		return DSN(s)
	}
	return v
}
