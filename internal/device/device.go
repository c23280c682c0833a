// Package device turns raw User-Agent strings into short display names for
// operational logging of turnout entry clients.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent renders a user agent as "Browser on OS", falling back to the
// platform when the OS is not recognized.
func ParseUserAgent(raw string) string {
	if raw == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	name, _ := ua.Browser()
	if name == "" {
		name = "Unknown Browser"
	}

	where := ua.OS()
	if where == "" {
		where = ua.Platform()
	}
	if where == "" {
		where = "Unknown Platform"
	}

	return strings.TrimSpace(name + " on " + where)
}
