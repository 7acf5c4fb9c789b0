package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no forwarding header carries a client address.
const Unknown = "unknown"

// Headers lists the forwarding headers consulted by FromHeaders, highest
// priority first.
var Headers = []string{
	"X-Forwarded-For",
	"X-Vercel-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
}

// FromHeaders derives the client address from forwarding headers. The first
// header in Headers with a non-empty first comma-separated value wins.
// Valid IP addresses are returned in normalized form, anything else as sent.
// Without a usable header it returns Unknown.
func FromHeaders(h http.Header) string {
	for _, name := range Headers {
		if ip := firstValue(h.Get(name)); ip != "" {
			return normalize(ip)
		}
	}
	return Unknown
}

// GetIP resolves the client address of r from its forwarding headers and
// falls back to the TCP peer address when none is present.
func GetIP(r *http.Request) string {
	if ip := FromHeaders(r.Header); ip != Unknown {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(strings.TrimSpace(host)); ip != nil {
		return ip.String()
	}
	return Unknown
}

func firstValue(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}

func normalize(s string) string {
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return s
}
