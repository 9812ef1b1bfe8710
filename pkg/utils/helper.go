package utils

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ClientIP resolves the caller address from forwarding headers,
// falling back to the remote address and finally loopback.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First entry is the originating client
		if idx := strings.Index(fwd, ","); idx >= 0 {
			fwd = fwd[:idx]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}

	return "127.0.0.1"
}

// SplitFullName splits a full name into given name and surname.
// First token is the given name, the remainder joins into the surname.
// Single-token names get defaultSurname.
func SplitFullName(fullName, defaultSurname string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(fullName))

	switch len(parts) {
	case 0:
		return defaultSurname, defaultSurname
	case 1:
		return parts[0], defaultSurname
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// FormatPrice renders an amount the way the gateway expects ("1200.00")
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
