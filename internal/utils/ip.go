package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// UnknownIP is returned when no header yields a usable client address.
const UnknownIP = "unknown"

// GetClientIP extracts the client IP from proxy headers, falling back
// to "unknown". X-Forwarded-For is checked first (leftmost entry is the
// original client), then X-Real-IP. Candidates that do not parse as an
// IPv4/IPv6 address are discarded so header-injected garbage never
// reaches the rate-limit key space or the logs.
func GetClientIP(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		// X-Forwarded-For can be a comma-separated list:
		// client, proxy1, proxy2, ...
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := sanitizeIP(first); ip != "" {
			return ip
		}
	}

	if ip := sanitizeIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	return UnknownIP
}

// sanitizeIP strips characters that can never appear in an IP literal
// and validates what remains. Returns "" when the candidate is not a
// valid address.
func sanitizeIP(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}

	candidate = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			return r
		case r == '.' || r == ':':
			return r
		}
		return -1
	}, candidate)

	if net.ParseIP(candidate) == nil {
		return ""
	}
	return candidate
}
