package pkg

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

var (
	localDockerIpRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1:\d{1,5}`)
)

func IPIsLocal(ipAddr string) bool {
	// used in local development ?
	if strings.HasPrefix(ipAddr, "127.0.0.1:") {
		return true
	}

	// user within docker container ?
	return localDockerIpRegex.MatchString(ipAddr)
}

// ClientIP returns the address of the client, preferring the headers set by the
// reverse proxy. Local and docker addresses all map to "localhost", and an
// unparsable address to an empty string.
func ClientIP(r *http.Request) string {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		forwarded := r.Header.Get("X-Forwarded-For")
		ipAddr = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if IPIsLocal(ipAddr) {
		return "localhost"
	}

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}
	if net.ParseIP(ipAddr) == nil {
		return ""
	}

	return ipAddr
}
