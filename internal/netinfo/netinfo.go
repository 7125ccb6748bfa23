// Package netinfo discovers the server's public and local addresses so the
// join URL can be shared. Failures are never fatal; the worst case is
// "localhost".
package netinfo

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// Providers queried in order for the public address.
var Providers = []string{
	"https://api.ipify.org",
	"https://ipinfo.io/ip",
	"https://icanhazip.com",
	"https://ident.me",
}

const attemptTimeout = 5 * time.Second

// PublicIP asks each provider in turn, falling back to the local address.
func PublicIP(ctx context.Context) string {
	client := &http.Client{Timeout: attemptTimeout}
	for _, provider := range Providers {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			log.Printf("public ip lookup via %s failed: %v", provider, err)
			continue
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			continue
		}
		if ip := strings.TrimSpace(string(body)); net.ParseIP(ip) != nil {
			return ip
		}
	}
	return LocalIP()
}

// LocalIP finds the outbound interface address via a connected UDP socket.
// No packet is sent.
func LocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		log.Printf("local ip lookup failed: %v", err)
		return "localhost"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "localhost"
}
