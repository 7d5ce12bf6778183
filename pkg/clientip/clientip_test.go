package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadbox/leadbox/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{
			name:     "remote addr fallback",
			remote:   "192.168.1.10:4321",
			expected: "192.168.1.10",
		},
		{
			name:     "cloudflare header wins",
			headers:  map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Forwarded-For": "10.0.0.1"},
			remote:   "192.168.1.10:4321",
			expected: "203.0.113.5",
		},
		{
			name:     "first valid forwarded entry",
			headers:  map[string]string{"X-Forwarded-For": "garbage, 198.51.100.7, 10.0.0.1"},
			remote:   "192.168.1.10:4321",
			expected: "198.51.100.7",
		},
		{
			name:     "real ip header",
			headers:  map[string]string{"X-Real-IP": "198.51.100.9"},
			remote:   "192.168.1.10:4321",
			expected: "198.51.100.9",
		},
		{
			name:     "invalid header falls through",
			headers:  map[string]string{"X-Real-IP": "not-an-ip"},
			remote:   "192.168.1.10:4321",
			expected: "192.168.1.10",
		},
		{
			name:     "ipv6 remote",
			remote:   "[2001:db8::1]:4321",
			expected: "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(r))
		})
	}
}
