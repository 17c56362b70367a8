package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllowWrite_UserLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		Window:           time.Minute,
		MaxWritesPerIP:   100,
		MaxWritesPerUser: 3,
		Clock:            clock,
	})
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		if result := limiter.AllowWrite("user-1", "203.0.113.10"); !result.Allowed {
			t.Fatalf("write %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
	}

	result := limiter.AllowWrite("user-1", "203.0.113.10")
	if result.Allowed {
		t.Fatal("4th write should be blocked")
	}
	if result.Reason != "user_limit" {
		t.Errorf("Expected reason 'user_limit', got '%s'", result.Reason)
	}
	if result.RetryAfter <= 0 || result.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v, want within (0, 1m]", result.RetryAfter)
	}

	// Another user from the same IP has its own budget
	if result := limiter.AllowWrite("user-2", "203.0.113.10"); !result.Allowed {
		t.Errorf("different user should be allowed, got blocked: %s", result.Reason)
	}

	clock.Advance(time.Minute)
	if result := limiter.AllowWrite("user-1", "203.0.113.10"); !result.Allowed {
		t.Errorf("write after window should be allowed, got blocked: %s", result.Reason)
	}
}

func TestAllowWrite_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		Window:           time.Minute,
		MaxWritesPerIP:   2,
		MaxWritesPerUser: 10,
		Clock:            clock,
	})
	defer limiter.Close()

	limiter.AllowWrite("a", "198.51.100.7")
	limiter.AllowWrite("", "198.51.100.7")

	result := limiter.AllowWrite("b", "198.51.100.7")
	if result.Allowed {
		t.Fatal("3rd write from the same IP should be blocked")
	}
	if result.Reason != "ip_limit" {
		t.Errorf("Expected reason 'ip_limit', got '%s'", result.Reason)
	}

	if result := limiter.AllowWrite("b", "198.51.100.8"); !result.Allowed {
		t.Errorf("different IP should be allowed, got blocked: %s", result.Reason)
	}
}

func TestAllowWrite_BlockedAttemptsDoNotCount(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		Window:           time.Minute,
		MaxWritesPerIP:   100,
		MaxWritesPerUser: 1,
		Clock:            clock,
	})
	defer limiter.Close()

	limiter.AllowWrite("user-1", "203.0.113.10")
	for i := 0; i < 5; i++ {
		limiter.AllowWrite("user-1", "203.0.113.10")
	}

	// Only the allowed write consumed IP budget
	limiter.mu.Lock()
	var ipCount int
	for _, e := range limiter.byIP {
		ipCount = e.count
	}
	limiter.mu.Unlock()
	if ipCount != 1 {
		t.Errorf("ip count = %d, want 1", ipCount)
	}
}

func TestAllowWrite_IdentifierNormalization(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		Window:           time.Minute,
		MaxWritesPerIP:   100,
		MaxWritesPerUser: 1,
		Clock:            clock,
	})
	defer limiter.Close()

	limiter.AllowWrite("User-1", "203.0.113.10")
	if result := limiter.AllowWrite("  user-1 ", "203.0.113.11"); result.Allowed {
		t.Error("case and whitespace variants should share a budget")
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50", // Rightmost non-private
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1", // Last one when all private
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100", // Uses RemoteAddr, ignores spoofed XFF
		},
		{
			name:       "TrustProxy=false, ignores X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "No headers, RemoteAddr only",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: true,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetClientIP_SpoofingPrevention(t *testing.T) {
	// Attacker sends fake X-Forwarded-For header
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4") // Attacker-supplied
	r.RemoteAddr = "192.168.1.100:54321"       // Real connection

	// With TrustProxy=false, the fake header is ignored
	got := GetClientIP(r, false)
	if got != "192.168.1.100" {
		t.Errorf("Should ignore X-Forwarded-For when TrustProxy=false, got %q", got)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"JOHN.DOE@EXAMPLE.COM", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"user-1234", "***1234"},
		{"1234", "***"},
		{"", "***"},
		{"  User@Example.Com  ", "us***@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeIdentifier(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_FillsDefaults(t *testing.T) {
	limiter := New(&Config{})
	defer limiter.Close()

	defaults := DefaultConfig()
	if limiter.config.Window != defaults.Window {
		t.Errorf("Window = %v, want %v", limiter.config.Window, defaults.Window)
	}
	if limiter.config.MaxWritesPerIP != defaults.MaxWritesPerIP {
		t.Errorf("MaxWritesPerIP = %d, want %d", limiter.config.MaxWritesPerIP, defaults.MaxWritesPerIP)
	}
	if limiter.config.MaxWritesPerUser != defaults.MaxWritesPerUser {
		t.Errorf("MaxWritesPerUser = %d, want %d", limiter.config.MaxWritesPerUser, defaults.MaxWritesPerUser)
	}
}
