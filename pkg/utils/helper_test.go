package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		first string
		last  string
	}{
		{"two names", "Ayse Yilmaz", "Ayse", "Yilmaz"},
		{"single name gets default surname", "Ayse", "Ayse", "-"},
		{"three names keep the tail together", "Mehmet Ali Kaya", "Mehmet", "Ali Kaya"},
		{"extra whitespace", "  Ayse   Yilmaz  ", "Ayse", "Yilmaz"},
		{"empty falls back entirely", "", "-", "-"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := SplitFullName(tc.input, "-")
			assert.Equal(t, tc.first, first)
			assert.Equal(t, tc.last, last)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1750.00", FormatPrice(1750))
	assert.Equal(t, "99.90", FormatPrice(99.9))
	assert.Equal(t, "0.00", FormatPrice(0))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.10:54321"
	assert.Equal(t, "203.0.113.10", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", ClientIP(r))
}
