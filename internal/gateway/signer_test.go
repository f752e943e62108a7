package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignKnownVectors(t *testing.T) {
	assert.Equal(t, "9DQQle9VNvtUH9abJjgHQbtDn11MrtdYwisyMlKYSAY=",
		Sign("secret", "1700000000000", "GET", FindByUserPath, ""))
	assert.Equal(t, "WV7zY7v0ityLeH+Spqad4uxQPNTR9ZaEmSOroaZm2PA=",
		Sign("secret", "1700000000000", "POST", SearchPath, `{"query":"rent"}`))
}

func TestSignDeterministic(t *testing.T) {
	a := Sign("secret", "1700000000000", "GET", "/path", "body")
	b := Sign("secret", "1700000000000", "GET", "/path", "body")
	assert.Equal(t, a, b)
}

func TestSignMethodIsUpperCased(t *testing.T) {
	assert.Equal(t,
		Sign("secret", "1700000000000", "GET", "/path", ""),
		Sign("secret", "1700000000000", "get", "/path", ""))
}

func TestSignChangesWithEveryField(t *testing.T) {
	base := Sign("secret", "1700000000000", "POST", "/path", `{"a":1}`)

	variants := map[string]string{
		"secret":     Sign("secret2", "1700000000000", "POST", "/path", `{"a":1}`),
		"timestamp":  Sign("secret", "1700000000001", "POST", "/path", `{"a":1}`),
		"method":     Sign("secret", "1700000000000", "PUT", "/path", `{"a":1}`),
		"path":       Sign("secret", "1700000000000", "POST", "/paths", `{"a":1}`),
		"body":       Sign("secret", "1700000000000", "POST", "/path", `{"a":2}`),
		"whitespace": Sign("secret", "1700000000000", "POST", "/path", `{"a":1} `),
	}

	for field, sig := range variants {
		assert.NotEqual(t, base, sig, "changing %s must change the signature", field)
	}
}

func TestVerify(t *testing.T) {
	sig := Sign("secret", "1700000000000", "GET", "/path", "")
	assert.True(t, Verify("secret", "1700000000000", "GET", "/path", "", sig))
	assert.False(t, Verify("other", "1700000000000", "GET", "/path", "", sig))
	assert.False(t, Verify("secret", "1700000000000", "GET", "/path", "", "garbage"))
}

func TestTimestampRoundTrip(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	ts := Timestamp(at)
	assert.Equal(t, "1700000000123", ts)

	parsed, err := ParseTimestamp(ts)
	require.NoError(t, err)
	assert.True(t, at.Equal(parsed))

	_, err = ParseTimestamp("17e11")
	assert.Error(t, err)
}
