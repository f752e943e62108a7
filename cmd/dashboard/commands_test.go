package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gatewayPayload = `{"data":[
	{"id":"tx-rent","sender":{"account":"A"},"receiver":{"account":"B","name":"Landlord"},"amount":"500","cause":"Rent","created_at_time":1700000000},
	{"id":"tx-food","sender":{"account":"A"},"receiver":{"account":"C"},"amount":"20","cause":"Food","created_at_time":1700000100},
	{"id":"tx-other","sender":{"account":"C"},"receiver":{"account":"D"},"amount":"1","cause":"Rent","created_at_time":1700000200}
]}`

func runDashboard(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestListCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(gatewayPayload))
	}))
	defer srv.Close()

	out, _, err := runDashboard(t, "list", "--gateway", srv.URL, "--account", "A", "--search", "rent")
	require.NoError(t, err)

	assert.Contains(t, out, "Showing 1 transactions for A, page 1 / 1")
	assert.Contains(t, out, "tx-rent")
	assert.Contains(t, out, "Landlord")
	assert.NotContains(t, out, "tx-other")
	assert.NotContains(t, out, "tx-food")
}

func TestListCommandOutOfRangePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(gatewayPayload))
	}))
	defer srv.Close()

	out, errOut, err := runDashboard(t, "list", "--gateway", srv.URL, "--account", "A", "--page", "4")
	require.NoError(t, err)
	assert.Contains(t, errOut, "page 4 does not exist")
	assert.Contains(t, out, "Showing 2 transactions for A, page 1 / 1")
}

func TestListCommandGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":"rate_limited"}`))
	}))
	defer srv.Close()

	_, _, err := runDashboard(t, "list", "--gateway", srv.URL, "--account", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
