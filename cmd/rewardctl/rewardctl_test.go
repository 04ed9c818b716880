package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRedeemCmd(t *testing.T) {
	out, err := run(t, "redeem", "--amount", "100", "--redeem", "500", "--ppcu", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "max redeem points:    200\n")
	assert.Contains(t, out, "redeem points:        200\n")
	assert.Contains(t, out, "balance to pay:       0.00\n")
	assert.Contains(t, out, "exceeds the maximum")
}

func TestRedeemCmdPartial(t *testing.T) {
	out, err := run(t, "redeem", "--amount", "1,000", "--redeem", "50", "--ppcu", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "points per unit:      1\n")
	assert.Contains(t, out, "balance to pay:       950.00\n")
	assert.NotContains(t, out, "exceeds")
}

func TestVoucherCmd(t *testing.T) {
	out, err := run(t, "voucher", "--denom", "1:10:2", "--denom", "2:50", "--ppcu", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "vouchers:      3\n")
	assert.Contains(t, out, "total amount:  70.00\n")
	assert.Contains(t, out, "total points:  350\n")
}

func TestVoucherCmdRepeatDeselects(t *testing.T) {
	out, err := run(t, "voucher", "--denom", "1:10:2", "--denom", "1:10")
	require.NoError(t, err)
	assert.Contains(t, out, "vouchers:      0\n")
	assert.Contains(t, out, "total amount:  0.00\n")
}

func TestParseDenom(t *testing.T) {
	d, err := parseDenom("4:25.50:x")
	require.NoError(t, err)
	assert.Equal(t, 4, d.ID)
	assert.Equal(t, "25.5", d.UnitValue.String())
	assert.Equal(t, 1, d.Quantity)

	for _, bad := range []string{"4", "a:1", "4:-1", "1:2:3:4"} {
		_, err := parseDenom(bad)
		assert.Error(t, err, bad)
	}
}

func TestListCmd(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		io.WriteString(w, `{"success":true,"data":{"vouchers":{"current_page":2,"last_page":3,"per_page":5,"total":12,"data":[{"id":6},{"id":7}]}}}`)
	}))
	defer srv.Close()

	out, err := run(t, "list", "vouchers", "--base-url", srv.URL,
		"--search", "ali", "--filter", "voucher_type=max", "--per-page", "5", "--page", "2")
	require.NoError(t, err)

	assert.Contains(t, query, "page=2")
	assert.Contains(t, query, "per_page=5")
	assert.Contains(t, query, "search=ali")
	assert.Contains(t, query, "voucher_type=max")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "page 2 of 3 (5 per page, 12 total)", lines[0])
	assert.Equal(t, `{"id":6}`, lines[1])
}

func TestListCmdRejectsUnknownInput(t *testing.T) {
	_, err := run(t, "list", "nope", "--base-url", "http://127.0.0.1:1")
	assert.Error(t, err)

	_, err = run(t, "list", "vouchers", "--base-url", "http://127.0.0.1:1", "--filter", "colour=red")
	assert.Error(t, err)
}

func TestListCmdShowsBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"success":false,"message":"Unauthorized access"}`)
	}))
	defer srv.Close()

	_, err := run(t, "list", "members", "--base-url", srv.URL)
	require.Error(t, err)
	assert.Equal(t, "Unauthorized access", err.Error())
}
