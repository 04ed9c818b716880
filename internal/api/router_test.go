package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/maxreward-console/internal/api/middleware"
	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/service"
)

type stubVouchers struct{ approved []string }

func (s *stubVouchers) Preview(_ context.Context, d models.VoucherDraft) (models.VoucherDraft, error) {
	return d, nil
}

func (s *stubVouchers) Create(_ context.Context, d models.VoucherDraft, _ []models.Attachment) (service.VoucherResult, error) {
	return service.VoucherResult{Draft: d}, nil
}

func (s *stubVouchers) Approve(_ context.Context, id string) error {
	s.approved = append(s.approved, id)
	return nil
}

func (s *stubVouchers) Reject(context.Context, string, string) error { return nil }

type stubLists struct{ screens []listquery.Screen }

func (s *stubLists) List(_ context.Context, q listquery.Query) (models.Page, error) {
	s.screens = append(s.screens, q.Screen)
	return models.EmptyPage(), nil
}

func newTestServer(t *testing.T, rl *middleware.RateLimiter) (*httptest.Server, *stubVouchers, *stubLists) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	vouchers := &stubVouchers{}
	lists := &stubLists{}
	srv := httptest.NewServer(NewRouter(Deps{
		Vouchers:    vouchers,
		Lists:       lists,
		RateLimiter: rl,
		Log:         logger,
	}))
	t.Cleanup(srv.Close)
	return srv, vouchers, lists
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestRoutes(t *testing.T) {
	srv, vouchers, lists := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/api/vouchers/17/approve", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"17"}, vouchers.approved)

	resp, err = http.Get(srv.URL + "/api/lists/merchants?page=2")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []listquery.Screen{listquery.Merchants}, lists.screens)

	resp, err = http.Post(srv.URL+"/api/vouchers", "application/json",
		strings.NewReader(`{"member_id":"1","voucher_type":"max","payment_method":"online"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/lists/members")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "maxreward_console_http_requests_total")
	assert.Contains(t, string(body), `route="/api/lists/{screen}"`)
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	logger, _ := test.NewNullLogger()
	srv, _, _ := newTestServer(t, middleware.NewRateLimiter(0.001, 1, logger))

	codes := []int{}
	for i := 0; i < 2; i++ {
		resp, err := http.Get(srv.URL + "/api/lists/members")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
