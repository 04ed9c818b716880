package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/normalize"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	logger, _ := test.NewNullLogger()
	return New(Config{BaseURL: srv.URL + "/", Token: "secret"}, WithLogger(logger))
}

func TestListSendsParamsAndNormalizes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/vouchers", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "john", r.URL.Query().Get("search"))
		assert.Equal(t, "max", r.URL.Query().Get("voucher_type"))
		io.WriteString(w, `{"success":true,"message":"","data":{"vouchers":{"current_page":2,"per_page":10,"total":11,"data":[{"id":11}]}}}`)
	})

	q, err := listquery.New(listquery.Vouchers).WithSearch("john").WithFilter("voucher_type", "max")
	require.NoError(t, err)
	page, err := c.List(context.Background(), q.WithPage(2))
	require.NoError(t, err)
	assert.Equal(t, models.Meta{CurrentPage: 2, LastPage: 2, PerPage: 10, Total: 11}, page.Meta)
	assert.Len(t, page.Items, 1)
}

func TestListMalformedDegrades(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"unexpected":1}}`)
	})
	page, err := c.List(context.Background(), listquery.New(listquery.Logs))
	assert.ErrorIs(t, err, normalize.ErrMalformedResponse)
	assert.Equal(t, models.EmptyPage(), page)
}

func TestErrorStatusCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"success":false,"message":"Insufficient points"}`)
	})
	err := c.VerifyRedeem(context.Background(), "7", decimal.NewFromInt(50))

	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusUnprocessableEntity, be.Status)
	assert.Equal(t, "Insufficient points", MessageOf(err))
}

func TestUnsuccessfulEnvelopeIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false}`)
	})
	err := c.ApproveVoucher(context.Background(), "3")
	require.Error(t, err)
	assert.Equal(t, GenericMessage, MessageOf(err))
}

func TestTransportFailureUsesGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(Config{BaseURL: srv.URL})
	_, err := c.Settings(context.Background())
	require.Error(t, err)
	assert.Equal(t, GenericMessage, MessageOf(err))
}

func TestCreateVoucherMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		f := r.MultipartForm.Value
		assert.Equal(t, []string{"42"}, f["member_id"])
		assert.Equal(t, []string{"refer"}, f["voucher_type"])
		assert.Equal(t, []string{"manual"}, f["payment_method"])
		assert.Equal(t, []string{"3"}, f["quantity"])
		assert.Equal(t, []string{"70"}, f["total_amount"])
		assert.Equal(t, []string{"1"}, f["denomination_history[0][denomination_id]"])
		assert.Equal(t, []string{"2"}, f["denomination_history[0][quantity]"])
		assert.Equal(t, []string{"2"}, f["denomination_history[1][denomination_id]"])
		assert.Equal(t, []string{"1"}, f["denomination_history[1][quantity]"])

		docs := r.MultipartForm.File["manual_payment_docs[]"]
		if assert.Len(t, docs, 1) {
			assert.Equal(t, "receipt.pdf", docs[0].Filename)
		}

		io.WriteString(w, `{"success":true,"message":"Voucher created","data":{"id":99}}`)
	})

	d := models.VoucherDraft{
		MemberID:      "42",
		VoucherType:   models.VoucherTypeRefer,
		PaymentMethod: models.PaymentManual,
		Denominations: []models.Denomination{
			{ID: 1, UnitValue: decimal.NewFromInt(10), Quantity: 2},
			{ID: 2, UnitValue: decimal.NewFromInt(50), Quantity: 1},
		},
		VoucherTotals: models.VoucherTotals{TotalAmount: decimal.NewFromInt(70), TotalQuantity: 3},
	}
	out, err := c.CreateVoucher(context.Background(), d, []models.Attachment{
		{Filename: "receipt.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":99}`, string(out))
}

func TestRejectVoucherSendsReason(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/vouchers/5/reject", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"reason":"blurry receipt"}`, string(b))
		io.WriteString(w, `{"success":true}`)
	})
	require.NoError(t, c.RejectVoucher(context.Background(), "5", "blurry receipt"))
}

func TestSubmitPurchase(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"member_id":"8","merchant_id":"m1","transaction_amount":"100",
			"redeem_amount":"50","balance_to_pay":"75.00"}`, string(b))
		io.WriteString(w, `{"success":true,"data":{"transaction_id":"t-1"}}`)
	})
	out, err := c.SubmitPurchase(context.Background(), "8", models.PurchaseDraft{
		MerchantRef:         "m1",
		TransactionAmount:   decimal.NewFromInt(100),
		RedeemPointsClamped: decimal.NewFromInt(50),
		BalanceToPay:        decimal.NewFromInt(75),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"transaction_id":"t-1"}`, string(out))
}

func TestFindMember(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "0123" {
			io.WriteString(w, `{"success":true,"data":{"member":{"id":12,"name":"Siti","phone":"0123","available_points":"340.5"}}}`)
			return
		}
		io.WriteString(w, `{"success":true,"data":null}`)
	})
	m, err := c.FindMember(context.Background(), " 0123 ")
	require.NoError(t, err)
	assert.Equal(t, "12", m.ID)
	assert.Equal(t, "Siti", m.Name)
	assert.Equal(t, "340.5", m.AvailablePoints.String())

	_, err = c.FindMember(context.Background(), "999")
	assert.Equal(t, "Member not found", MessageOf(err))
}
