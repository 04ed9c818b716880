package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/maxreward-console/internal/models"
)

// VerifyRedeem asks the backend whether the member can spend points. This is
// the server-side balance check; it does not submit anything.
func (c *Client) VerifyRedeem(ctx context.Context, memberID string, points decimal.Decimal) error {
	r, err := jsonRequest(http.MethodPost, "/admin/purchases/verify", "verify_redeem", map[string]string{
		"member_id":     memberID,
		"redeem_amount": points.String(),
	})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, r)
	return err
}

// SubmitPurchase records a computed purchase draft for a member.
func (c *Client) SubmitPurchase(ctx context.Context, memberID string, d models.PurchaseDraft) (json.RawMessage, error) {
	r, err := jsonRequest(http.MethodPost, "/admin/purchases", "submit_purchase", map[string]string{
		"member_id":          memberID,
		"merchant_id":        d.MerchantRef,
		"transaction_amount": d.TransactionAmount.String(),
		"redeem_amount":      d.RedeemPointsClamped.String(),
		"balance_to_pay":     d.BalanceToPay.StringFixed(2),
	})
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return data(body), nil
}

// CreateVoucher submits a voucher draft as multipart form data, attaching any
// manual payment documents.
func (c *Client) CreateVoucher(ctx context.Context, d models.VoucherDraft, docs []models.Attachment) (json.RawMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"member_id", d.MemberID},
		{"voucher_type", string(d.VoucherType)},
		{"payment_method", string(d.PaymentMethod)},
		{"quantity", strconv.Itoa(d.TotalQuantity)},
		{"total_amount", d.TotalAmount.String()},
	}
	for i, den := range d.Denominations {
		fields = append(fields,
			[2]string{fmt.Sprintf("denomination_history[%d][denomination_id]", i), strconv.Itoa(den.ID)},
			[2]string{fmt.Sprintf("denomination_history[%d][quantity]", i), strconv.Itoa(den.Quantity)},
		)
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("write %s: %w", f[0], err)
		}
	}
	for _, doc := range docs {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="manual_payment_docs[]"; filename=%q`, doc.Filename))
		ct := doc.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("attach %s: %w", doc.Filename, err)
		}
		if _, err := part.Write(doc.Data); err != nil {
			return nil, fmt.Errorf("attach %s: %w", doc.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	body, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/admin/vouchers",
		endpoint:    "create_voucher",
		body:        &buf,
		contentType: w.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}
	return data(body), nil
}

func (c *Client) ApproveVoucher(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/admin/vouchers/" + url.PathEscape(id) + "/approve",
		endpoint: "approve_voucher",
	})
	return err
}

func (c *Client) RejectVoucher(ctx context.Context, id, reason string) error {
	r, err := jsonRequest(http.MethodPost, "/admin/vouchers/"+url.PathEscape(id)+"/reject", "reject_voucher",
		map[string]string{"reason": reason})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, r)
	return err
}
