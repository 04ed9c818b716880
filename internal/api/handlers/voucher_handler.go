package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/service"
)

const (
	maxUploadMemory = 10 << 20
	docsField       = "manual_payment_docs[]"
)

type VoucherAPI interface {
	Preview(ctx context.Context, d models.VoucherDraft) (models.VoucherDraft, error)
	Create(ctx context.Context, d models.VoucherDraft, docs []models.Attachment) (service.VoucherResult, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
}

type denominationRequest struct {
	ID       int      `json:"id"`
	Value    amount   `json:"value"`
	Quantity quantity `json:"quantity"`
}

type voucherRequest struct {
	MemberID      string                `json:"member_id"`
	VoucherType   string                `json:"voucher_type"`
	PaymentMethod string                `json:"payment_method"`
	Denominations []denominationRequest `json:"denominations"`
}

func (v voucherRequest) draft() models.VoucherDraft {
	d := models.VoucherDraft{
		MemberID:      v.MemberID,
		VoucherType:   models.VoucherType(strings.ToLower(strings.TrimSpace(v.VoucherType))),
		PaymentMethod: models.PaymentMethod(strings.ToLower(strings.TrimSpace(v.PaymentMethod))),
		Denominations: make([]models.Denomination, 0, len(v.Denominations)),
	}
	for _, dr := range v.Denominations {
		d.Denominations = append(d.Denominations, models.Denomination{
			ID:        dr.ID,
			UnitValue: dr.Value.Decimal,
			Quantity:  int(dr.Quantity),
		})
	}
	return d
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type VoucherHandler struct {
	svc VoucherAPI
	log logrus.FieldLogger
}

func NewVoucherHandler(svc VoucherAPI, log logrus.FieldLogger) *VoucherHandler {
	return &VoucherHandler{svc: svc, log: log}
}

// Preview handles POST /api/vouchers/preview
func (h *VoucherHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req voucherRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.svc.Preview(r.Context(), req.draft())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "", d)
}

// Create handles POST /api/vouchers
// accepts JSON, or multipart when manual payment documents are attached
func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		req  voucherRequest
		docs []models.Attachment
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var err error
		req, docs, err = readVoucherForm(r)
		if err != nil {
			h.log.WithError(err).Info("bad voucher form")
			writeJSON(w, http.StatusBadRequest, envelope{Message: "invalid_body"})
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Create(r.Context(), req.draft(), docs)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, "voucher_created", res)
}

func readVoucherForm(r *http.Request) (voucherRequest, []models.Attachment, error) {
	var req voucherRequest
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return req, nil, fmt.Errorf("parse form: %w", err)
	}
	req.MemberID = r.FormValue("member_id")
	req.VoucherType = r.FormValue("voucher_type")
	req.PaymentMethod = r.FormValue("payment_method")
	if raw := r.FormValue("denominations"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Denominations); err != nil {
			return req, nil, fmt.Errorf("denominations: %w", err)
		}
	}

	files := r.MultipartForm.File[docsField]
	if len(files) == 0 {
		files = r.MultipartForm.File[strings.TrimSuffix(docsField, "[]")]
	}
	docs := make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		a, err := readAttachment(fh)
		if err != nil {
			return req, nil, err
		}
		docs = append(docs, a)
	}
	return req, docs, nil
}

func readAttachment(fh *multipart.FileHeader) (models.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return models.Attachment{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return models.Attachment{Filename: fh.Filename, ContentType: ct, Data: data}, nil
}

// Approve handles POST /api/vouchers/{id}/approve
func (h *VoucherHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Approve(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "voucher_approved", map[string]string{"id": id})
}

// Reject handles POST /api/vouchers/{id}/reject
func (h *VoucherHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.Reject(r.Context(), id, req.Reason); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "voucher_rejected", map[string]string{"id": id})
}
