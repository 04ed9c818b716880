package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/service"
)

type PurchaseAPI interface {
	Preview(ctx context.Context, in models.PurchaseInput) (models.PurchaseDraft, error)
	Submit(ctx context.Context, in models.PurchaseInput) (service.PurchaseResult, error)
	FindMember(ctx context.Context, term string) (models.Member, error)
}

// purchaseRequest is the purchase form as posted. Amounts may arrive as
// numbers or as the raw text of the input ("1,250.50").
type purchaseRequest struct {
	MemberID          string `json:"member_id"`
	MerchantID        string `json:"merchant_id"`
	TransactionAmount amount `json:"transaction_amount"`
	RedeemAmount      amount `json:"redeem_amount"`
}

func (p purchaseRequest) input() models.PurchaseInput {
	return models.PurchaseInput{
		MemberID:          p.MemberID,
		MerchantID:        p.MerchantID,
		TransactionAmount: p.TransactionAmount.Decimal,
		RedeemAmount:      p.RedeemAmount.Decimal,
	}
}

type PurchaseHandler struct {
	svc PurchaseAPI
	log logrus.FieldLogger
}

func NewPurchaseHandler(svc PurchaseAPI, log logrus.FieldLogger) *PurchaseHandler {
	return &PurchaseHandler{svc: svc, log: log}
}

// Preview handles POST /api/purchases/preview
func (h *PurchaseHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	draft, err := h.svc.Preview(r.Context(), req.input())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "", draft)
}

// Submit handles POST /api/purchases
// verifies the redeem points with the backend, then records the purchase
func (h *PurchaseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Submit(r.Context(), req.input())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, "purchase_submitted", res)
}

// LookupMember handles GET /api/members/lookup?search=
func (h *PurchaseHandler) LookupMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.FindMember(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "", m)
}
