package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/vintry/tastingd/internal/domain/trust"
)

// DirectNoteHandler serves submissions sent straight from the storefront.
// Trust comes from the Origin allow-list plus server-side confirmation
// that the claimed customer id owns the supplied email.
type DirectNoteHandler struct {
	deps     Dependencies
	verifier *trust.DirectVerifier
}

// NewDirectNoteHandler creates a new direct notes handler.
func NewDirectNoteHandler(deps Dependencies, verifier *trust.DirectVerifier) *DirectNoteHandler {
	return &DirectNoteHandler{deps: deps, verifier: verifier}
}

// HandleDirectNote handles POST /api/tastings/notes requests.
func (h *DirectNoteHandler) HandleDirectNote(w http.ResponseWriter, r *http.Request) {
	const op = "api.direct_note"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	// Origin gate runs before any body parsing or remote call.
	if err := h.verifier.CheckOrigin(r.Header.Get("Origin")); err != nil {
		writeFailure(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	var req noteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	customerID, ok := toCustomerID(req.CustomerID)
	if !ok || strings.TrimSpace(req.Shop) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		writeFailure(w, NewKind(op+": missing shop, customer_id or customer_email", ErrBadRequest))
		return
	}
	sub, err := req.submission(op)
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.verifier.VerifyIdentity(r.Context(), customerID, req.CustomerEmail); err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.deps.SubmitNote(r.Context(), customerID, sub); err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}
