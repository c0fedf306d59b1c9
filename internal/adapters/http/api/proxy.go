package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vintry/tastingd/internal/domain/trust"
)

// ProxyNoteHandler serves submissions forwarded by the platform app proxy.
// The proxy signs the raw body and injects the authenticated customer id
// as the logged_in_customer_id query parameter.
type ProxyNoteHandler struct {
	deps     Dependencies
	verifier *trust.ProxyVerifier
}

// NewProxyNoteHandler creates a new proxy notes handler.
func NewProxyNoteHandler(deps Dependencies, verifier *trust.ProxyVerifier) *ProxyNoteHandler {
	return &ProxyNoteHandler{deps: deps, verifier: verifier}
}

// HandleProxyNote handles POST /apps/tastings/notes requests.
func (h *ProxyNoteHandler) HandleProxyNote(w http.ResponseWriter, r *http.Request) {
	const op = "api.proxy_note"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	// The signature is computed over the undecoded body bytes; verify
	// before touching the payload.
	customerID := r.URL.Query().Get("logged_in_customer_id")
	if err := h.verifier.Verify(body, r.Header.Get(trust.SignatureHeader), customerID); err != nil {
		writeFailure(w, err)
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
	sub, err := req.submission(op)
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.deps.SubmitNote(r.Context(), customerID, sub); err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}
