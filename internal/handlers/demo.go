package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"aether/internal/demo"
	apperrors "aether/internal/errors"
	"aether/internal/middleware"
)

// qrSize is the edge length in pixels of the share QR code.
const qrSize = 256

// DemoHandler serves the demo-mode banner, accounts and share QR code.
type DemoHandler struct {
	detector  *demo.Detector
	publicURL string
	logger    zerolog.Logger
}

// NewDemoHandler creates a new DemoHandler. publicURL may be empty, in
// which case the share URL is derived from each request under the
// detector's proxy trust setting.
func NewDemoHandler(det *demo.Detector, publicURL string, logger zerolog.Logger) *DemoHandler {
	return &DemoHandler{
		detector:  det,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger.With().Str("component", "demo-handler").Logger(),
	}
}

type statusResponse struct {
	DemoMode bool                    `json:"demoMode"`
	Info     demo.Info               `json:"info"`
	Accounts map[string]demo.Account `json:"accounts,omitempty"`
}

// Status reports whether the request is served in demo mode. The demo
// accounts are only included when it is.
func (h *DemoHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		DemoMode: middleware.IsDemo(r),
		Info:     demo.ModeInfo(),
	}
	if resp.DemoMode {
		resp.Accounts = demo.Accounts()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Account returns the demo account for the {role} URL parameter.
func (h *DemoHandler) Account(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsDemo(r) {
		writeError(w, h.logger, apperrors.Forbidden("demo accounts are only available in demo mode"))
		return
	}

	role := chi.URLParam(r, "role")
	acc, ok := demo.LookupAccount(role)
	if !ok {
		writeError(w, h.logger, apperrors.NotFound("demo account"))
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// QRCode renders a PNG QR code linking to this deployment so visitors can
// open the demo on another device.
func (h *DemoHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsDemo(r) {
		writeError(w, h.logger, apperrors.Forbidden("share code is only available in demo mode"))
		return
	}

	png, err := qrcode.Encode(h.deploymentURL(r), qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, h.logger, apperrors.Internal("rendering QR code", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if h.publicURL != "" {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	} else {
		// The encoded URL depends on request headers.
		w.Header().Set("Cache-Control", "private, max-age=3600")
		w.Header().Set("Vary", "Host, X-Forwarded-Host, X-Forwarded-Proto")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// deploymentURL returns the configured public URL, or the origin the
// request was addressed to.
func (h *DemoHandler) deploymentURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	trust := h.detector.TrustsProxy()
	return demo.RequestScheme(r, trust) + "://" + demo.RequestAuthority(r, trust) + "/"
}
