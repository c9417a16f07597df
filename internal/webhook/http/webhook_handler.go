// Package http exposes the inbound webhook endpoint.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/credseal/internal/errors"
	"github.com/allisson/credseal/internal/httputil"
	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
	"github.com/allisson/credseal/internal/webhook/http/dto"
	webhookUseCase "github.com/allisson/credseal/internal/webhook/usecase"
)

// DefaultSignatureHeader is the header carrying the signature when none is configured.
const DefaultSignatureHeader = "Stripe-Signature"

// WebhookHandler receives signed webhook deliveries.
type WebhookHandler struct {
	webhookUseCase  webhookUseCase.WebhookUseCase
	signatureHeader string
	logger          *slog.Logger
}

// NewWebhookHandler creates a webhook handler reading signatures from signatureHeader.
func NewWebhookHandler(
	webhookUseCase webhookUseCase.WebhookUseCase,
	signatureHeader string,
	logger *slog.Logger,
) *WebhookHandler {
	if signatureHeader == "" {
		signatureHeader = DefaultSignatureHeader
	}
	return &WebhookHandler{
		webhookUseCase:  webhookUseCase,
		signatureHeader: signatureHeader,
		logger:          logger,
	}
}

// ReceiveHandler verifies and acknowledges one delivery.
// POST /v1/webhooks/:endpoint - Authenticated by the signature header only.
// Returns 200 with the event identity, 400 for malformed headers or payloads,
// 401 for rejected signatures and 404 for unknown endpoints.
func (h *WebhookHandler) ReceiveHandler(c *gin.Context) {
	endpoint := c.Param("endpoint")

	// The signature covers the exact bytes on the wire, so the body is never
	// bound or re-encoded before verification.
	rawBody, err := c.GetRawData()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	event, err := h.webhookUseCase.Receive(c.Request.Context(), endpoint, rawBody, c.GetHeader(h.signatureHeader))
	if err != nil {
		if apperrors.Is(err, webhookDomain.ErrMalformedSignature) ||
			apperrors.Is(err, webhookDomain.ErrMalformedEvent) {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}
