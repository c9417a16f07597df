// Package http provides HTTP handlers for credential management.
//
// Credential names may contain slashes and must be percent-encoded in the
// path (webhook%2Fstripe); the router is configured to match on the raw path.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	"github.com/allisson/credseal/internal/credential/http/dto"
	credentialUseCase "github.com/allisson/credseal/internal/credential/usecase"
	"github.com/allisson/credseal/internal/httputil"
	customValidation "github.com/allisson/credseal/internal/validation"
)

// CredentialHandler handles HTTP requests for credential management operations.
type CredentialHandler struct {
	credentialUseCase credentialUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler.
func NewCredentialHandler(
	credentialUseCase credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// StoreHandler creates or overwrites a credential.
// POST /v1/credentials - Returns 201 Created with metadata only.
func (h *CredentialHandler) StoreHandler(c *gin.Context) {
	var req dto.StoreCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credential, err := h.credentialUseCase.Store(
		c.Request.Context(),
		req.Name,
		credentialDomain.Kind(req.Kind),
		req.Value,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCredentialToResponse(credential))
}

// StoreKeyPairHandler stores both halves of an API key pair.
// POST /v1/credentials/key-pairs - Returns 201 Created.
func (h *CredentialHandler) StoreKeyPairHandler(c *gin.Context) {
	var req dto.StoreKeyPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credentials, err := h.credentialUseCase.StoreKeyPair(
		c.Request.Context(),
		req.Name,
		req.PublishableKey,
		req.SecretKey,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCredentialsToListResponse(credentials))
}

// ListHandler lists credentials.
// GET /v1/credentials?offset=0&limit=50
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	credentials, err := h.credentialUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialsToListResponse(credentials))
}

// GetHandler returns credential metadata.
// GET /v1/credentials/:name
func (h *CredentialHandler) GetHandler(c *gin.Context) {
	credential, err := h.credentialUseCase.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

// RevealHandler decrypts a credential and returns its value.
// POST /v1/credentials/:name/reveal
func (h *CredentialHandler) RevealHandler(c *gin.Context) {
	name := c.Param("name")

	plaintext, err := h.credentialUseCase.Reveal(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.RevealCredentialResponse{Name: name, Value: plaintext})
}

// DeleteHandler removes a credential.
// DELETE /v1/credentials/:name - Returns 204 No Content.
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	if err := h.credentialUseCase.Delete(c.Request.Context(), c.Param("name")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
