package handler

import (
	"github.com/gin-gonic/gin"

	paymentapp "github.com/lincyaw/storefront/internal/application/payment"
)

// PaymentHandler handles payment initialization and verification
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.Service
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Initialize godoc
// @Summary      Start a payment
// @Description  Begin a gateway transaction for an unpaid order and return the authorization URL the customer is redirected to
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.InitializePaymentRequest true "Payment initialization request"
// @Success      200 {object} dto.Response{data=paymentapp.InitializePaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/initialize [post]
func (h *PaymentHandler) Initialize(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req paymentapp.InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.paymentService.Initialize(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Verify godoc
// @Summary      Verify a payment
// @Description  Confirm a gateway transaction by reference and settle the order. Verifying an already paid order is a no-op.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.VerifyPaymentRequest true "Payment verification request"
// @Success      200 {object} dto.Response{data=paymentapp.VerifyPaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payments/verify [post]
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req paymentapp.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.paymentService.Verify(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Callback godoc
// @Summary      Gateway redirect callback
// @Description  Landing endpoint for the gateway redirect. Reads the reference from the query string and verifies the transaction.
// @Tags         payments
// @Produce      json
// @Param        reference query string true "Gateway transaction reference"
// @Success      200 {object} dto.Response{data=paymentapp.VerifyPaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payments/callback [get]
func (h *PaymentHandler) Callback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	if reference == "" {
		h.BadRequest(c, "Missing transaction reference")
		return
	}

	resp, err := h.paymentService.Verify(c.Request.Context(), &paymentapp.VerifyPaymentRequest{Reference: reference})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
