package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/middleware"
	"groundedwarriors/pkg/utils"
)

const maxWebhookBody = 64 << 10

type PaymentController struct {
	paymentService services.PaymentService
	logger         *zap.Logger
}

func NewPaymentController(paymentService services.PaymentService, logger *zap.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// CreateCheckout godoc
// @Summary Create a checkout session for a retreat
// @Description Returns the hosted payment page URL. Logged-in callers also get a pending registration.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutRequest true "Checkout payload"
// @Success 200 {object} response_models.CreateCheckoutResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	var request request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	resp, err := p.paymentService.CreateCheckoutSession(c.Request.Context(), middleware.CurrentUserID(c), request)
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"sessionId": resp.SessionID, "url": resp.URL})
}

// GetCheckoutSession godoc
// @Summary Look up a checkout session
// @Tags Payments
// @Produce json
// @Param id path string true "Checkout session id"
// @Success 200 {object} response_models.CheckoutSessionResponse
// @Failure 404 {object} utils.APIError
// @Router /checkout/session/{id} [get]
func (p *PaymentController) GetCheckoutSession(c *gin.Context) {
	session, err := p.paymentService.GetCheckoutSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"session": session})
}

// HandleWebhook godoc
// @Summary Stripe webhook
// @Description Verifies the signature and settles retreat registrations
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.APIError
// @Router /stripe/webhook [post]
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := p.paymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
