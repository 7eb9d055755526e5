package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingservice "rentora-backend/internal/domains/booking/service"
	"rentora-backend/internal/domains/payment/gateway/stripe"
	"rentora-backend/internal/shared/response"
	"rentora-backend/pkg/logger"
)

type PaymentHandler struct {
	bookings       *bookingservice.BookingService
	webhookSecret  string
	publishableKey string
}

func NewPaymentHandler(bookings *bookingservice.BookingService, webhookSecret, publishableKey string) *PaymentHandler {
	return &PaymentHandler{
		bookings:       bookings,
		webhookSecret:  webhookSecret,
		publishableKey: publishableKey,
	}
}

// Webhook receives signed provider events. The signature covers the raw
// body, so this route must not run behind any body-parsing middleware.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "failed to read webhook body")
		return
	}

	event, err := stripe.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		logger.Warn("rejected webhook", map[string]interface{}{"reason": err.Error()})
		response.BadRequest(c, "invalid webhook signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		if err := h.bookings.HandlePaymentSuccess(c.Request.Context(), event.SessionID()); err != nil {
			// Non-2xx makes the provider retry the delivery.
			response.FromError(c, err)
			return
		}
	default:
		logger.Debug("ignoring webhook event " + event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Config exposes the publishable key for the frontend checkout widget.
func (h *PaymentHandler) Config(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"publishableKey": h.publishableKey})
}
