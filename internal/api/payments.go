package api

import (
	"context"
	"net/http"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jfsanchez2k/webflow-ecommerce/internal/agilpay"
	"github.com/jfsanchez2k/webflow-ecommerce/internal/catalog"
	"github.com/jfsanchez2k/webflow-ecommerce/internal/order"
	"github.com/jfsanchez2k/webflow-ecommerce/pkg/kafka"
	"github.com/jfsanchez2k/webflow-ecommerce/pkg/logging"
)

// PaymentsHandler sequences one create-payment request: validate the cart,
// price the order, exchange credentials for a gateway token, and assemble
// the hosted-page payload. Requests are fully independent; identical carts
// get distinct order ids.
type PaymentsHandler struct {
	gateway *agilpay.Client

	// callbackWriter is nil when Kafka is not configured; the receiver
	// then only logs the callback.
	callbackWriter *kafkago.Writer
}

func NewPaymentsHandler(gateway *agilpay.Client, callbackWriter *kafkago.Writer) *PaymentsHandler {
	return &PaymentsHandler{gateway: gateway, callbackWriter: callbackWriter}
}

type createPaymentResponse struct {
	Success     bool            `json:"success"`
	PaymentURL  string          `json:"payment_url"`
	PaymentData agilpay.Payload `json:"payment_data"`
	OrderID     string          `json:"order_id"`
}

func (h *PaymentsHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	req, verrs := order.ParseRequest(r.Body)
	if verrs != nil {
		writeError(w, http.StatusBadRequest, "invalid order request", verrs.Messages()...)
		return
	}

	ord := order.Build(req)
	logging.Log(logging.Fields{
		Service: serviceName,
		OrderID: ord.ID,
		Step:    "order_totaled",
		Status:  "ok",
		Message: ord.TotalAmount.String(),
	})

	// Detached from the request context: a client disconnect must not
	// cancel an exchange already in flight.
	token, err := h.gateway.FetchToken(context.Background(), ord.ID, req.CustomerEmail, ord.Total())
	if err != nil {
		logging.Log(logging.Fields{
			Service: serviceName,
			OrderID: ord.ID,
			Step:    "token_exchange",
			Status:  "error",
			Error:   err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "could not obtain authentication token")
		return
	}

	payload, err := h.gateway.BuildPayload(req, ord, token)
	if err != nil {
		logging.Log(logging.Fields{
			Service: serviceName,
			OrderID: ord.ID,
			Step:    "build_payload",
			Status:  "error",
			Error:   err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logging.Log(logging.Fields{
		Service: serviceName,
		OrderID: ord.ID,
		Step:    "payment_created",
		Status:  "ok",
	})
	writeJSON(w, http.StatusOK, createPaymentResponse{
		Success:     true,
		PaymentURL:  h.gateway.PaymentURL(),
		PaymentData: payload,
		OrderID:     ord.ID,
	})
}

type callbackResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PaymentResponse receives the gateway's post-payment notification. The
// field set is recorded as-is; no signature or origin check is performed and
// nothing is reconciled against an order.
func (h *PaymentsHandler) PaymentResponse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || len(r.PostForm) == 0 {
		logging.Log(logging.Fields{
			Service: serviceName,
			Step:    "payment_callback",
			Status:  "empty",
		})
		writeError(w, http.StatusBadRequest, "no data received")
		return
	}

	fields := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		fields[k] = r.PostForm.Get(k)
	}
	logging.Log(logging.Fields{
		Service: serviceName,
		Step:    "payment_callback",
		Status:  "received",
		Message: r.PostForm.Encode(),
	})

	if h.callbackWriter != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := kafka.PublishJSON(ctx, h.callbackWriter, fields["OrderId"], fields); err != nil {
				logging.Log(logging.Fields{
					Service: serviceName,
					Step:    "callback_publish",
					Status:  "error",
					Error:   err.Error(),
				})
			}
		}()
	}

	writeJSON(w, http.StatusOK, callbackResponse{Success: true, Status: "received", Message: "callback processed"})
}

func (h *PaymentsHandler) Products(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, catalog.Products())
}
