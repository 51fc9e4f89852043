package agilpay

import (
	"encoding/json"

	"github.com/jfsanchez2k/webflow-ecommerce/internal/order"
)

const (
	merchantName = "Webflow Store"
	currencyUSD  = "840" // ISO 4217 numeric code
	// NoHeader "2" selects the embedded (iframe) presentation of the
	// hosted page.
	noHeaderIframe = "2"

	defaultSuccessURL = "https://example.com/success"
	defaultReturnURL  = "https://example.com/return"
)

// PaymentDetail is the per-order record nested inside the hosted-page form.
type PaymentDetail struct {
	MerchantKey  string            `json:"MerchantKey"`
	Service      string            `json:"Service"`
	MerchantName string            `json:"MerchantName"`
	Description  string            `json:"Description"`
	Amount       float64           `json:"Amount"`
	Tax          int               `json:"Tax"`
	Currency     string            `json:"Currency"`
	Items        []order.OrderItem `json:"Items"`
}

type paymentDetailEnvelope struct {
	Payments []PaymentDetail `json:"Payments"`
}

// Payload is the exact field set the gateway's hosted page expects. Detail
// carries the serialized PaymentDetail envelope.
type Payload struct {
	SiteID     string `json:"SiteId"`
	UserID     string `json:"UserId"`
	Names      string `json:"Names"`
	Email      string `json:"Email"`
	Address    string `json:"Address"`
	Detail     string `json:"Detail"`
	SuccessURL string `json:"SuccessURL"`
	ReturnURL  string `json:"ReturnURL"`
	Token      string `json:"token"`
	NoHeader   string `json:"NoHeader"`
}

// BuildPayload is a deterministic transform of a validated request, its
// priced order, and the gateway token into the hosted-page field set.
func (c *Client) BuildPayload(req *order.OrderRequest, ord order.Order, token string) (Payload, error) {
	detail := paymentDetailEnvelope{
		Payments: []PaymentDetail{{
			MerchantKey:  c.cfg.MerchantKey,
			Service:      ord.ID,
			MerchantName: merchantName,
			Description:  "Orden " + ord.ID,
			Amount:       ord.Total(),
			Tax:          0,
			Currency:     currencyUSD,
			Items:        ord.Items,
		}},
	}

	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return Payload{}, err
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = defaultSuccessURL
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = defaultReturnURL
	}

	return Payload{
		SiteID:     c.cfg.ClientID,
		UserID:     req.CustomerEmail,
		Names:      req.CustomerName,
		Email:      req.CustomerEmail,
		Address:    req.CustomerAddress,
		Detail:     string(detailJSON),
		SuccessURL: successURL,
		ReturnURL:  returnURL,
		Token:      token,
		NoHeader:   noHeaderIframe,
	}, nil
}
