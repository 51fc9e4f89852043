package order

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := v.Messages()
	return "invalid order request: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

type LineItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// OrderRequest is the validated form of an incoming cart. It is not
// modified after ParseRequest returns it.
type OrderRequest struct {
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	Items           []LineItem
	SuccessURL      string
	ReturnURL       string
}

// ParseRequest decodes and validates a raw create-payment body. All field
// errors are collected and returned together; only an unparseable body
// short-circuits.
func ParseRequest(r io.Reader) (*OrderRequest, ValidationErrors) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, ValidationErrors{{Field: "body", Message: "request body must be a JSON object"}}
	}

	var errs ValidationErrors
	req := &OrderRequest{}

	req.CustomerName = requireString(raw, "customer_name", &errs)
	req.CustomerEmail = requireString(raw, "customer_email", &errs)
	req.CustomerAddress = requireString(raw, "customer_address", &errs)

	req.Items = parseItems(raw["items"], &errs)

	if req.CustomerEmail != "" && !emailPattern.MatchString(req.CustomerEmail) {
		errs = append(errs, ValidationError{Field: "customer_email", Message: "customer_email must be a valid email address"})
	}

	if s, ok := raw["success_url"].(string); ok {
		req.SuccessURL = strings.TrimSpace(s)
	}
	if s, ok := raw["return_url"].(string); ok {
		req.ReturnURL = strings.TrimSpace(s)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return req, nil
}

func requireString(raw map[string]any, field string, errs *ValidationErrors) string {
	v, ok := raw[field]
	if !ok || v == nil {
		*errs = append(*errs, ValidationError{Field: field, Message: field + " is required"})
		return ""
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		*errs = append(*errs, ValidationError{Field: field, Message: field + " is required"})
		return ""
	}
	return strings.TrimSpace(s)
}

func parseItems(v any, errs *ValidationErrors) []LineItem {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		*errs = append(*errs, ValidationError{Field: "items", Message: "items must be a non-empty list"})
		return nil
	}

	items := make([]LineItem, 0, len(list))
	for i, rawItem := range list {
		// item positions are 1-based in user-facing messages
		pos := i + 1
		field := fmt.Sprintf("items[%d]", pos)

		obj, ok := rawItem.(map[string]any)
		if !ok {
			*errs = append(*errs, ValidationError{Field: field, Message: fmt.Sprintf("item %d must be an object", pos)})
			continue
		}

		var missing []string
		for _, k := range []string{"name", "price", "quantity"} {
			if _, ok := obj[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			*errs = append(*errs, ValidationError{Field: field, Message: fmt.Sprintf("item %d is missing fields: %s", pos, strings.Join(missing, ", "))})
			continue
		}

		name, _ := obj["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			*errs = append(*errs, ValidationError{Field: field, Message: fmt.Sprintf("item %d must have a name", pos)})
		}

		price, ok := toDecimal(obj["price"])
		if !ok || !price.IsPositive() {
			*errs = append(*errs, ValidationError{Field: field, Message: fmt.Sprintf("item %d must have a price greater than zero", pos)})
		}

		qty, ok := toInt(obj["quantity"])
		if !ok || qty <= 0 {
			*errs = append(*errs, ValidationError{Field: field, Message: fmt.Sprintf("item %d must have a quantity greater than zero", pos)})
		}

		items = append(items, LineItem{Name: name, Price: price, Quantity: qty})
	}
	return items
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
